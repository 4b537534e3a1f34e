package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type MessageHandler struct {
	messages services.MessageService
}

func NewMessageHandler(messages services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// POST /api/contact
// body: { "name": "...", "email": "...", "subject": "...", "message": "..." }
func (h *MessageHandler) Submit(c *gin.Context) {
	var form services.ContactForm
	if !bindJSON(c, &form) {
		return
	}
	if _, err := h.messages.Submit(c.Request.Context(), form); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"ok": true})
}

// GET /api/admin/messages
func (h *MessageHandler) List(c *gin.Context) {
	list, err := h.messages.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"messages": list})
}

// GET /api/admin/messages/unread-count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	n, err := h.messages.CountUnread(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"unread": n})
}

func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	msg, err := h.messages.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": msg})
}

// PATCH /api/admin/messages/:id/read
func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	msg, err := h.messages.MarkAsRead(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": msg})
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.messages.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
