package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/services/sections"
)

type SectionHandler struct {
	manager *sections.Manager
}

func NewSectionHandler(manager *sections.Manager) *SectionHandler {
	return &SectionHandler{manager: manager}
}

// GET /api/admin/sections
func (h *SectionHandler) List(c *gin.Context) {
	list, err := h.manager.ListSections(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sections": list, "state": h.manager.State().String()})
}

// PATCH /api/admin/sections/:id/visibility
func (h *SectionHandler) ToggleVisibility(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.manager.ToggleVisibility(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	list, err := h.manager.ListSections(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"section":   res.Section,
		"sections":  list,
		"recovered": res.Recovered,
	})
}

// POST /api/admin/sections/move
// body: { "index": 2, "direction": "up" }
func (h *SectionHandler) Move(c *gin.Context) {
	var req struct {
		Index     *int   `json:"index"`
		Direction string `json:"direction"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Index == nil {
		response.RespondServiceError(c, errs.Invalid("index", "is required"))
		return
	}
	dir, err := sections.ParseDirection(req.Direction)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	res, err := h.manager.MoveSection(c.Request.Context(), *req.Index, dir)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"sections":  res.Sections,
		"moved":     res.Moved,
		"recovered": res.Recovered,
	})
}

// GET /api/admin/sections/integrity
func (h *SectionHandler) Integrity(c *gin.Context) {
	dups, err := h.manager.CheckOrderIntegrity(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if dups == nil {
		dups = []sections.Duplicate{}
	}
	response.RespondOK(c, gin.H{"ok": len(dups) == 0, "duplicates": dups})
}

type PageHandler struct {
	composer *sections.Composer
}

func NewPageHandler(composer *sections.Composer) *PageHandler {
	return &PageHandler{composer: composer}
}

// GET /api/page
func (h *PageHandler) Get(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=30")
	response.RespondOK(c, h.composer.Compose(c.Request.Context()))
}
