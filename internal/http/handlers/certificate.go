package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type CertificateHandler struct {
	certificates services.CertificateService
}

func NewCertificateHandler(certificates services.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificates: certificates}
}

func (h *CertificateHandler) List(c *gin.Context) {
	list, err := h.certificates.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"certificates": list})
}

func (h *CertificateHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cert, err := h.certificates.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"certificate": cert})
}

func (h *CertificateHandler) Create(c *gin.Context) {
	var in types.Certificate
	if !bindJSON(c, &in) {
		return
	}
	cert, err := h.certificates.Create(c.Request.Context(), &in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"certificate": cert})
}

func (h *CertificateHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in types.Certificate
	if !bindJSON(c, &in) {
		return
	}
	cert, err := h.certificates.Update(c.Request.Context(), id, &in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"certificate": cert})
}

func (h *CertificateHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.certificates.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
