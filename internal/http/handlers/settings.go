package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/services"
)

// Room for multipart framing on top of the largest accepted file.
const multipartOverhead = 1 << 20

type SettingsHandler struct {
	settings services.SettingsService
	uploads  services.UploadService
}

func NewSettingsHandler(settings services.SettingsService, uploads services.UploadService) *SettingsHandler {
	return &SettingsHandler{settings: settings, uploads: uploads}
}

// GET /api/admin/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	st, err := h.settings.Get(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"settings": st})
}

// POST /api/admin/uploads
// multipart: slot=<logo|hero_image|resume|project_image|certificate_image>, file=<binary>
func (h *SettingsHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxImageBytes+multipartOverhead)

	slot, err := services.ParseUploadSlot(c.PostForm("slot"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondServiceError(c, errs.Invalid("file", "is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondServiceError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	res, err := h.uploads.Upload(c.Request.Context(), slot, fh.Filename, f)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, res)
}

// DELETE /api/admin/settings/:slot
func (h *SettingsHandler) Remove(c *gin.Context) {
	slot, err := services.ParseUploadSlot(c.Param("slot"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	st, err := h.settings.Remove(c.Request.Context(), slot)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"settings": st})
}
