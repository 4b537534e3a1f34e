package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type SkillHandler struct {
	skills services.SkillService
}

func NewSkillHandler(skills services.SkillService) *SkillHandler {
	return &SkillHandler{skills: skills}
}

type nameRequest struct {
	Name string `json:"name"`
}

// GET /api/admin/skill-categories
func (h *SkillHandler) ListCategories(c *gin.Context) {
	cats, err := h.skills.ListCategories(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"categories": cats})
}

func (h *SkillHandler) CreateCategory(c *gin.Context) {
	var req nameRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.skills.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"category": cat})
}

func (h *SkillHandler) RenameCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req nameRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.skills.RenameCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"category": cat})
}

func (h *SkillHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.skills.DeleteCategory(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/admin/skills
// body: { "category_id": "...", "name": "Go" }
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req struct {
		CategoryID string `json:"category_id"`
		Name       string `json:"name"`
	}
	if !bindJSON(c, &req) {
		return
	}
	catID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		response.RespondServiceError(c, errs.Invalid("category_id", "must be a uuid"))
		return
	}
	skill, err := h.skills.CreateSkill(c.Request.Context(), catID, req.Name)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"skill": skill})
}

func (h *SkillHandler) RenameSkill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req nameRequest
	if !bindJSON(c, &req) {
		return
	}
	skill, err := h.skills.RenameSkill(c.Request.Context(), id, req.Name)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"skill": skill})
}

func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.skills.DeleteSkill(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
