package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/http/response"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type ExperimentHandler struct {
	experiments services.ExperimentService
}

func NewExperimentHandler(experiments services.ExperimentService) *ExperimentHandler {
	return &ExperimentHandler{experiments: experiments}
}

func (h *ExperimentHandler) List(c *gin.Context) {
	list, err := h.experiments.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"experiments": list})
}

func (h *ExperimentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	exp, err := h.experiments.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"experiment": exp})
}

func (h *ExperimentHandler) Create(c *gin.Context) {
	var in types.Experiment
	if !bindJSON(c, &in) {
		return
	}
	exp, err := h.experiments.Create(c.Request.Context(), &in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"experiment": exp})
}

func (h *ExperimentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in types.Experiment
	if !bindJSON(c, &in) {
		return
	}
	exp, err := h.experiments.Update(c.Request.Context(), id, &in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"experiment": exp})
}

func (h *ExperimentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.experiments.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
