package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/moderation-platform/internal/config"
	"github.com/linskybing/moderation-platform/internal/workflow"
)

type WorkflowSettings struct {
	ReviewTimeoutDays  int                  `json:"review_timeout_days"`
	EscalationEmail    string               `json:"escalation_email"`
	FileRetentionYears int                  `json:"file_retention_years"`
	Stages             []workflow.StageInfo `json:"stages"`
}

type SettingsHandler struct {
	cfg      config.Workflow
	pipeline *workflow.Pipeline
}

func NewSettingsHandler(cfg config.Workflow, pipeline *workflow.Pipeline) *SettingsHandler {
	return &SettingsHandler{cfg: cfg, pipeline: pipeline}
}

// GetWorkflowSettings godoc
// @Summary Workflow settings and pipeline stages
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} WorkflowSettings
// @Router /settings/workflow [get]
func (h *SettingsHandler) GetWorkflowSettings(c *gin.Context) {
	c.JSON(http.StatusOK, WorkflowSettings{
		ReviewTimeoutDays:  h.cfg.ReviewTimeoutDays,
		EscalationEmail:    h.cfg.EscalationEmail,
		FileRetentionYears: h.cfg.FileRetentionYears,
		Stages:             h.pipeline.Stages(),
	})
}
