package handlers

import (
	"github.com/linskybing/moderation-platform/internal/application"
	"github.com/linskybing/moderation-platform/internal/config"
	"github.com/linskybing/moderation-platform/internal/workflow"
)

type Handlers struct {
	Submission *SubmissionHandler
	Archive    *ArchiveHandler
	Review     *ReviewHandler
	User       *UserHandler
	Audit      *AuditHandler
	Settings   *SettingsHandler
	Events     *EventsHandler
}

func New(svc *application.Services, pipeline *workflow.Pipeline, cfg *config.Config) *Handlers {
	return &Handlers{
		Submission: NewSubmissionHandler(svc.Submission, svc.Workflow),
		Archive:    NewArchiveHandler(svc.Submission),
		Review:     NewReviewHandler(svc.Review, svc.Workflow),
		User:       NewUserHandler(svc.User),
		Audit:      NewAuditHandler(svc.Audit),
		Settings:   NewSettingsHandler(cfg.Workflow, pipeline),
		Events:     NewEventsHandler(svc.Events, cfg.CORSAllowedOrigins, !cfg.IsProduction()),
	}
}
