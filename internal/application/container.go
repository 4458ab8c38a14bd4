package application

import (
	"time"

	"github.com/linskybing/moderation-platform/internal/repository"
	"github.com/linskybing/moderation-platform/internal/storage"
	"github.com/linskybing/moderation-platform/internal/workflow"
)

type Options struct {
	Pipeline       *workflow.Pipeline
	Events         *EventHub
	Files          storage.FileStore
	StorageTimeout time.Duration
	// RetentionYears overrides DefaultRetentionYears when positive.
	RetentionYears int
}

type Services struct {
	Workflow   *WorkflowService
	Submission *SubmissionService
	Review     *ReviewService
	User       *UserService
	Audit      *AuditService
	Events     *EventHub
}

func New(repos *repository.Repos, opts Options) *Services {
	events := opts.Events
	if events == nil {
		events = NewEventHub(0)
	}
	submissions := NewSubmissionService(repos, opts.Pipeline, opts.Files, opts.StorageTimeout)
	if opts.RetentionYears > 0 {
		submissions.RetentionYears = opts.RetentionYears
	}
	return &Services{
		Workflow:   NewWorkflowService(repos, opts.Pipeline, events, opts.StorageTimeout),
		Submission: submissions,
		Review:     NewReviewService(repos, opts.StorageTimeout),
		User:       NewUserService(repos, opts.StorageTimeout),
		Audit:      NewAuditService(repos, opts.StorageTimeout),
		Events:     events,
	}
}
