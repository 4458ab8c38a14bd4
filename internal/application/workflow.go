package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/moderation-platform/internal/domain/audit"
	"github.com/linskybing/moderation-platform/internal/domain/review"
	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	apperrors "github.com/linskybing/moderation-platform/internal/errors"
	"github.com/linskybing/moderation-platform/internal/repository"
	"github.com/linskybing/moderation-platform/internal/workflow"
)

type SubmitReviewInput struct {
	SubmissionID string
	Decision     string
	Comments     string
}

type AssignReviewersInput struct {
	SubmissionID string
	ReviewerID   *string
}

// WorkflowService moves submissions through the review pipeline. Every
// status write happens under a row lock with a version check, together with
// its review record and audit row.
type WorkflowService struct {
	Repos    *repository.Repos
	Pipeline *workflow.Pipeline
	Events   *EventHub
	Timeout  time.Duration
}

func NewWorkflowService(repos *repository.Repos, pipeline *workflow.Pipeline, events *EventHub, timeout time.Duration) *WorkflowService {
	return &WorkflowService{
		Repos:    repos,
		Pipeline: pipeline,
		Events:   events,
		Timeout:  timeout,
	}
}

// SubmitReview records actor's decision on the submission's current stage and
// advances it. Nothing is written unless every check passes.
func (s *WorkflowService) SubmitReview(ctx context.Context, actor workflow.Actor, in SubmitReviewInput) (review.Review, error) {
	id := strings.TrimSpace(in.SubmissionID)
	if id == "" {
		return review.Review{}, apperrors.InvalidArgument("submission_id is required")
	}
	if strings.TrimSpace(in.Decision) == "" {
		return review.Review{}, apperrors.InvalidArgument("decision is required")
	}
	decision, ok := review.ParseDecision(in.Decision)
	if !ok {
		return review.Review{}, apperrors.InvalidArgument("unknown decision %q", in.Decision)
	}

	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	current, err := s.Repos.Submission.GetByID(ctx, id)
	if err != nil {
		return review.Review{}, classify(err, "load submission %s", id)
	}
	if err := s.checkReviewer(actor, current, decision); err != nil {
		return review.Review{}, err
	}

	var (
		rec     review.Review
		updated submission.Submission
	)
	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		locked, err := tx.Submission.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if locked.Status != current.Status {
			return apperrors.Conflict("submission %s moved from %s to %s, reload and retry", id, current.Status, locked.Status)
		}
		if err := s.checkReviewer(actor, locked, decision); err != nil {
			return err
		}

		count, err := tx.Review.CountBySubmissionID(ctx, id)
		if err != nil {
			return err
		}
		next := s.Pipeline.NextStatus(locked.Status, actor.Role, decision)
		rec = review.Review{
			ID:           uuid.NewString(),
			SubmissionID: id,
			ReviewerID:   actor.UserID,
			ReviewerRole: actor.Role,
			Decision:     decision,
			Comments:     strings.TrimSpace(in.Comments),
			Sequence:     int(count) + 1,
			FromStatus:   locked.Status,
			ToStatus:     next,
			CreatedAt:    time.Now(),
		}
		if err := tx.Review.Create(ctx, &rec); err != nil {
			return err
		}

		reviewerID := locked.CurrentReviewerID
		if !s.Pipeline.ReviewerCarriesOver(locked.Status, next) {
			reviewerID = nil
		}
		updated, err = tx.Submission.UpdateStatus(ctx, repository.StatusChange{
			ID:              id,
			ExpectedVersion: locked.Version,
			Status:          next,
			ReviewerID:      reviewerID,
		})
		if err != nil {
			return err
		}

		return tx.Audit.CreateAuditLog(ctx, newAuditLog(actor, audit.ActionReview, audit.ResourceSubmission, id,
			statusSnapshot(locked), statusSnapshot(updated),
			"recorded "+string(decision)+" at "+string(locked.Status)))
	})
	if err != nil {
		return review.Review{}, classify(err, "record review on %s", id)
	}

	ev := newTransitionEvent(audit.ActionReview, actor, rec.FromStatus, updated)
	ev.Decision = decision
	s.Events.Publish(ev)
	return rec, nil
}

// checkReviewer verifies actor owns the submission's current stage, can
// see the submission, may record decision there, and is the bound reviewer
// when one is set.
func (s *WorkflowService) checkReviewer(actor workflow.Actor, sub submission.Submission, decision review.Decision) error {
	owner, ok := s.Pipeline.Owner(sub.Status)
	if !ok {
		return apperrors.Authorization("submission %s is not awaiting review (status %s)", sub.ID, sub.Status)
	}
	if actor.Role != owner {
		return apperrors.Authorization("role %s cannot review at %s", actor.Role, sub.Status)
	}
	if !workflow.CanView(actor, sub) {
		return apperrors.Authorization("submission %s is outside your institution", sub.ID)
	}
	if !s.Pipeline.Allows(sub.Status, decision) {
		return apperrors.InvalidArgument("decision %s is not valid at %s", decision, sub.Status)
	}
	if sub.CurrentReviewerID != nil && *sub.CurrentReviewerID != actor.UserID {
		return apperrors.Authorization("submission %s is assigned to another reviewer", sub.ID)
	}
	return nil
}

// AssignReviewers moves a submission out of intake into the first review
// stage, optionally binding a specific reviewer for it.
func (s *WorkflowService) AssignReviewers(ctx context.Context, actor workflow.Actor, in AssignReviewersInput) (submission.Submission, error) {
	id := strings.TrimSpace(in.SubmissionID)
	if id == "" {
		return submission.Submission{}, apperrors.InvalidArgument("submission_id is required")
	}
	if !s.Pipeline.CanAssign(actor.Role) {
		return submission.Submission{}, apperrors.Authorization("role %s cannot assign reviewers", actor.Role)
	}

	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	current, err := s.Repos.Submission.GetByID(ctx, id)
	if err != nil {
		return submission.Submission{}, classify(err, "load submission %s", id)
	}
	if actor.Role != user.RoleHeadOfPrograms && current.Institution != actor.Institution {
		return submission.Submission{}, apperrors.Authorization("submission %s belongs to another institution", id)
	}
	if !current.Status.InIntake() {
		return submission.Submission{}, apperrors.Conflict("submission %s is already %s; only draft or submitted work can be assigned", id, current.Status)
	}

	var reviewerID *string
	if in.ReviewerID != nil && strings.TrimSpace(*in.ReviewerID) != "" {
		rid := strings.TrimSpace(*in.ReviewerID)
		if err := s.checkAssignee(ctx, rid, current); err != nil {
			return submission.Submission{}, err
		}
		reviewerID = &rid
	}

	entry := s.Pipeline.Entry()
	desc := "assigned to " + string(entry)
	if reviewerID != nil {
		desc += " for reviewer " + *reviewerID
	}
	return s.transition(ctx, actor, current, entry, reviewerID, audit.ActionAssign, desc)
}

func (s *WorkflowService) checkAssignee(ctx context.Context, reviewerID string, sub submission.Submission) error {
	u, err := s.Repos.User.GetByID(ctx, reviewerID)
	if err != nil {
		return classify(err, "load reviewer %s", reviewerID)
	}
	owner, _ := s.Pipeline.Owner(s.Pipeline.Entry())
	if u.Role != owner {
		return apperrors.InvalidArgument("reviewer %s has role %s, stage %s needs %s", reviewerID, u.Role, s.Pipeline.Entry(), owner)
	}
	if u.Institution != sub.Institution {
		return apperrors.InvalidArgument("reviewer %s belongs to another institution", reviewerID)
	}
	if u.ApprovalStatus != user.ApprovalApproved {
		return apperrors.InvalidArgument("reviewer %s is not an approved user", reviewerID)
	}
	return nil
}

// ResetSubmission returns a submission sent back for corrections to the
// submitted state so it can be assigned again. Review history is kept.
func (s *WorkflowService) ResetSubmission(ctx context.Context, actor workflow.Actor, submissionID string) (submission.Submission, error) {
	return s.creatorTransition(ctx, actor, submissionID,
		s.Pipeline.Corrections(), submission.StatusSubmitted, audit.ActionReset, "reset after corrections")
}

// SubmitForReview hands a draft over for assignment.
func (s *WorkflowService) SubmitForReview(ctx context.Context, actor workflow.Actor, submissionID string) (submission.Submission, error) {
	return s.creatorTransition(ctx, actor, submissionID,
		submission.StatusDraft, submission.StatusSubmitted, audit.ActionSubmit, "submitted for review")
}

func (s *WorkflowService) creatorTransition(ctx context.Context, actor workflow.Actor, submissionID string, from, to submission.Status, action, desc string) (submission.Submission, error) {
	id := strings.TrimSpace(submissionID)
	if id == "" {
		return submission.Submission{}, apperrors.InvalidArgument("submission_id is required")
	}

	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	current, err := s.Repos.Submission.GetByID(ctx, id)
	if err != nil {
		return submission.Submission{}, classify(err, "load submission %s", id)
	}
	if !canActForCreator(s.Pipeline, actor, current) {
		return submission.Submission{}, apperrors.Authorization("only the creator of %s or an administrator can do this", id)
	}
	if current.Status != from {
		return submission.Submission{}, apperrors.Conflict("submission %s is %s, expected %s", id, current.Status, from)
	}
	return s.transition(ctx, actor, current, to, nil, action, desc)
}

// transition writes a status change that carries no review record.
func (s *WorkflowService) transition(ctx context.Context, actor workflow.Actor, current submission.Submission, to submission.Status, reviewerID *string, action, desc string) (submission.Submission, error) {
	var updated submission.Submission
	err := s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		locked, err := tx.Submission.GetForUpdate(ctx, current.ID)
		if err != nil {
			return err
		}
		if locked.Status != current.Status {
			return apperrors.Conflict("submission %s moved from %s to %s, reload and retry", current.ID, current.Status, locked.Status)
		}
		updated, err = tx.Submission.UpdateStatus(ctx, repository.StatusChange{
			ID:              locked.ID,
			ExpectedVersion: locked.Version,
			Status:          to,
			ReviewerID:      reviewerID,
		})
		if err != nil {
			return err
		}
		return tx.Audit.CreateAuditLog(ctx, newAuditLog(actor, action, audit.ResourceSubmission, locked.ID,
			statusSnapshot(locked), statusSnapshot(updated), desc))
	})
	if err != nil {
		return submission.Submission{}, classify(err, "%s %s", action, current.ID)
	}

	s.Events.Publish(newTransitionEvent(action, actor, current.Status, updated))
	return updated, nil
}

// Overdue lists submissions idle in a review stage for longer than age.
func (s *WorkflowService) Overdue(ctx context.Context, age time.Duration, now time.Time) ([]submission.Submission, error) {
	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	subs, err := s.Repos.Submission.ListOverdue(ctx, submission.OverdueFilter{
		Statuses: s.Pipeline.ReviewStatuses(),
		Before:   now.Add(-age),
	})
	if err != nil {
		return nil, classify(err, "list overdue submissions")
	}
	return subs, nil
}

// canActForCreator reports whether actor may act as the submission's
// creator: the creator themself, or an override role with reach over it.
func canActForCreator(p *workflow.Pipeline, actor workflow.Actor, sub submission.Submission) bool {
	if actor.UserID == sub.CreatorID {
		return true
	}
	if !p.CanOverride(actor.Role) {
		return false
	}
	return actor.Role == user.RoleHeadOfPrograms || actor.Institution == sub.Institution
}

type statusView struct {
	Status            submission.Status `json:"status"`
	CurrentReviewerID *string           `json:"current_reviewer_id"`
	Version           int64             `json:"version"`
}

func statusSnapshot(s submission.Submission) statusView {
	return statusView{
		Status:            s.Status,
		CurrentReviewerID: s.CurrentReviewerID,
		Version:           s.Version,
	}
}
