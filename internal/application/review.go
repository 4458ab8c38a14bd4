package application

import (
	"context"
	"strings"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/review"
	apperrors "github.com/linskybing/moderation-platform/internal/errors"
	"github.com/linskybing/moderation-platform/internal/repository"
	"github.com/linskybing/moderation-platform/internal/workflow"
)

// MaxReviewListIDs bounds how many submissions one review listing may name.
const MaxReviewListIDs = 100

type ReviewService struct {
	Repos   *repository.Repos
	Timeout time.Duration
}

func NewReviewService(repos *repository.Repos, timeout time.Duration) *ReviewService {
	return &ReviewService{
		Repos:   repos,
		Timeout: timeout,
	}
}

// List returns the review records of the given submissions in the order they
// were written. Every submission must exist and be visible to actor.
func (s *ReviewService) List(ctx context.Context, actor workflow.Actor, submissionIDs []string) ([]review.Review, error) {
	ids := dedupe(submissionIDs)
	if len(ids) == 0 {
		return nil, apperrors.InvalidArgument("submission_id or submission_ids is required")
	}
	if len(ids) > MaxReviewListIDs {
		return nil, apperrors.InvalidArgument("at most %d submission ids may be listed, got %d", MaxReviewListIDs, len(ids))
	}

	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	for _, id := range ids {
		sub, err := s.Repos.Submission.GetByID(ctx, id)
		if err != nil {
			return nil, classify(err, "load submission %s", id)
		}
		if !workflow.CanView(actor, sub) {
			return nil, apperrors.Authorization("submission %s is not visible to you", id)
		}
	}

	reviews, err := s.Repos.Review.ListBySubmissionIDs(ctx, ids)
	if err != nil {
		return nil, classify(err, "list reviews")
	}
	return reviews, nil
}

func dedupe(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		id := strings.TrimSpace(r)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
