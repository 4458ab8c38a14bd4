package application

import (
	"context"
	"fmt"
	"testing"

	apperrors "github.com/linskybing/moderation-platform/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListReviews(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := inReview(t, h)
	b := inReview(t, h)
	decide(t, h, langExpert, a.ID, "no_corrections_required")
	decide(t, h, langExpert, b.ID, "rejected")

	got, err := h.svc.Review.List(ctx, coordinator, []string{a.ID, b.ID, a.ID, " "})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = h.svc.Review.List(ctx, coordinator, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = h.svc.Review.List(ctx, coordinator, []string{a.ID, "missing"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	foreign := coordinator
	foreign.Institution = "South College"
	_, err = h.svc.Review.List(ctx, foreign, []string{a.ID})
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)
}

func TestListReviews_BoundsIDs(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	ids := make([]string, 0, MaxReviewListIDs+1)
	for i := 0; i <= MaxReviewListIDs; i++ {
		ids = append(ids, fmt.Sprintf("sub-%03d", i))
	}
	_, err := h.svc.Review.List(ctx, headOfProgs, ids)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "at most 100")

	// Duplicates collapse before the bound applies.
	sub := inReview(t, h)
	repeated := make([]string, MaxReviewListIDs+1)
	for i := range repeated {
		repeated[i] = sub.ID
	}
	_, err = h.svc.Review.List(ctx, headOfProgs, repeated)
	assert.NoError(t, err)

	_, err = h.svc.Review.List(ctx, headOfProgs, ids[:MaxReviewListIDs])
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
