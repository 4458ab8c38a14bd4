//go:build integration

package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/review"
	"github.com/linskybing/moderation-platform/internal/domain/submission"
	apperrors "github.com/linskybing/moderation-platform/internal/errors"
	"github.com/linskybing/moderation-platform/internal/repository"
	"github.com/linskybing/moderation-platform/internal/testutils"
	"github.com/linskybing/moderation-platform/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPostgresServices(t *testing.T) (*gorm.DB, *Services) {
	t.Helper()
	gdb, cleanup := testutils.SetupPostgresForIntegration()
	t.Cleanup(cleanup)

	svc := New(repository.NewRepositories(gdb), Options{
		Pipeline:       testPipeline(t),
		Events:         NewEventHub(0),
		Files:          newFakeFileStore(),
		StorageTimeout: 5 * time.Second,
	})
	return gdb, svc
}

func startedSubmission(t *testing.T, svc *Services) submission.Submission {
	t.Helper()
	ctx := context.Background()
	sub, err := svc.Submission.Create(ctx, instructor, submission.CreateSubmissionDTO{SkillArea: "Welding", Cohort: "2026-A"})
	require.NoError(t, err)
	_, err = svc.Workflow.SubmitForReview(ctx, instructor, sub.ID)
	require.NoError(t, err)
	sub, err = svc.Workflow.AssignReviewers(ctx, coordinator, AssignReviewersInput{SubmissionID: sub.ID})
	require.NoError(t, err)
	require.Equal(t, submission.StatusLEReview, sub.Status)
	return sub
}

func TestIntegration_ConcurrentSubmitReviewSerialises(t *testing.T) {
	gdb, svc := setupPostgresServices(t)
	sub := startedSubmission(t, svc)

	const reviewers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := actorFor("le-"+string(rune('a'+i)), langExpert.Role)
			<-start
			_, err := svc.Workflow.SubmitReview(context.Background(), actor, SubmitReviewInput{
				SubmissionID: sub.ID,
				Decision:     string(review.DecisionNoCorrectionsRequired),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, apperrors.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, reviewers-1, conflicts)

	var count int64
	require.NoError(t, gdb.Model(&review.Review{}).Where("submission_id = ?", sub.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err := svc.Submission.Get(context.Background(), headOfProgs, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusSEReview, got.Status)
}

func TestIntegration_FullChainAndImmutableReviews(t *testing.T) {
	gdb, svc := setupPostgresServices(t)
	sub := startedSubmission(t, svc)
	ctx := context.Background()

	steps := []struct {
		actor    workflow.Actor
		decision review.Decision
	}{
		{langExpert, review.DecisionNoCorrectionsRequired},
		{subjExpert, review.DecisionNoCorrectionsRequired},
		{seniorInst, review.DecisionApproved},
		{coordinator, review.DecisionApproved},
		{finalMod, review.DecisionApproved},
	}
	for _, step := range steps {
		_, err := svc.Workflow.SubmitReview(ctx, step.actor, SubmitReviewInput{SubmissionID: sub.ID, Decision: string(step.decision)})
		require.NoError(t, err, step.actor.Role)
	}

	got, err := svc.Submission.Get(ctx, headOfProgs, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusApproved, got.Status)

	reviews, err := svc.Review.List(ctx, headOfProgs, []string{sub.ID})
	require.NoError(t, err)
	require.Len(t, reviews, 5)
	for i, r := range reviews {
		assert.Equal(t, i+1, r.Sequence)
	}

	first := reviews[0]
	err = gdb.Model(&first).Update("comments", "edited").Error
	assert.ErrorIs(t, err, review.ErrImmutable)
	err = gdb.Delete(&first).Error
	assert.ErrorIs(t, err, review.ErrImmutable)

	var stored review.Review
	require.NoError(t, gdb.First(&stored, "id = ?", first.ID).Error)
	assert.Equal(t, first.Comments, stored.Comments)
}
