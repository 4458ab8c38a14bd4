package repository

import (
	"context"

	"github.com/linskybing/moderation-platform/internal/domain/review"
	"gorm.io/gorm"
)

// ReviewRepo is append-only: it has no update or delete.
type ReviewRepo interface {
	Create(ctx context.Context, r *review.Review) error
	CountBySubmissionID(ctx context.Context, submissionID string) (int64, error)
	ListBySubmissionIDs(ctx context.Context, submissionIDs []string) ([]review.Review, error)
	WithTx(tx *gorm.DB) ReviewRepo
}

type DBReviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *DBReviewRepo {
	return &DBReviewRepo{
		db: db,
	}
}

func (r *DBReviewRepo) Create(ctx context.Context, rv *review.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *DBReviewRepo) CountBySubmissionID(ctx context.Context, submissionID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Where("submission_id = ?", submissionID).
		Count(&n).Error
	return n, err
}

func (r *DBReviewRepo) ListBySubmissionIDs(ctx context.Context, submissionIDs []string) ([]review.Review, error) {
	var out []review.Review
	if len(submissionIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("submission_id IN ?", submissionIDs).
		Order("created_at ASC").
		Order("sequence ASC").
		Find(&out).Error
	return out, err
}

func (r *DBReviewRepo) WithTx(tx *gorm.DB) ReviewRepo {
	if tx == nil {
		return r
	}
	return &DBReviewRepo{
		db: tx,
	}
}
