package repository

import (
	"context"
	"errors"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStaleVersion means the row changed since it was read.
var ErrStaleVersion = errors.New("submission was modified concurrently")

// StatusChange moves a submission from the version it was read at.
type StatusChange struct {
	ID              string
	ExpectedVersion int64
	Status          submission.Status
	ReviewerID      *string
}

type SubmissionRepo interface {
	Create(ctx context.Context, s *submission.Submission) error
	GetByID(ctx context.Context, id string) (submission.Submission, error)
	GetWithDocuments(ctx context.Context, id string) (submission.Submission, error)
	GetForUpdate(ctx context.Context, id string) (submission.Submission, error)
	LockByReviewer(ctx context.Context, reviewerID string) ([]submission.Submission, error)
	UpdateStatus(ctx context.Context, change StatusChange) (submission.Submission, error)
	List(ctx context.Context, scope submission.Scope) ([]submission.Submission, error)
	ListOverdue(ctx context.Context, filter submission.OverdueFilter) ([]submission.Submission, error)
	WithTx(tx *gorm.DB) SubmissionRepo
}

type DBSubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *DBSubmissionRepo {
	return &DBSubmissionRepo{
		db: db,
	}
}

func (r *DBSubmissionRepo) Create(ctx context.Context, s *submission.Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *DBSubmissionRepo) GetByID(ctx context.Context, id string) (submission.Submission, error) {
	var s submission.Submission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	return s, err
}

func (r *DBSubmissionRepo) GetWithDocuments(ctx context.Context, id string) (submission.Submission, error) {
	var s submission.Submission
	err := r.db.WithContext(ctx).
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&s).Error
	return s, err
}

// GetForUpdate reads the row under an exclusive lock held until the
// surrounding transaction ends. Outside a transaction the lock is released
// immediately, so callers go through Repos.ExecTx.
func (r *DBSubmissionRepo) GetForUpdate(ctx context.Context, id string) (submission.Submission, error) {
	var s submission.Submission
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&s).Error
	return s, err
}

// LockByReviewer locks every submission currently bound to reviewerID.
func (r *DBSubmissionRepo) LockByReviewer(ctx context.Context, reviewerID string) ([]submission.Submission, error) {
	var out []submission.Submission
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("current_reviewer_id = ?", reviewerID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *DBSubmissionRepo) UpdateStatus(ctx context.Context, change StatusChange) (submission.Submission, error) {
	res := r.db.WithContext(ctx).
		Model(&submission.Submission{}).
		Where("id = ? AND version = ?", change.ID, change.ExpectedVersion).
		Updates(map[string]interface{}{
			"status":              change.Status,
			"current_reviewer_id": change.ReviewerID,
			"version":             gorm.Expr("version + 1"),
			"updated_at":          time.Now(),
		})
	if res.Error != nil {
		return submission.Submission{}, res.Error
	}
	if res.RowsAffected == 0 {
		return submission.Submission{}, ErrStaleVersion
	}
	return r.GetByID(ctx, change.ID)
}

func (r *DBSubmissionRepo) List(ctx context.Context, scope submission.Scope) ([]submission.Submission, error) {
	var out []submission.Submission
	query := r.db.WithContext(ctx).Model(&submission.Submission{})
	if scope.Institution != nil {
		query = query.Where("institution = ?", *scope.Institution)
	}
	if scope.CreatorID != nil {
		query = query.Where("creator_id = ?", *scope.CreatorID)
	}
	if len(scope.Statuses) > 0 {
		query = query.Where("status IN ?", scope.Statuses)
	}
	err := query.Order("updated_at DESC").Find(&out).Error
	return out, err
}

func (r *DBSubmissionRepo) ListOverdue(ctx context.Context, filter submission.OverdueFilter) ([]submission.Submission, error) {
	var out []submission.Submission
	if len(filter.Statuses) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("status IN ?", filter.Statuses).
		Where("updated_at < ?", filter.Before).
		Order("updated_at ASC").
		Find(&out).Error
	return out, err
}

func (r *DBSubmissionRepo) WithTx(tx *gorm.DB) SubmissionRepo {
	if tx == nil {
		return r
	}
	return &DBSubmissionRepo{
		db: tx,
	}
}
