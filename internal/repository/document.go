package repository

import (
	"context"

	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"gorm.io/gorm"
)

type DocumentRepo interface {
	Create(ctx context.Context, d *submission.Document) error
	ListBySubmissionID(ctx context.Context, submissionID string) ([]submission.Document, error)
	WithTx(tx *gorm.DB) DocumentRepo
}

type DBDocumentRepo struct {
	db *gorm.DB
}

func NewDocumentRepo(db *gorm.DB) *DBDocumentRepo {
	return &DBDocumentRepo{
		db: db,
	}
}

func (r *DBDocumentRepo) Create(ctx context.Context, d *submission.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DBDocumentRepo) ListBySubmissionID(ctx context.Context, submissionID string) ([]submission.Document, error) {
	var out []submission.Document
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *DBDocumentRepo) WithTx(tx *gorm.DB) DocumentRepo {
	if tx == nil {
		return r
	}
	return &DBDocumentRepo{
		db: tx,
	}
}
