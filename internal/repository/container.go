package repository

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/repos.go -package=mock github.com/linskybing/moderation-platform/internal/repository SubmissionRepo,ReviewRepo,DocumentRepo,UserRepo,AuditRepo

type Repos struct {
	Submission SubmissionRepo
	Review     ReviewRepo
	Document   DocumentRepo
	User       UserRepo
	Audit      AuditRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Submission: NewSubmissionRepo(db),
		Review:     NewReviewRepo(db),
		Document:   NewDocumentRepo(db),
		User:       NewUserRepo(db),
		Audit:      NewAuditRepo(db),
		db:         db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Submission: r.Submission.WithTx(tx),
		Review:     r.Review.WithTx(tx),
		Document:   r.Document.WithTx(tx),
		User:       r.User.WithTx(tx),
		Audit:      r.Audit.WithTx(tx),
		db:         tx,
	}
}

// ExecTx runs fn inside one database transaction bound to ctx. Returning an
// error from fn rolls everything back. Repos built without a database (unit
// tests over mocks) run fn directly against themselves.
func (r *Repos) ExecTx(ctx context.Context, fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
