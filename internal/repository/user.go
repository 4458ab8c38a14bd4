package repository

import (
	"context"

	"github.com/linskybing/moderation-platform/internal/domain/user"
	"gorm.io/gorm"
)

type UserRepo interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	List(ctx context.Context, institution *string) ([]user.User, error)
	Save(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id string) error
	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{
		db: db,
	}
}

func (r *DBUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return u, err
}

func (r *DBUserRepo) List(ctx context.Context, institution *string) ([]user.User, error) {
	var users []user.User
	query := r.db.WithContext(ctx).Model(&user.User{})
	if institution != nil {
		query = query.Where("institution = ?", *institution)
	}
	err := query.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *DBUserRepo) Save(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// Delete soft-deletes the user; the row stays for the audit trail.
func (r *DBUserRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&user.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	if tx == nil {
		return r
	}
	return &DBUserRepo{
		db: tx,
	}
}
