package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/review"
	apperrors "github.com/linskybing/moderation-platform/internal/errors"
	"github.com/linskybing/moderation-platform/internal/repository"
	"gorm.io/gorm"
)

// classify turns a storage error into the service taxonomy. Errors that are
// already classified pass through untouched.
func classify(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}

	op := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound("%s: not found", op)
	case errors.Is(err, repository.ErrStaleVersion):
		return apperrors.Conflict("%s: submission changed concurrently, reload and retry", op)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict("%s: already exists", op)
	case errors.Is(err, review.ErrImmutable):
		return apperrors.Conflict("%s: review records cannot be changed", op)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Unavailable(err, "%s: storage timed out", op)
	default:
		return apperrors.Unavailable(err, "%s: storage unavailable", op)
	}
}

func storageContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
