package application

import (
	"context"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/audit"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	apperrors "github.com/linskybing/moderation-platform/internal/errors"
	"github.com/linskybing/moderation-platform/internal/repository"
	"github.com/linskybing/moderation-platform/internal/workflow"
)

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 1000
)

type AuditService struct {
	Repos   *repository.Repos
	Timeout time.Duration
}

func NewAuditService(repos *repository.Repos, timeout time.Duration) *AuditService {
	return &AuditService{
		Repos:   repos,
		Timeout: timeout,
	}
}

// QueryAuditLogs returns the most recent entries matching params.
func (s *AuditService) QueryAuditLogs(ctx context.Context, actor workflow.Actor, params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	if !actor.Role.In(user.RoleHeadOfPrograms, user.RoleRecords, user.RoleInstitutionManager) {
		return nil, apperrors.Authorization("role %s cannot read audit logs", actor.Role)
	}
	if params.Limit < 0 || params.Offset < 0 {
		return nil, apperrors.InvalidArgument("limit and offset must not be negative")
	}
	if params.StartTime != nil && params.EndTime != nil && params.EndTime.Before(*params.StartTime) {
		return nil, apperrors.InvalidArgument("end_time is before start_time")
	}
	if params.Limit == 0 {
		params.Limit = DefaultAuditLimit
	}
	if params.Limit > MaxAuditLimit {
		params.Limit = MaxAuditLimit
	}

	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	logs, err := s.Repos.Audit.GetAuditLogs(ctx, params)
	if err != nil {
		return nil, classify(err, "query audit logs")
	}
	return logs, nil
}
