package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/moderation-platform/internal/domain/audit"
	apperrors "github.com/linskybing/moderation-platform/internal/errors"
	"github.com/linskybing/moderation-platform/internal/repository"
	"github.com/linskybing/moderation-platform/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuditServiceMocks(t *testing.T) (*AuditService, *mock.MockAuditRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockAudit := mock.NewMockAuditRepo(ctrl)
	return NewAuditService(&repository.Repos{Audit: mockAudit}, time.Second), mockAudit
}

func TestQueryAuditLogs_Limits(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, DefaultAuditLimit},
		{"explicit", 10, 10},
		{"capped", 5000, MaxAuditLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockAudit := setupAuditServiceMocks(t)
			mockAudit.EXPECT().GetAuditLogs(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, p repository.AuditQueryParams) ([]audit.AuditLog, error) {
					assert.Equal(t, tt.want, p.Limit)
					return []audit.AuditLog{{ID: 1}}, nil
				})

			logs, err := svc.QueryAuditLogs(context.Background(), headOfProgs, repository.AuditQueryParams{Limit: tt.limit})
			require.NoError(t, err)
			assert.Len(t, logs, 1)
		})
	}
}

func TestQueryAuditLogs_Rejects(t *testing.T) {
	svc, _ := setupAuditServiceMocks(t)
	ctx := context.Background()

	_, err := svc.QueryAuditLogs(ctx, instructor, repository.AuditQueryParams{})
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)

	_, err = svc.QueryAuditLogs(ctx, headOfProgs, repository.AuditQueryParams{Limit: -1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	start := time.Now()
	end := start.Add(-time.Hour)
	_, err = svc.QueryAuditLogs(ctx, headOfProgs, repository.AuditQueryParams{StartTime: &start, EndTime: &end})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestQueryAuditLogs_RecordsRoleAndStorageError(t *testing.T) {
	svc, mockAudit := setupAuditServiceMocks(t)
	records := actorFor("rec-1", "records")

	mockAudit.EXPECT().GetAuditLogs(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := svc.QueryAuditLogs(context.Background(), records, repository.AuditQueryParams{})
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
}
