package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	items []submission.Submission
	err   error
	age   time.Duration
	calls int
	mu    sync.Mutex
}

func (s *stubLister) Overdue(ctx context.Context, age time.Duration, now time.Time) ([]submission.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.age = age
	return s.items, s.err
}

func (s *stubLister) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type recordingMailer struct {
	to      []string
	subject string
	body    string
	err     error
}

func (m *recordingMailer) Send(to []string, subject, html string) error {
	m.to, m.subject, m.body = to, subject, html
	return m.err
}

func overdueItems(now time.Time) []submission.Submission {
	return []submission.Submission{
		{ReferenceCode: "RFA-2026-0100001", Title: "Welding - A", Status: submission.StatusSEReview, Institution: "North", UpdatedAt: now.Add(-20 * 24 * time.Hour)},
		{ReferenceCode: "RFA-2026-0100002", Title: "<b>Plumbing</b>", Status: submission.StatusPCReview, Institution: "South", UpdatedAt: now.Add(-15 * 24 * time.Hour)},
	}
}

func TestBuildDigest(t *testing.T) {
	now := time.Now()
	subject, body, err := BuildDigest(overdueItems(now), 14*24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, "2 overdue submission review(s)", subject)
	assert.Contains(t, body, "RFA-2026-0100001")
	assert.Contains(t, body, "more than 14 days")
	assert.Contains(t, body, "<td>20</td>")
	assert.Contains(t, body, "&lt;b&gt;Plumbing&lt;/b&gt;")

	subject, body, err = BuildDigest(nil, time.Hour, now)
	require.NoError(t, err)
	assert.Empty(t, subject)
	assert.Empty(t, body)
}

func TestRunEscalation(t *testing.T) {
	now := time.Now()
	cfg := EscalationConfig{Recipient: "ops@example.org", ReviewTimeout: 14 * 24 * time.Hour}

	t.Run("sends digest", func(t *testing.T) {
		lister := &stubLister{items: overdueItems(now)}
		mailer := &recordingMailer{}
		n, err := RunEscalation(context.Background(), lister, mailer, cfg, now)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, cfg.ReviewTimeout, lister.age)
		assert.Equal(t, []string{"ops@example.org"}, mailer.to)
	})

	t.Run("nothing overdue sends nothing", func(t *testing.T) {
		mailer := &recordingMailer{}
		n, err := RunEscalation(context.Background(), &stubLister{}, mailer, cfg, now)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Nil(t, mailer.to)
	})

	t.Run("no recipient only logs", func(t *testing.T) {
		mailer := &recordingMailer{}
		n, err := RunEscalation(context.Background(), &stubLister{items: overdueItems(now)}, mailer, EscalationConfig{ReviewTimeout: time.Hour}, now)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Nil(t, mailer.to)
	})

	t.Run("errors propagate", func(t *testing.T) {
		_, err := RunEscalation(context.Background(), &stubLister{err: errors.New("db down")}, &recordingMailer{}, cfg, now)
		assert.Error(t, err)

		_, err = RunEscalation(context.Background(), &stubLister{items: overdueItems(now)}, &recordingMailer{err: errors.New("smtp")}, cfg, now)
		assert.Error(t, err)
	})
}

func TestStartEscalationTask_StopsWithContext(t *testing.T) {
	lister := &stubLister{}
	ctx, cancel := context.WithCancel(context.Background())
	StartEscalationTask(ctx, lister, &recordingMailer{}, EscalationConfig{ReviewTimeout: time.Hour, Interval: 10 * time.Millisecond})

	assert.Eventually(t, func() bool { return lister.Calls() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)
	stopped := lister.Calls()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, lister.Calls())
}
