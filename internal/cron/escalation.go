// Package cron runs the periodic background tasks of the API process.
package cron

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/linskybing/moderation-platform/internal/notify"
)

// OverdueLister is the slice of the workflow service the escalation task needs.
type OverdueLister interface {
	Overdue(ctx context.Context, age time.Duration, now time.Time) ([]submission.Submission, error)
}

type EscalationConfig struct {
	Recipient     string
	ReviewTimeout time.Duration
	Interval      time.Duration
}

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"days": func(now, since time.Time) int { return int(now.Sub(since).Hours() / 24) },
}).Parse(`<p>{{len .Items}} submission(s) have waited more than {{.TimeoutDays}} days in review.</p>
<table>
<tr><th>Reference</th><th>Title</th><th>Stage</th><th>Institution</th><th>Idle (days)</th></tr>
{{range .Items}}<tr><td>{{.ReferenceCode}}</td><td>{{.Title}}</td><td>{{.Status}}</td><td>{{.Institution}}</td><td>{{days $.Now .UpdatedAt}}</td></tr>
{{end}}</table>`))

// BuildDigest renders the overdue digest. It returns an empty body when
// nothing is overdue.
func BuildDigest(items []submission.Submission, timeout time.Duration, now time.Time) (string, string, error) {
	if len(items) == 0 {
		return "", "", nil
	}
	var buf bytes.Buffer
	err := digestTemplate.Execute(&buf, struct {
		Items       []submission.Submission
		TimeoutDays int
		Now         time.Time
	}{items, int(timeout.Hours() / 24), now})
	if err != nil {
		return "", "", fmt.Errorf("render digest: %w", err)
	}
	subject := fmt.Sprintf("%d overdue submission review(s)", len(items))
	return subject, buf.String(), nil
}

// RunEscalation sends one digest of overdue reviews.
func RunEscalation(ctx context.Context, lister OverdueLister, mailer notify.Mailer, cfg EscalationConfig, now time.Time) (int, error) {
	items, err := lister.Overdue(ctx, cfg.ReviewTimeout, now)
	if err != nil {
		return 0, err
	}
	subject, body, err := BuildDigest(items, cfg.ReviewTimeout, now)
	if err != nil || subject == "" {
		return 0, err
	}
	if cfg.Recipient == "" {
		log.Printf("[escalation] %d overdue submission(s), no ESCALATION_EMAIL set", len(items))
		return len(items), nil
	}
	if err := mailer.Send([]string{cfg.Recipient}, subject, body); err != nil {
		return len(items), fmt.Errorf("send digest: %w", err)
	}
	return len(items), nil
}

// StartEscalationTask runs RunEscalation now and then every cfg.Interval
// until ctx is cancelled.
func StartEscalationTask(ctx context.Context, lister OverdueLister, mailer notify.Mailer, cfg EscalationConfig) {
	go func() {
		log.Printf("Starting overdue review escalation (timeout %s, every %s)", cfg.ReviewTimeout, cfg.Interval)

		run := func() {
			n, err := RunEscalation(ctx, lister, mailer, cfg, time.Now())
			if err != nil {
				log.Printf("Failed to run review escalation: %v", err)
				return
			}
			if n > 0 {
				log.Printf("Review escalation reported %d overdue submission(s)", n)
			}
		}
		run()

		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
