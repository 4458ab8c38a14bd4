package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/linskybing/moderation-platform/internal/domain/audit"
	"github.com/linskybing/moderation-platform/internal/domain/review"
	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	"github.com/linskybing/moderation-platform/internal/repository"
	"gorm.io/gorm"
)

// memStore backs the fake repositories used by the scenario tests.
type memStore struct {
	mu sync.Mutex

	submissions map[string]submission.Submission
	reviews     []review.Review
	documents   []submission.Document
	users       map[string]user.User
	audits      []audit.AuditLog

	// duplicateCreates makes the next N submission inserts fail as a
	// unique-key collision.
	duplicateCreates int
	failDocument     error
}

func newMemStore() *memStore {
	return &memStore{
		submissions: make(map[string]submission.Submission),
		users:       make(map[string]user.User),
	}
}

type memSnapshot struct {
	Submissions map[string]submission.Submission
	Reviews     []review.Review
	Documents   []submission.Document
	Audits      []audit.AuditLog
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	subs := make(map[string]submission.Submission, len(m.submissions))
	for k, v := range m.submissions {
		subs[k] = v
	}
	return memSnapshot{
		Submissions: subs,
		Reviews:     append([]review.Review(nil), m.reviews...),
		Documents:   append([]submission.Document(nil), m.documents...),
		Audits:      append([]audit.AuditLog(nil), m.audits...),
	}
}

func (m *memStore) repos() *repository.Repos {
	return &repository.Repos{
		Submission: &fakeSubmissionRepo{m},
		Review:     &fakeReviewRepo{m},
		Document:   &fakeDocumentRepo{m},
		User:       &fakeUserRepo{m},
		Audit:      &fakeAuditRepo{m},
	}
}

type fakeSubmissionRepo struct{ m *memStore }

func (f *fakeSubmissionRepo) Create(ctx context.Context, s *submission.Submission) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.duplicateCreates > 0 {
		f.m.duplicateCreates--
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range f.m.submissions {
		if existing.ReferenceCode == s.ReferenceCode {
			return gorm.ErrDuplicatedKey
		}
	}
	f.m.submissions[s.ID] = *s
	return nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (submission.Submission, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	s, ok := f.m.submissions[id]
	if !ok {
		return submission.Submission{}, gorm.ErrRecordNotFound
	}
	s.Documents = nil
	return s, nil
}

func (f *fakeSubmissionRepo) GetWithDocuments(ctx context.Context, id string) (submission.Submission, error) {
	s, err := f.GetByID(ctx, id)
	if err != nil {
		return s, err
	}
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for _, d := range f.m.documents {
		if d.SubmissionID == id {
			s.Documents = append(s.Documents, d)
		}
	}
	return s, nil
}

func (f *fakeSubmissionRepo) GetForUpdate(ctx context.Context, id string) (submission.Submission, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeSubmissionRepo) LockByReviewer(ctx context.Context, reviewerID string) ([]submission.Submission, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []submission.Submission
	for _, s := range f.m.submissions {
		if s.CurrentReviewerID != nil && *s.CurrentReviewerID == reviewerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSubmissionRepo) UpdateStatus(ctx context.Context, change repository.StatusChange) (submission.Submission, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	s, ok := f.m.submissions[change.ID]
	if !ok || s.Version != change.ExpectedVersion {
		return submission.Submission{}, repository.ErrStaleVersion
	}
	s.Status = change.Status
	s.CurrentReviewerID = change.ReviewerID
	s.Version++
	f.m.submissions[change.ID] = s
	return s, nil
}

func (f *fakeSubmissionRepo) List(ctx context.Context, scope submission.Scope) ([]submission.Submission, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []submission.Submission
	for _, s := range f.m.submissions {
		if scope.Institution != nil && s.Institution != *scope.Institution {
			continue
		}
		if scope.CreatorID != nil && s.CreatorID != *scope.CreatorID {
			continue
		}
		if len(scope.Statuses) > 0 && !s.Status.In(scope.Statuses...) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSubmissionRepo) ListOverdue(ctx context.Context, filter submission.OverdueFilter) ([]submission.Submission, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []submission.Submission
	for _, s := range f.m.submissions {
		if s.Status.In(filter.Statuses...) && s.UpdatedAt.Before(filter.Before) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) WithTx(tx *gorm.DB) repository.SubmissionRepo { return f }

type fakeReviewRepo struct{ m *memStore }

func (f *fakeReviewRepo) Create(ctx context.Context, r *review.Review) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.reviews = append(f.m.reviews, *r)
	return nil
}

func (f *fakeReviewRepo) CountBySubmissionID(ctx context.Context, submissionID string) (int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var n int64
	for _, r := range f.m.reviews {
		if r.SubmissionID == submissionID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) ListBySubmissionIDs(ctx context.Context, ids []string) ([]review.Review, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []review.Review
	for _, r := range f.m.reviews {
		if want[r.SubmissionID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) WithTx(tx *gorm.DB) repository.ReviewRepo { return f }

type fakeDocumentRepo struct{ m *memStore }

func (f *fakeDocumentRepo) Create(ctx context.Context, d *submission.Document) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.failDocument != nil {
		return f.m.failDocument
	}
	f.m.documents = append(f.m.documents, *d)
	return nil
}

func (f *fakeDocumentRepo) ListBySubmissionID(ctx context.Context, submissionID string) ([]submission.Document, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []submission.Document
	for _, d := range f.m.documents {
		if d.SubmissionID == submissionID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) WithTx(tx *gorm.DB) repository.DocumentRepo { return f }

type fakeUserRepo struct{ m *memStore }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	u, ok := f.m.users[id]
	if !ok {
		return user.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context, institution *string) ([]user.User, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []user.User
	for _, u := range f.m.users {
		if institution == nil || u.Institution == *institution {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Save(ctx context.Context, u *user.User) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.m.users, id)
	return nil
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) repository.UserRepo { return f }

type fakeAuditRepo struct{ m *memStore }

func (f *fakeAuditRepo) GetAuditLogs(ctx context.Context, params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []audit.AuditLog
	for _, a := range f.m.audits {
		if params.ResourceID != nil && a.ResourceID != *params.ResourceID {
			continue
		}
		if params.Action != nil && a.Action != *params.Action {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAuditRepo) CreateAuditLog(ctx context.Context, entry *audit.AuditLog) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	entry.ID = uint(len(f.m.audits) + 1)
	f.m.audits = append(f.m.audits, *entry)
	return nil
}

func (f *fakeAuditRepo) WithTx(tx *gorm.DB) repository.AuditRepo { return f }

// fakeFileStore keeps objects in memory.
type fakeFileStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{objects: make(map[string][]byte)}
}

func (f *fakeFileStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if f.failPut != nil {
		return f.failPut
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeFileStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeFileStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}
