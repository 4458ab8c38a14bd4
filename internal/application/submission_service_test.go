package application

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/audit"
	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	apperrors "github.com/linskybing/moderation-platform/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`^RFA-\d{4}-\d{2}\d{5}$`)

func TestNewReferenceCode(t *testing.T) {
	at := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "RFA-2026-0300042", newReferenceCode(at, 42))
	assert.Equal(t, "RFA-2026-0399999", newReferenceCode(at, 99999))
	assert.Regexp(t, referencePattern, newReferenceCode(time.Now(), 123456))
}

func TestCreateSubmission(t *testing.T) {
	h := newHarness(t)

	sub, err := h.svc.Submission.Create(context.Background(), instructor, submission.CreateSubmissionDTO{
		SkillArea: " Plumbing ",
		Cohort:    "2026B",
		SkillCode: "PL-1",
	})
	require.NoError(t, err)
	assert.Equal(t, submission.StatusDraft, sub.Status)
	assert.Equal(t, "Plumbing - 2026B", sub.Title)
	assert.Equal(t, submission.DefaultDocumentType, sub.DocumentType)
	assert.Equal(t, instructor.UserID, sub.CreatorID)
	assert.Equal(t, instructor.Email, sub.CreatorEmail)
	assert.Equal(t, testInstitution, sub.Institution)
	assert.Equal(t, int64(1), sub.Version)
	assert.Regexp(t, referencePattern, sub.ReferenceCode)

	require.Len(t, h.store.audits, 1)
	assert.Equal(t, audit.ActionCreate, h.store.audits[0].Action)
	assert.Equal(t, sub.ID, h.store.audits[0].ResourceID)
}

func TestCreateSubmission_Validation(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Submission.Create(context.Background(), instructor, submission.CreateSubmissionDTO{Cohort: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	_, err = h.svc.Submission.Create(context.Background(), instructor, submission.CreateSubmissionDTO{SkillArea: "x", Cohort: "  "})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Empty(t, h.store.submissions)
}

func TestCreateSubmission_RegeneratesCollidingReference(t *testing.T) {
	h := newHarness(t)
	h.store.duplicateCreates = 2

	var suffixes []int
	next := 10
	h.svc.Submission.refSuffix = func() int {
		next++
		suffixes = append(suffixes, next)
		return next
	}

	sub, err := h.svc.Submission.Create(context.Background(), instructor, submission.CreateSubmissionDTO{SkillArea: "a", Cohort: "b"})
	require.NoError(t, err)
	assert.Len(t, suffixes, 3)
	assert.True(t, strings.HasSuffix(sub.ReferenceCode, "00013"))
}

func TestCreateSubmission_GivesUpAfterRetries(t *testing.T) {
	h := newHarness(t)
	h.store.duplicateCreates = referenceRetries + 1

	_, err := h.svc.Submission.Create(context.Background(), instructor, submission.CreateSubmissionDTO{SkillArea: "a", Cohort: "b"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Empty(t, h.store.submissions)
	assert.Equal(t, 0, h.store.duplicateCreates)
}

func TestListSubmissions_Scoped(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	mine := createDraft(t, h)
	other := actorFor("ins-2", user.RoleInstructor)
	_, err := h.svc.Submission.Create(ctx, other, submission.CreateSubmissionDTO{SkillArea: "a", Cohort: "b"})
	require.NoError(t, err)
	south := actorFor("ins-3", user.RoleInstructor)
	south.Institution = "South College"
	_, err = h.svc.Submission.Create(ctx, south, submission.CreateSubmissionDTO{SkillArea: "a", Cohort: "b"})
	require.NoError(t, err)

	got, err := h.svc.Submission.List(ctx, instructor)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)

	got, err = h.svc.Submission.List(ctx, langExpert)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = h.svc.Submission.List(ctx, headOfProgs)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestArchive(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	created := time.Date(2020, 3, 1, 9, 0, 0, 0, time.UTC)
	approvedAt := created.AddDate(0, 2, 0)

	h.store.submissions["north-approved"] = submission.Submission{
		ID: "north-approved", Status: submission.StatusApproved, Institution: testInstitution,
		CreatorID: instructor.UserID, CreatedAt: created, UpdatedAt: approvedAt,
	}
	h.store.submissions["south-approved"] = submission.Submission{
		ID: "south-approved", Status: submission.StatusApproved, Institution: "South College",
		CreatorID: "ins-3", CreatedAt: created, UpdatedAt: approvedAt,
	}
	h.store.submissions["north-review"] = submission.Submission{
		ID: "north-review", Status: submission.StatusAMOReview, Institution: testInstitution,
		CreatorID: instructor.UserID, CreatedAt: created, UpdatedAt: approvedAt,
	}

	got, err := h.svc.Submission.Archive(ctx, instManager)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "north-approved", got[0].ID)
	assert.Equal(t, approvedAt, got[0].ArchivedAt)
	assert.Equal(t, time.Date(2027, 3, 1, 9, 0, 0, 0, time.UTC), got[0].RetentionUntil)

	got, err = h.svc.Submission.Archive(ctx, headOfProgs)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = h.svc.Submission.Archive(ctx, actorFor("ins-2", user.RoleInstructor))
	require.NoError(t, err)
	assert.Empty(t, got)

	h.svc.Submission.RetentionYears = 5
	got, err = h.svc.Submission.Archive(ctx, instructor)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), got[0].RetentionUntil)
}

func TestGetSubmission_Visibility(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sub := createDraft(t, h)

	got, err := h.svc.Submission.Get(ctx, langExpert, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ReferenceCode, got.ReferenceCode)

	foreign := langExpert
	foreign.Institution = "South College"
	_, err = h.svc.Submission.Get(ctx, foreign, sub.ID)
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)

	_, err = h.svc.Submission.Get(ctx, langExpert, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUploadDocument(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sub := createDraft(t, h)

	body := "%PDF-1.7 fake"
	doc, err := h.svc.Submission.UploadDocument(ctx, instructor, sub.ID, submission.DocumentUpload{
		FileName:    "paper.PDF",
		ContentType: "application/pdf",
		Size:        int64(len(body)),
	}, strings.NewReader(body))
	require.NoError(t, err)

	assert.Regexp(t, `^submissions/`+regexp.QuoteMeta(sub.ID)+`/[0-9a-f-]{36}\.pdf$`, doc.ObjectKey)
	assert.Equal(t, "paper.PDF", doc.FileName)
	assert.Equal(t, []byte(body), h.files.objects[doc.ObjectKey])

	got, err := h.svc.Submission.Get(ctx, instructor, sub.ID)
	require.NoError(t, err)
	require.Len(t, got.Documents, 1)
	assert.Equal(t, doc.ID, got.Documents[0].ID)
}

func TestUploadDocument_Rejects(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sub := createDraft(t, h)

	tests := []struct {
		name string
		file submission.DocumentUpload
	}{
		{"too large", submission.DocumentUpload{FileName: "a.pdf", ContentType: "application/pdf", Size: MaxDocumentSize + 1}},
		{"empty", submission.DocumentUpload{FileName: "a.pdf", ContentType: "application/pdf", Size: 0}},
		{"executable", submission.DocumentUpload{FileName: "a.exe", ContentType: "application/octet-stream", Size: 10}},
		{"mismatched type", submission.DocumentUpload{FileName: "a.png", ContentType: "application/pdf", Size: 10}},
		{"no name", submission.DocumentUpload{ContentType: "application/pdf", Size: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Submission.UploadDocument(ctx, instructor, sub.ID, tt.file, strings.NewReader("x"))
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}

	_, err := h.svc.Submission.UploadDocument(ctx, langExpert, sub.ID,
		submission.DocumentUpload{FileName: "a.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 1},
		strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)
	assert.Empty(t, h.files.objects)
}

func TestUploadDocument_RemovesObjectWhenMetadataFails(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sub := createDraft(t, h)
	h.store.failDocument = errors.New("insert failed")

	_, err := h.svc.Submission.UploadDocument(ctx, instructor, sub.ID,
		submission.DocumentUpload{FileName: "scan.jpg", ContentType: "image/jpeg", Size: 3},
		strings.NewReader("abc"))
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Empty(t, h.files.objects)
}

func TestUploadDocument_StoreFailure(t *testing.T) {
	h := newHarness(t)
	sub := createDraft(t, h)
	h.files.failPut = errors.New("minio down")

	_, err := h.svc.Submission.UploadDocument(context.Background(), instructor, sub.ID,
		submission.DocumentUpload{FileName: "scan.png", ContentType: "image/png", Size: 3},
		strings.NewReader("abc"))
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Empty(t, h.store.documents)
}
