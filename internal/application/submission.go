package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/moderation-platform/internal/domain/audit"
	"github.com/linskybing/moderation-platform/internal/domain/submission"
	apperrors "github.com/linskybing/moderation-platform/internal/errors"
	"github.com/linskybing/moderation-platform/internal/repository"
	"github.com/linskybing/moderation-platform/internal/storage"
	"github.com/linskybing/moderation-platform/internal/workflow"
	"gorm.io/gorm"
)

const (
	MaxDocumentSize = 10 << 20

	// referenceRetries is how many times a colliding reference code is
	// regenerated before giving up.
	referenceRetries = 3

	DefaultRetentionYears = 7
)

var allowedDocumentTypes = map[string][]string{
	".jpeg": {"image/jpeg"},
	".jpg":  {"image/jpeg"},
	".png":  {"image/png"},
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
}

type SubmissionService struct {
	Repos    *repository.Repos
	Pipeline *workflow.Pipeline
	Files    storage.FileStore
	Timeout  time.Duration

	// RetentionYears is how long approved files are kept after creation.
	RetentionYears int

	now       func() time.Time
	refSuffix func() int
}

func NewSubmissionService(repos *repository.Repos, pipeline *workflow.Pipeline, files storage.FileStore, timeout time.Duration) *SubmissionService {
	return &SubmissionService{
		Repos:          repos,
		Pipeline:       pipeline,
		Files:          files,
		Timeout:        timeout,
		RetentionYears: DefaultRetentionYears,
		now:            time.Now,
		refSuffix:      func() int { return rand.Intn(100000) },
	}
}

// newReferenceCode formats RFA-YYYY-MMNNNNN.
func newReferenceCode(t time.Time, suffix int) string {
	return fmt.Sprintf("RFA-%04d-%02d%05d", t.Year(), int(t.Month()), suffix%100000)
}

// Create stores a new draft owned by actor.
func (s *SubmissionService) Create(ctx context.Context, actor workflow.Actor, in submission.CreateSubmissionDTO) (submission.Submission, error) {
	skillArea := strings.TrimSpace(in.SkillArea)
	cohort := strings.TrimSpace(in.Cohort)
	if skillArea == "" {
		return submission.Submission{}, apperrors.InvalidArgument("skill_area is required")
	}
	if cohort == "" {
		return submission.Submission{}, apperrors.InvalidArgument("cohort is required")
	}
	docType := strings.TrimSpace(in.DocumentType)
	if docType == "" {
		docType = submission.DefaultDocumentType
	}

	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	now := s.now()
	sub := submission.Submission{
		ID:           uuid.NewString(),
		Title:        skillArea + " - " + cohort,
		SkillArea:    skillArea,
		SkillCode:    strings.TrimSpace(in.SkillCode),
		Cluster:      strings.TrimSpace(in.Cluster),
		Cohort:       cohort,
		TestDate:     in.TestDate,
		Description:  strings.TrimSpace(in.Description),
		DocumentType: docType,
		Status:       submission.StatusDraft,
		Institution:  actor.Institution,
		CreatorID:    actor.UserID,
		CreatorEmail: actor.Email,
		CreatorName:  actor.Name,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var err error
	for attempt := 0; attempt <= referenceRetries; attempt++ {
		sub.ReferenceCode = newReferenceCode(now, s.refSuffix())
		err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
			if err := tx.Submission.Create(ctx, &sub); err != nil {
				return err
			}
			return tx.Audit.CreateAuditLog(ctx, newAuditLog(actor, audit.ActionCreate, audit.ResourceSubmission, sub.ID,
				nil, sub, "created "+sub.ReferenceCode))
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		log.Printf("[submission] reference code %s collided, regenerating", sub.ReferenceCode)
	}
	if err != nil {
		return submission.Submission{}, classify(err, "create submission")
	}
	return sub, nil
}

// List returns the submissions actor may see, most recently updated first.
func (s *SubmissionService) List(ctx context.Context, actor workflow.Actor) ([]submission.Submission, error) {
	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	subs, err := s.Repos.Submission.List(ctx, workflow.ScopeFor(actor))
	if err != nil {
		return nil, classify(err, "list submissions")
	}
	return subs, nil
}

// Archive lists the approved submissions visible to actor with their
// retention date.
func (s *SubmissionService) Archive(ctx context.Context, actor workflow.Actor) ([]submission.ArchivedSubmission, error) {
	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	scope := workflow.ScopeFor(actor)
	scope.Statuses = []submission.Status{submission.StatusApproved}
	subs, err := s.Repos.Submission.List(ctx, scope)
	if err != nil {
		return nil, classify(err, "list archive")
	}
	out := make([]submission.ArchivedSubmission, 0, len(subs))
	for _, sub := range subs {
		out = append(out, submission.ArchivedSubmission{
			Submission:     sub,
			ArchivedAt:     sub.UpdatedAt,
			RetentionUntil: sub.CreatedAt.AddDate(s.RetentionYears, 0, 0),
		})
	}
	return out, nil
}

// Get returns one submission with its documents.
func (s *SubmissionService) Get(ctx context.Context, actor workflow.Actor, id string) (submission.Submission, error) {
	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	sub, err := s.Repos.Submission.GetWithDocuments(ctx, id)
	if err != nil {
		return submission.Submission{}, classify(err, "load submission %s", id)
	}
	if !workflow.CanView(actor, sub) {
		return submission.Submission{}, apperrors.Authorization("submission %s is not visible to you", id)
	}
	return sub, nil
}

// UploadDocument stores body in the file store and attaches it to the
// submission. The object is removed again if the metadata row fails.
func (s *SubmissionService) UploadDocument(ctx context.Context, actor workflow.Actor, id string, file submission.DocumentUpload, body io.Reader) (submission.Document, error) {
	ext, err := validateUpload(file)
	if err != nil {
		return submission.Document{}, err
	}

	dbCtx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	sub, err := s.Repos.Submission.GetByID(dbCtx, id)
	if err != nil {
		return submission.Document{}, classify(err, "load submission %s", id)
	}
	if !canActForCreator(s.Pipeline, actor, sub) {
		return submission.Document{}, apperrors.Authorization("only the creator of %s or an administrator can upload documents", id)
	}

	doc := submission.Document{
		ID:           uuid.NewString(),
		SubmissionID: sub.ID,
		FileName:     filepath.Base(file.FileName),
		ObjectKey:    fmt.Sprintf("submissions/%s/%s%s", sub.ID, uuid.NewString(), ext),
		FileSize:     file.Size,
		FileType:     file.ContentType,
		UploadedBy:   actor.UserID,
		CreatedAt:    s.now(),
	}

	// The object upload is bounded by the request, not the storage timeout.
	if err := s.Files.Put(ctx, doc.ObjectKey, doc.FileType, body, doc.FileSize); err != nil {
		return submission.Document{}, apperrors.Unavailable(err, "store document for %s", id)
	}

	err = s.Repos.ExecTx(dbCtx, func(tx *repository.Repos) error {
		if err := tx.Document.Create(dbCtx, &doc); err != nil {
			return err
		}
		return tx.Audit.CreateAuditLog(dbCtx, newAuditLog(actor, audit.ActionUpload, audit.ResourceSubmission, sub.ID,
			nil, doc, "uploaded "+doc.FileName))
	})
	if err != nil {
		if rmErr := s.Files.Remove(context.WithoutCancel(ctx), doc.ObjectKey); rmErr != nil {
			log.Printf("[submission] failed to remove orphaned object %s: %v", doc.ObjectKey, rmErr)
		}
		return submission.Document{}, classify(err, "save document for %s", id)
	}
	return doc, nil
}

func validateUpload(file submission.DocumentUpload) (string, error) {
	if strings.TrimSpace(file.FileName) == "" {
		return "", apperrors.InvalidArgument("file name is required")
	}
	if file.Size <= 0 {
		return "", apperrors.InvalidArgument("file is empty")
	}
	if file.Size > MaxDocumentSize {
		return "", apperrors.InvalidArgument("file exceeds the %d MiB limit", MaxDocumentSize>>20)
	}
	ext := strings.ToLower(filepath.Ext(file.FileName))
	mimes, ok := allowedDocumentTypes[ext]
	if !ok {
		return "", apperrors.InvalidArgument("file type %q is not allowed", ext)
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(file.ContentType, ";", 2)[0]))
	for _, m := range mimes {
		if ct == m {
			return ext, nil
		}
	}
	return "", apperrors.InvalidArgument("content type %q does not match %s", file.ContentType, ext)
}
