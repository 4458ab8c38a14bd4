package submission

import (
	"time"
)

type Status string

const (
	StatusDraft                Status = "draft"
	StatusSubmitted            Status = "submitted"
	StatusLEReview             Status = "le_review"
	StatusSEReview             Status = "se_review"
	StatusSIReview             Status = "si_review"
	StatusPCReview             Status = "pc_review"
	StatusAMOReview            Status = "amo_review"
	StatusApproved             Status = "approved"
	StatusCorrectionsRequested Status = "corrections_requested"
)

var allStatuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusLEReview,
	StatusSEReview,
	StatusSIReview,
	StatusPCReview,
	StatusAMOReview,
	StatusApproved,
	StatusCorrectionsRequested,
}

// Statuses lists every defined pipeline status in pipeline order.
func Statuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func (s Status) Valid() bool {
	for _, st := range allStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func (s Status) In(statuses ...Status) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

// InIntake reports whether the submission has not yet entered active review.
func (s Status) InIntake() bool {
	return s == StatusDraft || s == StatusSubmitted
}

const DefaultDocumentType = "internal_moderation"

// Submission is the current-state record of a document under review.
// Version is bumped on every status write and guards against lost updates.
type Submission struct {
	ID                string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ReferenceCode     string     `json:"submission_id" gorm:"type:varchar(20);uniqueIndex;not null"`
	Title             string     `json:"title" gorm:"type:varchar(255)"`
	SkillArea         string     `json:"skill_area" gorm:"type:varchar(255)"`
	SkillCode         string     `json:"skill_code" gorm:"type:varchar(100)"`
	Cluster           string     `json:"cluster" gorm:"type:varchar(255)"`
	Cohort            string     `json:"cohort" gorm:"type:varchar(255)"`
	TestDate          *time.Time `json:"test_date"`
	Description       string     `json:"description" gorm:"type:text"`
	DocumentType      string     `json:"document_type" gorm:"type:varchar(100);default:'internal_moderation'"`
	Status            Status     `json:"status" gorm:"type:varchar(32);index;not null;default:'draft'"`
	CurrentReviewerID *string    `json:"current_reviewer_id" gorm:"type:varchar(36);index"`
	Institution       string     `json:"institution" gorm:"type:varchar(255);index"`
	CreatorID         string     `json:"instructor_id" gorm:"type:varchar(36);index;not null"`
	CreatorEmail      string     `json:"instructor_email" gorm:"type:varchar(255)"`
	CreatorName       string     `json:"instructor_name" gorm:"type:varchar(255)"`
	Version           int64      `json:"version" gorm:"not null;default:1"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"index"`

	Documents []Document `json:"submission_documents,omitempty" gorm:"foreignKey:SubmissionID"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Document is an uploaded file attached to a submission. The object itself
// lives in the file store under ObjectKey.
type Document struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SubmissionID string    `json:"submission_id" gorm:"type:varchar(36);index;not null"`
	FileName     string    `json:"file_name" gorm:"type:varchar(255)"`
	ObjectKey    string    `json:"file_path" gorm:"type:varchar(512)"`
	FileSize     int64     `json:"file_size"`
	FileType     string    `json:"file_type" gorm:"type:varchar(255)"`
	UploadedBy   string    `json:"uploaded_by" gorm:"type:varchar(36)"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Document) TableName() string {
	return "submission_documents"
}

// Scope restricts a listing. Nil or empty fields do not filter.
type Scope struct {
	Institution *string
	CreatorID   *string
	Statuses    []Status
}

// ArchivedSubmission is an approved submission with the date its files
// become eligible for purging.
type ArchivedSubmission struct {
	Submission
	ArchivedAt     time.Time `json:"archived_at"`
	RetentionUntil time.Time `json:"retention_until"`
}

// OverdueFilter selects submissions idle in one of Statuses since before Before.
type OverdueFilter struct {
	Statuses []Status
	Before   time.Time
}
