package audit

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only record of a state change.
type AuditLog struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       string         `json:"user_id" gorm:"type:varchar(36);index"`
	Action       string         `json:"action" gorm:"type:varchar(64);index"`
	ResourceType string         `json:"resource_type" gorm:"type:varchar(64);index"`
	ResourceID   string         `json:"resource_id" gorm:"type:varchar(64);index"`
	OldData      datatypes.JSON `json:"old_data"`
	NewData      datatypes.JSON `json:"new_data"`
	IPAddress    string         `json:"ip_address" gorm:"type:varchar(64)"`
	UserAgent    string         `json:"user_agent" gorm:"type:text"`
	Description  string         `json:"description" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Resource types and actions written by the workflow.
const (
	ResourceSubmission = "submission"
	ResourceUser       = "user"

	ActionCreate       = "create"
	ActionSubmit       = "submit"
	ActionAssign       = "assign_reviewers"
	ActionReview       = "review"
	ActionReset        = "reset"
	ActionUpload       = "upload_document"
	ActionUpdateRole   = "update_role"
	ActionApproveUser  = "approve_user"
	ActionRejectUser   = "reject_user"
	ActionRemoveUser   = "remove_user"

	ActionReleaseReviewer = "release_reviewer"
)
