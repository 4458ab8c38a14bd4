package user

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleInstructor         Role = "instructor"
	RoleLanguageExpert     Role = "language_expert"
	RoleSubjectExpert      Role = "subject_expert"
	RoleSeniorInstructor   Role = "senior_instructor"
	RoleCoordinator        Role = "pc"
	RoleFinalModerator     Role = "amo"
	RoleInstitutionManager Role = "institution_manager"
	RoleHeadOfPrograms     Role = "head_of_programs"
	RoleRecords            Role = "records"
)

var allRoles = []Role{
	RoleInstructor,
	RoleLanguageExpert,
	RoleSubjectExpert,
	RoleSeniorInstructor,
	RoleCoordinator,
	RoleFinalModerator,
	RoleInstitutionManager,
	RoleHeadOfPrograms,
	RoleRecords,
}

func (r Role) Valid() bool {
	for _, role := range allRoles {
		if role == r {
			return true
		}
	}
	return false
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, role := range roles {
		if role == r {
			return true
		}
	}
	return false
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// User is the account record shared with the identity provider.
type User struct {
	ID             string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email          string         `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName       string         `json:"full_name" gorm:"type:varchar(255)"`
	Role           Role           `json:"role" gorm:"type:varchar(32);not null;default:'instructor'"`
	Institution    string         `json:"institution" gorm:"type:varchar(255);index"`
	ApprovalStatus ApprovalStatus `json:"approval_status" gorm:"type:varchar(16);default:'pending'"`
	RejectedReason *string        `json:"rejected_reason"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
