package workflow

import (
	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/linskybing/moderation-platform/internal/domain/user"
)

// Actor is the authenticated caller as supplied by the identity provider.
type Actor struct {
	UserID      string
	Email       string
	Name        string
	Role        user.Role
	Institution string

	// Request origin, recorded in the audit trail.
	IPAddress string
	UserAgent string
}

// ScopeFor returns the listing filter for a. Heads of programs see every
// submission, instructors only their own, everyone else their institution.
func ScopeFor(a Actor) submission.Scope {
	switch a.Role {
	case user.RoleHeadOfPrograms:
		return submission.Scope{}
	case user.RoleInstructor:
		id := a.UserID
		return submission.Scope{CreatorID: &id}
	default:
		inst := a.Institution
		return submission.Scope{Institution: &inst}
	}
}

// CanView applies the ScopeFor rule to a single submission.
func CanView(a Actor, s submission.Submission) bool {
	scope := ScopeFor(a)
	if scope.CreatorID != nil && *scope.CreatorID != s.CreatorID {
		return false
	}
	if scope.Institution != nil && *scope.Institution != s.Institution {
		return false
	}
	return true
}
