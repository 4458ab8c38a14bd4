package workflow

import (
	"github.com/linskybing/moderation-platform/internal/domain/review"
	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/linskybing/moderation-platform/internal/domain/user"
)

// NextStatus returns the status a submission moves to when role records
// decision while it is in current. It has no side effects.
//
// Callers must check ownership and the decision set first (Owner, Allows).
// A triple outside the table leaves the status unchanged.
func (p *Pipeline) NextStatus(current submission.Status, role user.Role, decision review.Decision) submission.Status {
	i, ok := p.byStatus[current]
	if !ok {
		return current
	}
	st := p.stages[i]
	if st.owner != role {
		return current
	}
	next, ok := st.transitions[decision]
	if !ok {
		return current
	}
	return next
}

// ReviewerCarriesOver reports whether a reviewer bound at from stays bound
// after moving to to, which only happens when both stages share an owner.
func (p *Pipeline) ReviewerCarriesOver(from, to submission.Status) bool {
	fromOwner, ok := p.Owner(from)
	if !ok {
		return false
	}
	toOwner, ok := p.Owner(to)
	if !ok {
		return false
	}
	return fromOwner == toOwner
}
