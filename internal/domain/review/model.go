package review

import (
	"errors"
	"strings"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/submission"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	"gorm.io/gorm"
)

type Decision string

const (
	DecisionApproved              Decision = "approved"
	DecisionRejected              Decision = "rejected"
	DecisionCorrectionsRequired   Decision = "corrections_required"
	DecisionNoCorrectionsRequired Decision = "no_corrections_required"
)

// decisionSynonyms maps accepted spellings onto the canonical decision.
var decisionSynonyms = map[Decision][]string{
	DecisionApproved:              {"approved", "approve", "accept", "accepted"},
	DecisionRejected:              {"rejected", "reject"},
	DecisionCorrectionsRequired:   {"corrections_required", "needs_corrections", "needs-corrections", "corrections-required", "revision"},
	DecisionNoCorrectionsRequired: {"no_corrections_required", "no-corrections-required", "no_corrections", "no-corrections"},
}

var decisionAliases = buildDecisionAliases()

func buildDecisionAliases() map[string]Decision {
	aliases := make(map[string]Decision)
	for canonical, synonyms := range decisionSynonyms {
		for _, s := range synonyms {
			aliases[normalize(s)] = canonical
		}
	}
	return aliases
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseDecision resolves a raw decision string to its canonical value.
func ParseDecision(raw string) (Decision, bool) {
	d, ok := decisionAliases[normalize(raw)]
	return d, ok
}

// ErrImmutable is returned by the model hooks when something tries to change
// or remove a review record.
var ErrImmutable = errors.New("review records are immutable")

// Review is one decision event. Rows are insert-only.
type Review struct {
	ID           string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SubmissionID string            `json:"submission_id" gorm:"type:varchar(36);index;not null"`
	ReviewerID   string            `json:"reviewer_id" gorm:"type:varchar(36);index;not null"`
	ReviewerRole user.Role         `json:"reviewer_role" gorm:"type:varchar(32);not null"`
	Decision     Decision          `json:"status" gorm:"type:varchar(32);not null"`
	Comments     string            `json:"comments" gorm:"type:text"`
	Sequence     int               `json:"sequence" gorm:"not null"`
	FromStatus   submission.Status `json:"from_status" gorm:"type:varchar(32)"`
	ToStatus     submission.Status `json:"to_status" gorm:"type:varchar(32)"`
	CreatedAt    time.Time         `json:"created_at" gorm:"index"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutable
}

func (r *Review) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutable
}
