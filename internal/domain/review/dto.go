package review

type SubmitReviewDTO struct {
	SubmissionID string `json:"submission_id"`
	Decision     string `json:"decision"`
	// Status is the field name older clients send the decision under.
	Status   string `json:"status"`
	Comments string `json:"comments"`
	// ReviewerRole is accepted and ignored; the role always comes from the token.
	ReviewerRole string `json:"reviewer_role"`
}

// DecisionValue returns the decision regardless of which field carried it.
func (d SubmitReviewDTO) DecisionValue() string {
	if d.Decision != "" {
		return d.Decision
	}
	return d.Status
}

type ResetSubmissionDTO struct {
	SubmissionID string `json:"submission_id"`
}
