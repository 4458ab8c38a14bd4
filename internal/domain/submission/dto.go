package submission

import "time"

type CreateSubmissionDTO struct {
	SkillArea    string     `json:"skill_area" binding:"required"`
	SkillCode    string     `json:"skill_code"`
	Cluster      string     `json:"cluster"`
	Cohort       string     `json:"cohort" binding:"required"`
	TestDate     *time.Time `json:"test_date"`
	Description  string     `json:"description"`
	DocumentType string     `json:"document_type"`
}

type AssignReviewersDTO struct {
	ReviewerID *string `json:"reviewer_id"`
}

// DocumentUpload describes a file accepted by the upload endpoint.
type DocumentUpload struct {
	FileName    string
	ContentType string
	Size        int64
}
