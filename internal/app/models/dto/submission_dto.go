package dto

import "github.com/edupro/talentdesk/internal/app/models"

// CreateSubmissionRequest records a student hand-in against a project
type CreateSubmissionRequest struct {
	ProjectID    string `json:"projectId" binding:"required"`
	AssignmentID string `json:"assignmentId"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	StorageKey   string `json:"storageKey" binding:"required"`
}

// ReviewSubmissionRequest sets the review outcome for a submission
type ReviewSubmissionRequest struct {
	Status     models.SubmissionStatus `json:"status" binding:"required"`
	ReviewNote string                  `json:"reviewNote"`
}

// SubmissionListResponse represents a page of submissions
type SubmissionListResponse struct {
	Submissions []*models.Submission `json:"submissions"`
	Pagination  PaginationInfo       `json:"pagination"`
}
