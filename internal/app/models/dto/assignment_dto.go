package dto

import "github.com/edupro/talentdesk/internal/app/models"

// AssignRequest creates a new student assignment
type AssignRequest struct {
	StudentID string          `json:"studentId" binding:"required"`
	ItemType  models.ItemType `json:"itemType" binding:"required"`
	ItemID    string          `json:"itemId" binding:"required"`
	Amount    float64         `json:"amount" binding:"omitempty,min=0"`
}

// AdvanceStatusRequest moves an assignment one step along its workflow
type AdvanceStatusRequest struct {
	Status models.AssignmentStatus `json:"status" binding:"required"`
}

// RecordPaymentRequest records an advance or final payment against an assignment
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// UpdateProgressRequest updates progress on a course/internship assignment
type UpdateProgressRequest struct {
	Progress int `json:"progress" binding:"min=0,max=100"`
}

// SubmitRequirementRequest records the student's requirement hand-in
type SubmitRequirementRequest struct {
	Description string `json:"description"`
	StorageKey  string `json:"storageKey"`
}

// AttachDeliveryFileRequest attaches a delivered artifact to an assignment
type AttachDeliveryFileRequest struct {
	Name       string `json:"name" binding:"required"`
	StorageKey string `json:"storageKey" binding:"required"`
}

// AssignmentListResponse represents a page of assignments
type AssignmentListResponse struct {
	Assignments []*models.StudentAssignment `json:"assignments"`
	Pagination  PaginationInfo              `json:"pagination"`
}
