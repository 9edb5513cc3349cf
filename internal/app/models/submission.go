package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionStatus is the review state of a student submission
type SubmissionStatus string

const (
	SubmissionSubmitted     SubmissionStatus = "submitted"
	SubmissionUnderReview   SubmissionStatus = "under-review"
	SubmissionApproved      SubmissionStatus = "approved"
	SubmissionRejected      SubmissionStatus = "rejected"
	SubmissionNeedsRevision SubmissionStatus = "needs-revision"
)

// ValidReviewStatus reports whether s is a status an admin may set during review
func ValidReviewStatus(s SubmissionStatus) bool {
	switch s {
	case SubmissionUnderReview, SubmissionApproved, SubmissionRejected, SubmissionNeedsRevision:
		return true
	}
	return false
}

// Submission is a file handed in by a student against a project,
// optionally linked back to an assignment.
type Submission struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	StudentID    primitive.ObjectID  `bson:"studentId" json:"studentId"`
	ProjectID    primitive.ObjectID  `bson:"projectId" json:"projectId"`
	AssignmentID *primitive.ObjectID `bson:"assignmentId,omitempty" json:"assignmentId,omitempty"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	StorageKey   string              `bson:"storageKey" json:"storageKey"`
	Status       SubmissionStatus    `bson:"status" json:"status" example:"submitted"`
	ReviewNote   string              `bson:"reviewNote,omitempty" json:"reviewNote,omitempty"`
	ReviewedAt   *time.Time          `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
