package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStatus is the closed set of assignment workflow states
type AssignmentStatus string

const (
	StatusAssigned             AssignmentStatus = "assigned"
	StatusRequirementSubmitted AssignmentStatus = "requirement-submitted"
	StatusAdvancePaymentDue    AssignmentStatus = "advance-payment-pending"
	StatusInProgress           AssignmentStatus = "in-progress"
	StatusReadyForDemo         AssignmentStatus = "ready-for-demo"
	StatusFinalPaymentDue      AssignmentStatus = "final-payment-pending"
	StatusReadyForDownload     AssignmentStatus = "ready-for-download"
	StatusDelivered            AssignmentStatus = "delivered"
	StatusCompleted            AssignmentStatus = "completed"
)

// projectOrder is the linear workflow for the project track.
// Course and internship tracks use the 3-state subset below.
var projectOrder = []AssignmentStatus{
	StatusAssigned,
	StatusRequirementSubmitted,
	StatusAdvancePaymentDue,
	StatusInProgress,
	StatusReadyForDemo,
	StatusFinalPaymentDue,
	StatusReadyForDownload,
	StatusDelivered,
	StatusCompleted,
}

var trainingOrder = []AssignmentStatus{
	StatusAssigned,
	StatusInProgress,
	StatusCompleted,
}

func successorTable(order []AssignmentStatus) map[AssignmentStatus]AssignmentStatus {
	table := make(map[AssignmentStatus]AssignmentStatus, len(order)-1)
	for i := 0; i < len(order)-1; i++ {
		table[order[i]] = order[i+1]
	}
	return table
}

var statusSuccessor = map[ItemType]map[AssignmentStatus]AssignmentStatus{
	ItemTypeProject:    successorTable(projectOrder),
	ItemTypeCourse:     successorTable(trainingOrder),
	ItemTypeInternship: successorTable(trainingOrder),
}

// NextStatus returns the legal successor of from for the given track,
// or false when from is terminal or unknown.
func NextStatus(itemType ItemType, from AssignmentStatus) (AssignmentStatus, bool) {
	table, ok := statusSuccessor[itemType]
	if !ok {
		return "", false
	}
	next, ok := table[from]
	return next, ok
}

// CanTransition reports whether from → to is a legal single step for the track
func CanTransition(itemType ItemType, from, to AssignmentStatus) bool {
	next, ok := NextStatus(itemType, from)
	return ok && next == to
}

// KnownStatus reports whether s appears in the track's workflow
func KnownStatus(itemType ItemType, s AssignmentStatus) bool {
	order := trainingOrder
	if itemType == ItemTypeProject {
		order = projectOrder
	}
	for _, st := range order {
		if st == s {
			return true
		}
	}
	return false
}

// PaymentStatus tracks how much of the assignment fee has been settled
type PaymentStatus string

const (
	PaymentPending      PaymentStatus = "pending"
	PaymentAdvancePaid  PaymentStatus = "advance-paid"
	PaymentFullySettled PaymentStatus = "paid"
)

// Payment is the payment sub-document embedded in an assignment
type Payment struct {
	Amount        float64       `bson:"amount" json:"amount"`
	Status        PaymentStatus `bson:"status" json:"status"`
	AdvanceAmount float64       `bson:"advanceAmount" json:"advanceAmount"`
	FinalAmount   float64       `bson:"finalAmount" json:"finalAmount"`
}

// DeliveryFile is an object-storage key attached to an assignment on delivery
type DeliveryFile struct {
	Name       string    `bson:"name" json:"name"`
	StorageKey string    `bson:"storageKey" json:"storageKey"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// RequirementSubmission captures the student's requirement hand-in for a project
type RequirementSubmission struct {
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	StorageKey  string    `bson:"storageKey,omitempty" json:"storageKey,omitempty"`
	SubmittedAt time.Time `bson:"submittedAt" json:"submittedAt"`
}

// StudentAssignment links a student to a catalog item and carries the workflow state.
// One assignment exists per (student, item) pair.
type StudentAssignment struct {
	ID                    primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	StudentID             primitive.ObjectID     `bson:"studentId" json:"studentId"`
	ItemType              ItemType               `bson:"itemType" json:"itemType" example:"project"`
	ItemID                primitive.ObjectID     `bson:"itemId" json:"itemId"`
	Status                AssignmentStatus       `bson:"status" json:"status" example:"assigned"`
	Progress              int                    `bson:"progress" json:"progress" example:"40"`
	Payment               Payment                `bson:"payment" json:"payment"`
	DeliveryFiles         []DeliveryFile         `bson:"deliveryFiles,omitempty" json:"deliveryFiles,omitempty"`
	RequirementSubmission *RequirementSubmission `bson:"requirementSubmission,omitempty" json:"requirementSubmission,omitempty"`
	CompletedAt           *time.Time             `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt             time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time              `bson:"updatedAt" json:"updatedAt"`
}
