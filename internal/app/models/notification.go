package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationTemplate names the e-mail body built for an outbox record
type NotificationTemplate string

const (
	TemplateAssignmentStatus NotificationTemplate = "assignment-status"
	TemplateInvite           NotificationTemplate = "invite"
	TemplateOTP              NotificationTemplate = "otp-code"
	TemplatePasswordReset    NotificationTemplate = "password-reset"
	TemplateSubmissionReview NotificationTemplate = "submission-review"
	TemplateContactAck       NotificationTemplate = "contact-ack"
	TemplatePayslipReady     NotificationTemplate = "payslip-ready"
	TemplateOfferLetter      NotificationTemplate = "offer-letter"
)

// NotificationStatus is the dispatch state of an outbox record
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is a durable outbox record in the 'notifications' collection.
// State transitions persist one of these in the same request that commits the
// entity write; the dispatcher sends it asynchronously with retries.
type Notification struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Key         string               `bson:"key" json:"key"` // dedupe key, e.g. "assignment:<id>:<status>"
	Template    NotificationTemplate `bson:"template" json:"template"`
	Recipient   string               `bson:"recipient" json:"recipient"`
	RecipientName string             `bson:"recipientName,omitempty" json:"recipientName,omitempty"`
	Subject     string               `bson:"subject" json:"subject"`
	Payload     map[string]string    `bson:"payload,omitempty" json:"payload,omitempty"`
	Status      NotificationStatus   `bson:"status" json:"status"`
	Attempts    int                  `bson:"attempts" json:"attempts"`
	LastError   string               `bson:"lastError,omitempty" json:"lastError,omitempty"`
	NextAttempt time.Time            `bson:"nextAttempt" json:"nextAttempt"`
	SentAt      *time.Time           `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
}
