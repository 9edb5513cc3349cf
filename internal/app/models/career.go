package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Career is a published job opening
type Career struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	Experience   string             `bson:"experience,omitempty" json:"experience,omitempty" example:"2-4 years"`
	SalaryRange  string             `bson:"salaryRange,omitempty" json:"salaryRange,omitempty"`
	Openings     int                `bson:"openings" json:"openings"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OfferStatus is the state of an offer letter
type OfferStatus string

const (
	OfferDraft    OfferStatus = "draft"
	OfferSent     OfferStatus = "sent"
	OfferAccepted OfferStatus = "accepted"
	OfferDeclined OfferStatus = "declined"
)

// Offer is an offer letter issued against a career opening
type Offer struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CareerID      *primitive.ObjectID `bson:"careerId,omitempty" json:"careerId,omitempty"`
	CandidateName string              `bson:"candidateName" json:"candidateName"`
	Email         string              `bson:"email" json:"email"`
	Position      string              `bson:"position" json:"position"`
	CTC           float64             `bson:"ctc" json:"ctc"`
	JoiningDate   *time.Time          `bson:"joiningDate,omitempty" json:"joiningDate,omitempty"`
	Status        OfferStatus         `bson:"status" json:"status" example:"draft"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Announcement is a broadcast note shown on the portals
type Announcement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Audience  []Role             `bson:"audience,omitempty" json:"audience,omitempty"`
	Active    bool               `bson:"active" json:"active"`
	ExpiresAt *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ContactInquiry is a message from the public contact form
type ContactInquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
