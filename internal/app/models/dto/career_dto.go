package dto

import "github.com/edupro/talentdesk/internal/app/models"

// CreateCareerRequest publishes a job opening
type CreateCareerRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Experience  string `json:"experience"`
	SalaryRange string `json:"salaryRange"`
	Openings    int    `json:"openings" binding:"omitempty,min=1"`
	Active      *bool  `json:"active"`
}

// CreateOfferRequest issues an offer letter
type CreateOfferRequest struct {
	CareerID      string  `json:"careerId"`
	CandidateName string  `json:"candidateName" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Position      string  `json:"position" binding:"required"`
	CTC           float64 `json:"ctc" binding:"required,gt=0"`
	JoiningDate   string  `json:"joiningDate"` // YYYY-MM-DD
}

// UpdateOfferStatusRequest updates the offer letter state
type UpdateOfferStatusRequest struct {
	Status models.OfferStatus `json:"status" binding:"required"`
}

// CreateAnnouncementRequest publishes a portal announcement
type CreateAnnouncementRequest struct {
	Title    string        `json:"title" binding:"required"`
	Body     string        `json:"body" binding:"required"`
	Audience []models.Role `json:"audience"`
	Active   *bool         `json:"active"`
}

// ContactRequest is the public contact form payload
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}
