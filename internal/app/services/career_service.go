package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

// CareerService manages job postings, offer letters, announcements
// and the public contact form
type CareerService struct {
	careerRepo repositories.ICareerRepository
	outboxRepo repositories.IOutboxRepository
	logger     zerolog.Logger
}

// NewCareerService creates a new career service instance
func NewCareerService(careerRepo repositories.ICareerRepository, outboxRepo repositories.IOutboxRepository, logger zerolog.Logger) *CareerService {
	return &CareerService{careerRepo: careerRepo, outboxRepo: outboxRepo, logger: logger}
}

// CreateCareer publishes a job opening
func (s *CareerService) CreateCareer(ctx context.Context, req dto.CreateCareerRequest) (*models.Career, error) {
	openings := req.Openings
	if openings == 0 {
		openings = 1
	}
	career := &models.Career{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Experience:  req.Experience,
		SalaryRange: req.SalaryRange,
		Openings:    openings,
		Active:      true,
	}
	if _, err := s.careerRepo.CreateCareer(ctx, career); err != nil {
		return nil, err
	}
	s.logger.Info().Str("careerId", career.ID.Hex()).Str("title", career.Title).Msg("Career posted")
	return career, nil
}

// GetCareer fetches one job posting
func (s *CareerService) GetCareer(ctx context.Context, id primitive.ObjectID) (*models.Career, error) {
	return s.careerRepo.GetCareer(ctx, id)
}

// UpdateCareer applies edits to a job posting
func (s *CareerService) UpdateCareer(ctx context.Context, id primitive.ObjectID, req dto.CreateCareerRequest, active bool) (*models.Career, error) {
	career, err := s.careerRepo.GetCareer(ctx, id)
	if err != nil {
		return nil, err
	}
	career.Title = req.Title
	career.Description = req.Description
	career.Location = req.Location
	career.Experience = req.Experience
	career.SalaryRange = req.SalaryRange
	if req.Openings > 0 {
		career.Openings = req.Openings
	}
	career.Active = active
	if err := s.careerRepo.UpdateCareer(ctx, career); err != nil {
		return nil, err
	}
	return career, nil
}

// DeleteCareer removes a job posting
func (s *CareerService) DeleteCareer(ctx context.Context, id primitive.ObjectID) error {
	return s.careerRepo.DeleteCareer(ctx, id)
}

// ListCareers pages job postings
func (s *CareerService) ListCareers(ctx context.Context, activeOnly bool, skip, limit int64) ([]models.Career, int64, error) {
	return s.careerRepo.ListCareers(ctx, activeOnly, skip, limit)
}

// CreateOffer drafts an offer letter record
func (s *CareerService) CreateOffer(ctx context.Context, req dto.CreateOfferRequest) (*models.Offer, error) {
	offer := &models.Offer{
		CandidateName: req.CandidateName,
		Email:         req.Email,
		Position:      req.Position,
		CTC:           req.CTC,
		Status:        models.OfferDraft,
	}
	if req.CareerID != "" {
		careerID, err := primitive.ObjectIDFromHex(req.CareerID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid career id")
		}
		if _, err := s.careerRepo.GetCareer(ctx, careerID); err != nil {
			return nil, err
		}
		offer.CareerID = &careerID
	}
	if req.JoiningDate != "" {
		t, err := time.Parse("2006-01-02", req.JoiningDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("joining date must be YYYY-MM-DD")
		}
		offer.JoiningDate = &t
	}
	if _, err := s.careerRepo.CreateOffer(ctx, offer); err != nil {
		return nil, err
	}
	s.logger.Info().Str("offerId", offer.ID.Hex()).Str("candidate", offer.CandidateName).Msg("Offer drafted")
	return offer, nil
}

// GetOffer fetches one offer
func (s *CareerService) GetOffer(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	return s.careerRepo.GetOffer(ctx, id)
}

// SendOffer moves a draft offer to sent and queues the candidate e-mail
func (s *CareerService) SendOffer(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	offer, err := s.careerRepo.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer.Status != models.OfferDraft {
		return nil, apperrors.NewConflictError("offer already sent")
	}
	if err := s.careerRepo.UpdateOfferStatus(ctx, id, models.OfferSent); err != nil {
		return nil, err
	}
	offer.Status = models.OfferSent

	notification := &models.Notification{
		Key:           "offer:" + offer.ID.Hex(),
		Template:      models.TemplateOfferLetter,
		Recipient:     offer.Email,
		RecipientName: offer.CandidateName,
		Subject:       "Your offer from TalentDesk",
		Payload: map[string]string{
			"name":     offer.CandidateName,
			"position": offer.Position,
		},
	}
	if err := s.outboxRepo.Enqueue(ctx, notification); err != nil {
		s.logger.Error().Err(err).Str("offerId", id.Hex()).Msg("Failed to queue offer mail")
	}
	return offer, nil
}

// UpdateOfferStatus records the candidate's accept or decline
func (s *CareerService) UpdateOfferStatus(ctx context.Context, id primitive.ObjectID, status models.OfferStatus) (*models.Offer, error) {
	offer, err := s.careerRepo.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if status != models.OfferAccepted && status != models.OfferDeclined {
		return nil, apperrors.NewBadRequestError("status must be accepted or declined")
	}
	if offer.Status != models.OfferSent {
		return nil, apperrors.NewConflictError("offer is not awaiting a response")
	}
	if err := s.careerRepo.UpdateOfferStatus(ctx, id, status); err != nil {
		return nil, err
	}
	offer.Status = status
	return offer, nil
}

// ListOffers pages offers
func (s *CareerService) ListOffers(ctx context.Context, skip, limit int64) ([]models.Offer, int64, error) {
	return s.careerRepo.ListOffers(ctx, skip, limit)
}

// CreateAnnouncement publishes a portal announcement
func (s *CareerService) CreateAnnouncement(ctx context.Context, req dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	announcement := &models.Announcement{
		Title:    req.Title,
		Body:     req.Body,
		Audience: req.Audience,
		Active:   true,
	}
	if _, err := s.careerRepo.CreateAnnouncement(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// UpdateAnnouncement applies edits to an announcement
func (s *CareerService) UpdateAnnouncement(ctx context.Context, id primitive.ObjectID, req dto.CreateAnnouncementRequest, active bool) (*models.Announcement, error) {
	announcement, err := s.careerRepo.GetAnnouncement(ctx, id)
	if err != nil {
		return nil, err
	}
	announcement.Title = req.Title
	announcement.Body = req.Body
	announcement.Audience = req.Audience
	announcement.Active = active
	if err := s.careerRepo.UpdateAnnouncement(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// DeleteAnnouncement removes an announcement
func (s *CareerService) DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) error {
	return s.careerRepo.DeleteAnnouncement(ctx, id)
}

// ListAnnouncements pages announcements visible to the caller's role
func (s *CareerService) ListAnnouncements(ctx context.Context, audience models.Role, skip, limit int64) ([]models.Announcement, int64, error) {
	return s.careerRepo.ListAnnouncements(ctx, audience, skip, limit)
}

// SubmitContact stores a public inquiry and queues the acknowledgement
func (s *CareerService) SubmitContact(ctx context.Context, req dto.ContactRequest) (*models.ContactInquiry, error) {
	inquiry := &models.ContactInquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if _, err := s.careerRepo.CreateInquiry(ctx, inquiry); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		Key:           "contact:" + inquiry.ID.Hex(),
		Template:      models.TemplateContactAck,
		Recipient:     inquiry.Email,
		RecipientName: inquiry.Name,
		Subject:       "We received your message",
		Payload:       map[string]string{"name": inquiry.Name},
	}
	if err := s.outboxRepo.Enqueue(ctx, notification); err != nil {
		s.logger.Error().Err(err).Str("inquiryId", inquiry.ID.Hex()).Msg("Failed to queue contact acknowledgement")
	}
	return inquiry, nil
}

// ListInquiries pages contact inquiries for staff
func (s *CareerService) ListInquiries(ctx context.Context, skip, limit int64) ([]models.ContactInquiry, int64, error) {
	return s.careerRepo.ListInquiries(ctx, skip, limit)
}
