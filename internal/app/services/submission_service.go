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

// SubmissionService handles student project submissions and review
type SubmissionService struct {
	submissionRepo repositories.ISubmissionRepository
	assignmentRepo repositories.IAssignmentRepository
	catalogRepo    repositories.ICatalogRepository
	userRepo       repositories.IUserRepository
	outboxRepo     repositories.IOutboxRepository
	logger         zerolog.Logger
}

// NewSubmissionService creates a new submission service instance
func NewSubmissionService(
	submissionRepo repositories.ISubmissionRepository,
	assignmentRepo repositories.IAssignmentRepository,
	catalogRepo repositories.ICatalogRepository,
	userRepo repositories.IUserRepository,
	outboxRepo repositories.IOutboxRepository,
	logger zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		catalogRepo:    catalogRepo,
		userRepo:       userRepo,
		outboxRepo:     outboxRepo,
		logger:         logger,
	}
}

// Create records a new submission from a student
func (s *SubmissionService) Create(ctx context.Context, studentID primitive.ObjectID, req dto.CreateSubmissionRequest) (*models.Submission, error) {
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid project id")
	}
	if _, err := s.catalogRepo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	submission := &models.Submission{
		StudentID:   studentID,
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		StorageKey:  req.StorageKey,
		Status:      models.SubmissionSubmitted,
	}

	if req.AssignmentID != "" {
		assignmentID, err := primitive.ObjectIDFromHex(req.AssignmentID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid assignment id")
		}
		assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
		if err != nil {
			return nil, err
		}
		if assignment.StudentID != studentID {
			return nil, apperrors.ErrPermissionDenied
		}
		submission.AssignmentID = &assignmentID
	}

	if _, err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("submissionId", submission.ID.Hex()).
		Str("studentId", studentID.Hex()).
		Msg("Submission created")
	return submission, nil
}

// Review records a reviewer's verdict. Approving a submission that is
// linked to an assignment also completes that assignment; if the second
// write fails the review stands and the error is surfaced so the
// operator can reconcile.
func (s *SubmissionService) Review(ctx context.Context, id primitive.ObjectID, req dto.ReviewSubmissionRequest) (*models.Submission, error) {
	status := models.SubmissionStatus(req.Status)
	if !models.ValidReviewStatus(status) {
		return nil, apperrors.ErrInvalidReviewStatus
	}

	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.submissionRepo.UpdateReview(ctx, id, status, req.ReviewNote, now); err != nil {
		return nil, err
	}
	submission.Status = status
	submission.ReviewNote = req.ReviewNote
	submission.ReviewedAt = &now

	s.notifyReview(ctx, submission)

	if status == models.SubmissionApproved && submission.AssignmentID != nil {
		completedAt := now
		if err := s.assignmentRepo.UpdateStatus(ctx, *submission.AssignmentID, models.StatusCompleted, &completedAt); err != nil {
			s.logger.Error().Err(err).
				Str("submissionId", id.Hex()).
				Str("assignmentId", submission.AssignmentID.Hex()).
				Msg("Review saved but assignment completion failed")
			return nil, apperrors.NewCustomError(err, "review recorded but linked assignment update failed")
		}
	}

	s.logger.Info().
		Str("submissionId", id.Hex()).
		Str("status", string(status)).
		Msg("Submission reviewed")
	return submission, nil
}

func (s *SubmissionService) notifyReview(ctx context.Context, submission *models.Submission) {
	student, err := s.userRepo.GetByID(ctx, submission.StudentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("submissionId", submission.ID.Hex()).Msg("Failed to load student for review notification")
		return
	}
	notification := &models.Notification{
		Key:           "submission:" + submission.ID.Hex() + ":" + string(submission.Status),
		Template:      models.TemplateSubmissionReview,
		Recipient:     student.Email,
		RecipientName: student.FullName(),
		Subject:       "Your submission has been reviewed",
		Payload: map[string]string{
			"name":   student.FullName(),
			"title":  submission.Title,
			"status": string(submission.Status),
			"note":   submission.ReviewNote,
		},
	}
	if err := s.outboxRepo.Enqueue(ctx, notification); err != nil {
		s.logger.Error().Err(err).Str("submissionId", submission.ID.Hex()).Msg("Failed to queue review notification")
	}
}

// Get returns one submission, restricted to its owner for students
func (s *SubmissionService) Get(ctx context.Context, id primitive.ObjectID, caller *authContext) (*models.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RoleStudent && submission.StudentID != caller.UserID {
		return nil, apperrors.ErrPermissionDenied
	}
	return submission, nil
}

// ListForStudent pages one student's submissions
func (s *SubmissionService) ListForStudent(ctx context.Context, studentID primitive.ObjectID, skip, limit int64) ([]models.Submission, int64, error) {
	return s.submissionRepo.ListByStudent(ctx, studentID, skip, limit)
}

// List pages submissions by review state for staff
func (s *SubmissionService) List(ctx context.Context, status models.SubmissionStatus, skip, limit int64) ([]models.Submission, int64, error) {
	return s.submissionRepo.ListByStatus(ctx, status, skip, limit)
}
