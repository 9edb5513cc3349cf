package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
	"github.com/edupro/talentdesk/internal/pkg/docgen"
)

// AssignmentService drives the student assignment workflow
type AssignmentService struct {
	assignmentRepo repositories.IAssignmentRepository
	catalogRepo    repositories.ICatalogRepository
	userRepo       repositories.IUserRepository
	outboxRepo     repositories.IOutboxRepository
	logger         zerolog.Logger
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(
	assignmentRepo repositories.IAssignmentRepository,
	catalogRepo repositories.ICatalogRepository,
	userRepo repositories.IUserRepository,
	outboxRepo repositories.IOutboxRepository,
	logger zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		catalogRepo:    catalogRepo,
		userRepo:       userRepo,
		outboxRepo:     outboxRepo,
		logger:         logger,
	}
}

// itemName resolves the catalog entity behind an assignment for display
func (s *AssignmentService) itemName(ctx context.Context, itemType models.ItemType, itemID primitive.ObjectID) (string, error) {
	switch itemType {
	case models.ItemTypeCourse:
		c, err := s.catalogRepo.GetCourse(ctx, itemID)
		if err != nil {
			return "", err
		}
		return c.Name, nil
	case models.ItemTypeInternship:
		i, err := s.catalogRepo.GetInternship(ctx, itemID)
		if err != nil {
			return "", err
		}
		return i.Name, nil
	case models.ItemTypeProject:
		p, err := s.catalogRepo.GetProject(ctx, itemID)
		if err != nil {
			return "", err
		}
		return p.Name, nil
	}
	return "", apperrors.ErrUnknownItemType
}

// Assign hands a catalog item to a student. The same student cannot
// hold the same item twice.
func (s *AssignmentService) Assign(ctx context.Context, req dto.AssignRequest) (*models.StudentAssignment, error) {
	if !models.ItemType(req.ItemType).Valid() {
		return nil, apperrors.ErrUnknownItemType
	}
	itemType := models.ItemType(req.ItemType)

	studentID, err := primitive.ObjectIDFromHex(req.StudentID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid student id")
	}
	itemID, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid item id")
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, apperrors.NewBadRequestError("assignments can only target students")
	}

	// Existence check doubles as a 404 for unknown items
	if _, err := s.itemName(ctx, itemType, itemID); err != nil {
		return nil, err
	}

	exists, err := s.assignmentRepo.ExistsForStudentItem(ctx, studentID, itemID, itemType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyAssigned
	}

	assignment := &models.StudentAssignment{
		StudentID: studentID,
		ItemType:  itemType,
		ItemID:    itemID,
		Status:    models.StatusAssigned,
		Payment: models.Payment{
			Amount: req.Amount,
			Status: models.PaymentPending,
		},
	}
	if _, err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.notifyStatus(ctx, assignment, student)
	s.logger.Info().
		Str("assignmentId", assignment.ID.Hex()).
		Str("studentId", studentID.Hex()).
		Str("itemType", string(itemType)).
		Msg("Item assigned to student")
	return assignment, nil
}

// AdvanceStatus moves an assignment to the requested status. Only the
// single legal successor is accepted; repeating the current status is
// an idempotent no-op. Payment-gated steps require the matching payment
// to have been recorded first.
func (s *AssignmentService) AdvanceStatus(ctx context.Context, id primitive.ObjectID, target models.AssignmentStatus) (*models.StudentAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.KnownStatus(assignment.ItemType, target) {
		return nil, apperrors.ErrInvalidTransition
	}
	if target == assignment.Status {
		return assignment, nil
	}
	if !models.CanTransition(assignment.ItemType, assignment.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, assignment.Status, target)
	}

	// Leaving a payment-pending state requires that payment on record
	switch assignment.Status {
	case models.StatusAdvancePaymentDue:
		if assignment.Payment.Status == models.PaymentPending {
			return nil, apperrors.ErrPaymentNotRecorded
		}
	case models.StatusFinalPaymentDue:
		if assignment.Payment.Status != models.PaymentFullySettled {
			return nil, apperrors.ErrPaymentNotRecorded
		}
	}

	var completedAt *time.Time
	if target == models.StatusCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}
	if err := s.assignmentRepo.UpdateStatus(ctx, id, target, completedAt); err != nil {
		return nil, err
	}
	assignment.Status = target
	if completedAt != nil {
		assignment.CompletedAt = completedAt
		assignment.Progress = 100
	}

	if student, err := s.userRepo.GetByID(ctx, assignment.StudentID); err == nil {
		s.notifyStatus(ctx, assignment, student)
	} else {
		s.logger.Warn().Err(err).Str("assignmentId", id.Hex()).Msg("Failed to load student for notification")
	}

	s.logger.Info().
		Str("assignmentId", id.Hex()).
		Str("status", string(target)).
		Msg("Assignment status advanced")
	return assignment, nil
}

// notifyStatus queues the status e-mail. The dedupe key makes a retried
// transition send a single mail per (assignment, status).
func (s *AssignmentService) notifyStatus(ctx context.Context, a *models.StudentAssignment, student *models.User) {
	name, err := s.itemName(ctx, a.ItemType, a.ItemID)
	if err != nil {
		s.logger.Warn().Err(err).Str("assignmentId", a.ID.Hex()).Msg("Failed to resolve item for notification")
		name = string(a.ItemType)
	}
	notification := &models.Notification{
		Key:           fmt.Sprintf("assignment:%s:%s", a.ID.Hex(), a.Status),
		Template:      models.TemplateAssignmentStatus,
		Recipient:     student.Email,
		RecipientName: student.FullName(),
		Subject:       fmt.Sprintf("Update on your %s", a.ItemType),
		Payload: map[string]string{
			"name":     student.FullName(),
			"itemType": string(a.ItemType),
			"itemName": name,
			"status":   string(a.Status),
		},
	}
	if err := s.outboxRepo.Enqueue(ctx, notification); err != nil {
		s.logger.Error().Err(err).Str("assignmentId", a.ID.Hex()).Msg("Failed to queue status notification")
	}
}

// RecordPayment applies a payment against a project assignment. The
// first payment settles the advance, the second settles the remainder.
func (s *AssignmentService) RecordPayment(ctx context.Context, id primitive.ObjectID, amount float64) (*models.StudentAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.ItemType != models.ItemTypeProject {
		return nil, apperrors.NewBadRequestError("payments apply to project assignments only")
	}

	payment := assignment.Payment
	switch payment.Status {
	case models.PaymentPending:
		payment.AdvanceAmount = amount
		payment.Status = models.PaymentAdvancePaid
	case models.PaymentAdvancePaid:
		payment.FinalAmount = amount
		payment.Status = models.PaymentFullySettled
	default:
		return nil, apperrors.NewConflictError("payment already settled")
	}

	if err := s.assignmentRepo.UpdatePayment(ctx, id, payment); err != nil {
		return nil, err
	}
	assignment.Payment = payment

	s.logger.Info().
		Str("assignmentId", id.Hex()).
		Float64("amount", amount).
		Str("paymentStatus", string(payment.Status)).
		Msg("Payment recorded")
	return assignment, nil
}

// SubmitRequirement attaches the student's requirement document and
// moves the project into requirement-submitted.
func (s *AssignmentService) SubmitRequirement(ctx context.Context, id, studentID primitive.ObjectID, req dto.SubmitRequirementRequest) (*models.StudentAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.StudentID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}
	if assignment.ItemType != models.ItemTypeProject {
		return nil, apperrors.NewBadRequestError("requirements apply to project assignments only")
	}
	if assignment.Status != models.StatusAssigned {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, assignment.Status, models.StatusRequirementSubmitted)
	}

	sub := models.RequirementSubmission{
		Description: req.Description,
		StorageKey:  req.StorageKey,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.assignmentRepo.SetRequirementSubmission(ctx, id, sub); err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.UpdateStatus(ctx, id, models.StatusRequirementSubmitted, nil); err != nil {
		return nil, err
	}
	assignment.RequirementSubmission = &sub
	assignment.Status = models.StatusRequirementSubmitted
	return assignment, nil
}

// UpdateProgress records percent complete on an in-progress assignment
func (s *AssignmentService) UpdateProgress(ctx context.Context, id primitive.ObjectID, progress int) (*models.StudentAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status == models.StatusCompleted {
		return nil, apperrors.NewConflictError("assignment already completed")
	}
	if err := s.assignmentRepo.UpdateProgress(ctx, id, progress); err != nil {
		return nil, err
	}
	assignment.Progress = progress
	return assignment, nil
}

// AttachDeliveryFile adds a deliverable reference to the assignment
func (s *AssignmentService) AttachDeliveryFile(ctx context.Context, id primitive.ObjectID, req dto.AttachDeliveryFileRequest) (*models.StudentAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	file := models.DeliveryFile{
		Name:       req.Name,
		StorageKey: req.StorageKey,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.assignmentRepo.AddDeliveryFile(ctx, id, file); err != nil {
		return nil, err
	}
	assignment.DeliveryFiles = append(assignment.DeliveryFiles, file)
	return assignment, nil
}

// Get returns one assignment, enforcing that students only see their own
func (s *AssignmentService) Get(ctx context.Context, id primitive.ObjectID, caller *authContext) (*models.StudentAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RoleStudent && assignment.StudentID != caller.UserID {
		return nil, apperrors.ErrPermissionDenied
	}
	return assignment, nil
}

// ListForStudent pages one student's assignments
func (s *AssignmentService) ListForStudent(ctx context.Context, studentID primitive.ObjectID, skip, limit int64) ([]models.StudentAssignment, int64, error) {
	return s.assignmentRepo.ListByStudent(ctx, studentID, skip, limit)
}

// List pages assignments by admin filter
func (s *AssignmentService) List(ctx context.Context, filter repositories.AssignmentFilter, skip, limit int64) ([]models.StudentAssignment, int64, error) {
	return s.assignmentRepo.List(ctx, filter, skip, limit)
}

// InvoiceData assembles the printable invoice for a recorded payment
// stage, either "advance" or "final".
func (s *AssignmentService) InvoiceData(ctx context.Context, id primitive.ObjectID, stage string) (docgen.InvoiceData, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return docgen.InvoiceData{}, err
	}

	var amount float64
	switch stage {
	case "advance":
		if assignment.Payment.Status == models.PaymentPending {
			return docgen.InvoiceData{}, apperrors.ErrPaymentNotRecorded
		}
		amount = assignment.Payment.AdvanceAmount
	case "final":
		if assignment.Payment.Status != models.PaymentFullySettled {
			return docgen.InvoiceData{}, apperrors.ErrPaymentNotRecorded
		}
		amount = assignment.Payment.FinalAmount
	default:
		return docgen.InvoiceData{}, apperrors.NewBadRequestError("stage must be advance or final")
	}

	student, err := s.userRepo.GetByID(ctx, assignment.StudentID)
	if err != nil {
		return docgen.InvoiceData{}, err
	}
	name, err := s.itemName(ctx, assignment.ItemType, assignment.ItemID)
	if err != nil {
		name = string(assignment.ItemType)
	}

	return docgen.InvoiceData{
		InvoiceNo:   fmt.Sprintf("INV-%s-%s", stage, assignment.ID.Hex()[18:]),
		Date:        time.Now().UTC(),
		BilledTo:    student.FullName(),
		Email:       student.Email,
		Description: fmt.Sprintf("%s payment for %s", stage, name),
		Total:       amount,
	}, nil
}

// authContext identifies the caller inside service methods
type authContext struct {
	UserID primitive.ObjectID
	Role   models.Role
}

// NewAuthContext builds a caller identity from token claims
func NewAuthContext(userID primitive.ObjectID, role models.Role) *authContext {
	return &authContext{UserID: userID, Role: role}
}
