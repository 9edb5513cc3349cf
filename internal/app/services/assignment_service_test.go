package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

type assignmentFixture struct {
	service     *AssignmentService
	assignments *fakeAssignmentRepo
	catalog     *fakeCatalogRepo
	users       *fakeUserRepo
	outbox      *fakeOutboxRepo
	student     *models.User
	project     *models.Project
}

func newAssignmentFixture() *assignmentFixture {
	assignments := newFakeAssignmentRepo()
	catalog := newFakeCatalogRepo()
	users := newFakeUserRepo()
	outbox := newFakeOutboxRepo()

	student := users.add(&models.User{
		Email:     "student@example.com",
		FirstName: "Aisha",
		Role:      models.RoleStudent,
		Status:    models.UserStatusActive,
	})
	project := &models.Project{Name: "Inventory Tracker", Active: true}
	_, _ = catalog.CreateProject(context.Background(), project)

	return &assignmentFixture{
		service:     NewAssignmentService(assignments, catalog, users, outbox, zerolog.Nop()),
		assignments: assignments,
		catalog:     catalog,
		users:       users,
		outbox:      outbox,
		student:     student,
		project:     project,
	}
}

func (f *assignmentFixture) assignProject(t *testing.T) *models.StudentAssignment {
	t.Helper()
	assignment, err := f.service.Assign(context.Background(), dto.AssignRequest{
		StudentID: f.student.ID.Hex(),
		ItemType:  models.ItemTypeProject,
		ItemID:    f.project.ID.Hex(),
		Amount:    5000,
	})
	require.NoError(t, err)
	return assignment
}

func TestAssignProject(t *testing.T) {
	f := newAssignmentFixture()

	assignment := f.assignProject(t)

	assert.Equal(t, models.StatusAssigned, assignment.Status)
	assert.Equal(t, models.PaymentPending, assignment.Payment.Status)
	assert.Equal(t, 5000.0, assignment.Payment.Amount)

	queued := f.outbox.byTemplate(models.TemplateAssignmentStatus)
	require.Len(t, queued, 1)
	assert.Equal(t, "student@example.com", queued[0].Recipient)
	assert.Equal(t, "Inventory Tracker", queued[0].Payload["itemName"])
}

func TestAssignDuplicateRejected(t *testing.T) {
	f := newAssignmentFixture()
	f.assignProject(t)

	_, err := f.service.Assign(context.Background(), dto.AssignRequest{
		StudentID: f.student.ID.Hex(),
		ItemType:  models.ItemTypeProject,
		ItemID:    f.project.ID.Hex(),
	})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyAssigned)
}

func TestAssignNonStudentRejected(t *testing.T) {
	f := newAssignmentFixture()
	admin := f.users.add(&models.User{
		Email:  "admin@example.com",
		Role:   models.RoleAdmin,
		Status: models.UserStatusActive,
	})

	_, err := f.service.Assign(context.Background(), dto.AssignRequest{
		StudentID: admin.ID.Hex(),
		ItemType:  models.ItemTypeProject,
		ItemID:    f.project.ID.Hex(),
	})
	assert.Error(t, err)
}

func TestAssignUnknownItem(t *testing.T) {
	f := newAssignmentFixture()

	_, err := f.service.Assign(context.Background(), dto.AssignRequest{
		StudentID: f.student.ID.Hex(),
		ItemType:  models.ItemTypeProject,
		ItemID:    primitive.NewObjectID().Hex(),
	})
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestAssignUnknownItemType(t *testing.T) {
	f := newAssignmentFixture()

	_, err := f.service.Assign(context.Background(), dto.AssignRequest{
		StudentID: f.student.ID.Hex(),
		ItemType:  "bootcamp",
		ItemID:    f.project.ID.Hex(),
	})
	assert.ErrorIs(t, err, apperrors.ErrUnknownItemType)
}

func TestAdvanceStatusUnknownTarget(t *testing.T) {
	f := newAssignmentFixture()
	assignment := f.assignProject(t)

	_, err := f.service.AdvanceStatus(context.Background(), assignment.ID, "archived")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestAdvanceStatusRepeatIsNoOp(t *testing.T) {
	f := newAssignmentFixture()
	assignment := f.assignProject(t)

	got, err := f.service.AdvanceStatus(context.Background(), assignment.ID, models.StatusAssigned)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, got.Status)
}

func TestAdvanceStatusSkipRejected(t *testing.T) {
	f := newAssignmentFixture()
	assignment := f.assignProject(t)

	_, err := f.service.AdvanceStatus(context.Background(), assignment.ID, models.StatusInProgress)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestAdvanceStatusPaymentGate(t *testing.T) {
	f := newAssignmentFixture()
	assignment := f.assignProject(t)
	ctx := context.Background()

	_, err := f.service.SubmitRequirement(ctx, assignment.ID, f.student.ID, dto.SubmitRequirementRequest{
		Description: "scope document",
		StorageKey:  "requirements/scope.pdf",
	})
	require.NoError(t, err)

	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusAdvancePaymentDue)
	require.NoError(t, err)

	// no advance payment recorded yet
	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusInProgress)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotRecorded)

	_, err = f.service.RecordPayment(ctx, assignment.ID, 2000)
	require.NoError(t, err)

	got, err := f.service.AdvanceStatus(ctx, assignment.ID, models.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)
}

func TestProjectLifecycleToCompletion(t *testing.T) {
	f := newAssignmentFixture()
	assignment := f.assignProject(t)
	ctx := context.Background()

	_, err := f.service.SubmitRequirement(ctx, assignment.ID, f.student.ID, dto.SubmitRequirementRequest{
		StorageKey: "requirements/scope.pdf",
	})
	require.NoError(t, err)

	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusAdvancePaymentDue)
	require.NoError(t, err)
	_, err = f.service.RecordPayment(ctx, assignment.ID, 2000)
	require.NoError(t, err)
	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusInProgress)
	require.NoError(t, err)
	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusReadyForDemo)
	require.NoError(t, err)
	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusFinalPaymentDue)
	require.NoError(t, err)

	// final payment gates the download step
	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusReadyForDownload)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotRecorded)
	_, err = f.service.RecordPayment(ctx, assignment.ID, 3000)
	require.NoError(t, err)

	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusReadyForDownload)
	require.NoError(t, err)
	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusDelivered)
	require.NoError(t, err)
	got, err := f.service.AdvanceStatus(ctx, assignment.ID, models.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
	assert.Equal(t, 100, got.Progress)

	// one notification per reached status
	queued := f.outbox.byTemplate(models.TemplateAssignmentStatus)
	keys := make(map[string]bool, len(queued))
	for _, n := range queued {
		keys[n.Key] = true
	}
	assert.Len(t, keys, len(queued))
	assert.True(t, keys[fmt.Sprintf("assignment:%s:%s", assignment.ID.Hex(), models.StatusCompleted)])
}

func TestRecordPaymentStages(t *testing.T) {
	f := newAssignmentFixture()
	assignment := f.assignProject(t)
	ctx := context.Background()

	got, err := f.service.RecordPayment(ctx, assignment.ID, 2000)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentAdvancePaid, got.Payment.Status)
	assert.Equal(t, 2000.0, got.Payment.AdvanceAmount)

	got, err = f.service.RecordPayment(ctx, assignment.ID, 3000)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFullySettled, got.Payment.Status)
	assert.Equal(t, 3000.0, got.Payment.FinalAmount)

	_, err = f.service.RecordPayment(ctx, assignment.ID, 100)
	assert.Error(t, err)
}

func TestRecordPaymentProjectOnly(t *testing.T) {
	f := newAssignmentFixture()
	course := &models.Course{Name: "Go Fundamentals", Active: true}
	_, _ = f.catalog.CreateCourse(context.Background(), course)

	assignment, err := f.service.Assign(context.Background(), dto.AssignRequest{
		StudentID: f.student.ID.Hex(),
		ItemType:  models.ItemTypeCourse,
		ItemID:    course.ID.Hex(),
	})
	require.NoError(t, err)

	_, err = f.service.RecordPayment(context.Background(), assignment.ID, 100)
	assert.Error(t, err)
}

func TestCourseLifecycle(t *testing.T) {
	f := newAssignmentFixture()
	course := &models.Course{Name: "Go Fundamentals", Active: true}
	_, _ = f.catalog.CreateCourse(context.Background(), course)
	ctx := context.Background()

	assignment, err := f.service.Assign(ctx, dto.AssignRequest{
		StudentID: f.student.ID.Hex(),
		ItemType:  models.ItemTypeCourse,
		ItemID:    course.ID.Hex(),
	})
	require.NoError(t, err)

	// the project-only steps are not part of the course track
	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusRequirementSubmitted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusInProgress)
	require.NoError(t, err)
	got, err := f.service.AdvanceStatus(ctx, assignment.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestSubmitRequirementOwnerOnly(t *testing.T) {
	f := newAssignmentFixture()
	assignment := f.assignProject(t)

	_, err := f.service.SubmitRequirement(context.Background(), assignment.ID, primitive.NewObjectID(), dto.SubmitRequirementRequest{
		StorageKey: "requirements/scope.pdf",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateProgressOnCompletedRejected(t *testing.T) {
	f := newAssignmentFixture()
	course := &models.Course{Name: "Go Fundamentals", Active: true}
	_, _ = f.catalog.CreateCourse(context.Background(), course)
	ctx := context.Background()

	assignment, err := f.service.Assign(ctx, dto.AssignRequest{
		StudentID: f.student.ID.Hex(),
		ItemType:  models.ItemTypeCourse,
		ItemID:    course.ID.Hex(),
	})
	require.NoError(t, err)

	_, err = f.service.UpdateProgress(ctx, assignment.ID, 40)
	require.NoError(t, err)

	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusInProgress)
	require.NoError(t, err)
	_, err = f.service.AdvanceStatus(ctx, assignment.ID, models.StatusCompleted)
	require.NoError(t, err)

	_, err = f.service.UpdateProgress(ctx, assignment.ID, 50)
	assert.Error(t, err)
}

func TestGetEnforcesStudentOwnership(t *testing.T) {
	f := newAssignmentFixture()
	assignment := f.assignProject(t)
	other := primitive.NewObjectID()

	_, err := f.service.Get(context.Background(), assignment.ID, NewAuthContext(other, models.RoleStudent))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	got, err := f.service.Get(context.Background(), assignment.ID, NewAuthContext(other, models.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, assignment.ID, got.ID)
}

func TestInvoiceDataStages(t *testing.T) {
	f := newAssignmentFixture()
	assignment := f.assignProject(t)
	ctx := context.Background()

	_, err := f.service.InvoiceData(ctx, assignment.ID, "advance")
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotRecorded)

	_, err = f.service.RecordPayment(ctx, assignment.ID, 2000)
	require.NoError(t, err)

	data, err := f.service.InvoiceData(ctx, assignment.ID, "advance")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, data.Total)
	assert.Equal(t, "Aisha", data.BilledTo)
	assert.Contains(t, data.Description, "Inventory Tracker")

	_, err = f.service.InvoiceData(ctx, assignment.ID, "final")
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotRecorded)

	_, err = f.service.InvoiceData(ctx, assignment.ID, "quarterly")
	assert.Error(t, err)
}

func TestListFilter(t *testing.T) {
	f := newAssignmentFixture()
	f.assignProject(t)
	course := &models.Course{Name: "Go Fundamentals", Active: true}
	_, _ = f.catalog.CreateCourse(context.Background(), course)
	_, err := f.service.Assign(context.Background(), dto.AssignRequest{
		StudentID: f.student.ID.Hex(),
		ItemType:  models.ItemTypeCourse,
		ItemID:    course.ID.Hex(),
	})
	require.NoError(t, err)

	projects, total, err := f.service.List(context.Background(), repositories.AssignmentFilter{
		ItemType: models.ItemTypeProject,
	}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, projects, 1)
	assert.Equal(t, models.ItemTypeProject, projects[0].ItemType)
}
