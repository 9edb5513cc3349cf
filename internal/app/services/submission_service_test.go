package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

type submissionFixture struct {
	service     *SubmissionService
	submissions *fakeSubmissionRepo
	assignments *fakeAssignmentRepo
	catalog     *fakeCatalogRepo
	users       *fakeUserRepo
	outbox      *fakeOutboxRepo
	student     *models.User
	project     *models.Project
}

func newSubmissionFixture() *submissionFixture {
	submissions := newFakeSubmissionRepo()
	assignments := newFakeAssignmentRepo()
	catalog := newFakeCatalogRepo()
	users := newFakeUserRepo()
	outbox := newFakeOutboxRepo()

	student := users.add(&models.User{
		Email:     "student@example.com",
		FirstName: "Ravi",
		Role:      models.RoleStudent,
		Status:    models.UserStatusActive,
	})
	project := &models.Project{Name: "Chat Server", Active: true}
	_, _ = catalog.CreateProject(context.Background(), project)

	return &submissionFixture{
		service:     NewSubmissionService(submissions, assignments, catalog, users, outbox, zerolog.Nop()),
		submissions: submissions,
		assignments: assignments,
		catalog:     catalog,
		users:       users,
		outbox:      outbox,
		student:     student,
		project:     project,
	}
}

func TestCreateSubmission(t *testing.T) {
	f := newSubmissionFixture()

	submission, err := f.service.Create(context.Background(), f.student.ID, dto.CreateSubmissionRequest{
		ProjectID:  f.project.ID.Hex(),
		Title:      "Chat server milestone 1",
		StorageKey: "submissions/milestone1.zip",
	})

	require.NoError(t, err)
	assert.Equal(t, models.SubmissionSubmitted, submission.Status)
	assert.False(t, submission.ID.IsZero())
	assert.Nil(t, submission.AssignmentID)
}

func TestCreateSubmissionUnknownProject(t *testing.T) {
	f := newSubmissionFixture()

	_, err := f.service.Create(context.Background(), f.student.ID, dto.CreateSubmissionRequest{
		ProjectID:  primitive.NewObjectID().Hex(),
		Title:      "orphan",
		StorageKey: "submissions/x.zip",
	})
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestCreateSubmissionForeignAssignmentRejected(t *testing.T) {
	f := newSubmissionFixture()
	assignment := &models.StudentAssignment{
		StudentID: primitive.NewObjectID(),
		ItemType:  models.ItemTypeProject,
		ItemID:    f.project.ID,
		Status:    models.StatusInProgress,
	}
	_, err := f.assignments.Create(context.Background(), assignment)
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), f.student.ID, dto.CreateSubmissionRequest{
		ProjectID:    f.project.ID.Hex(),
		AssignmentID: assignment.ID.Hex(),
		Title:        "not mine",
		StorageKey:   "submissions/x.zip",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestReviewInvalidStatus(t *testing.T) {
	f := newSubmissionFixture()
	submission, err := f.service.Create(context.Background(), f.student.ID, dto.CreateSubmissionRequest{
		ProjectID:  f.project.ID.Hex(),
		Title:      "milestone",
		StorageKey: "submissions/x.zip",
	})
	require.NoError(t, err)

	// students submit; "submitted" is not a reviewer verdict
	_, err = f.service.Review(context.Background(), submission.ID, dto.ReviewSubmissionRequest{
		Status: models.SubmissionSubmitted,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReviewStatus)
}

func TestReviewRejectedWithNote(t *testing.T) {
	f := newSubmissionFixture()
	submission, err := f.service.Create(context.Background(), f.student.ID, dto.CreateSubmissionRequest{
		ProjectID:  f.project.ID.Hex(),
		Title:      "milestone",
		StorageKey: "submissions/x.zip",
	})
	require.NoError(t, err)

	reviewed, err := f.service.Review(context.Background(), submission.ID, dto.ReviewSubmissionRequest{
		Status:     models.SubmissionRejected,
		ReviewNote: "tests missing",
	})

	require.NoError(t, err)
	assert.Equal(t, models.SubmissionRejected, reviewed.Status)
	assert.Equal(t, "tests missing", reviewed.ReviewNote)
	assert.NotNil(t, reviewed.ReviewedAt)

	queued := f.outbox.byTemplate(models.TemplateSubmissionReview)
	require.Len(t, queued, 1)
	assert.Equal(t, "tests missing", queued[0].Payload["note"])
}

func TestReviewApprovalCompletesLinkedAssignment(t *testing.T) {
	f := newSubmissionFixture()
	assignment := &models.StudentAssignment{
		StudentID: f.student.ID,
		ItemType:  models.ItemTypeProject,
		ItemID:    f.project.ID,
		Status:    models.StatusInProgress,
	}
	_, err := f.assignments.Create(context.Background(), assignment)
	require.NoError(t, err)

	submission, err := f.service.Create(context.Background(), f.student.ID, dto.CreateSubmissionRequest{
		ProjectID:    f.project.ID.Hex(),
		AssignmentID: assignment.ID.Hex(),
		Title:        "final build",
		StorageKey:   "submissions/final.zip",
	})
	require.NoError(t, err)

	_, err = f.service.Review(context.Background(), submission.ID, dto.ReviewSubmissionRequest{
		Status: models.SubmissionApproved,
	})
	require.NoError(t, err)

	updated, err := f.assignments.GetByID(context.Background(), assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestReviewApprovalCascadeFailureSurfaced(t *testing.T) {
	f := newSubmissionFixture()
	assignment := &models.StudentAssignment{
		StudentID: f.student.ID,
		ItemType:  models.ItemTypeProject,
		ItemID:    f.project.ID,
		Status:    models.StatusInProgress,
	}
	_, err := f.assignments.Create(context.Background(), assignment)
	require.NoError(t, err)

	submission, err := f.service.Create(context.Background(), f.student.ID, dto.CreateSubmissionRequest{
		ProjectID:    f.project.ID.Hex(),
		AssignmentID: assignment.ID.Hex(),
		Title:        "final build",
		StorageKey:   "submissions/final.zip",
	})
	require.NoError(t, err)

	// the linked assignment vanished between create and review
	require.NoError(t, f.assignments.Delete(context.Background(), assignment.ID))

	_, err = f.service.Review(context.Background(), submission.ID, dto.ReviewSubmissionRequest{
		Status: models.SubmissionApproved,
	})
	require.Error(t, err)

	// the review itself was recorded before the cascade failed
	stored, err := f.submissions.GetByID(context.Background(), submission.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionApproved, stored.Status)
}

func TestGetSubmissionOwnership(t *testing.T) {
	f := newSubmissionFixture()
	submission, err := f.service.Create(context.Background(), f.student.ID, dto.CreateSubmissionRequest{
		ProjectID:  f.project.ID.Hex(),
		Title:      "milestone",
		StorageKey: "submissions/x.zip",
	})
	require.NoError(t, err)

	_, err = f.service.Get(context.Background(), submission.ID, NewAuthContext(primitive.NewObjectID(), models.RoleStudent))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	got, err := f.service.Get(context.Background(), submission.ID, NewAuthContext(f.student.ID, models.RoleStudent))
	require.NoError(t, err)
	assert.Equal(t, submission.ID, got.ID)
}
