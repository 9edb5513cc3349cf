package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectTrackOrder(t *testing.T) {
	want := []AssignmentStatus{
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

	current := StatusAssigned
	for _, next := range want[1:] {
		got, ok := NextStatus(ItemTypeProject, current)
		assert.True(t, ok, "expected a successor for %s", current)
		assert.Equal(t, next, got)
		current = got
	}

	// completed is terminal
	_, ok := NextStatus(ItemTypeProject, StatusCompleted)
	assert.False(t, ok)
}

func TestTrainingTracksSkipPaymentStates(t *testing.T) {
	for _, itemType := range []ItemType{ItemTypeCourse, ItemTypeInternship} {
		next, ok := NextStatus(itemType, StatusAssigned)
		assert.True(t, ok)
		assert.Equal(t, StatusInProgress, next)

		next, ok = NextStatus(itemType, StatusInProgress)
		assert.True(t, ok)
		assert.Equal(t, StatusCompleted, next)

		_, ok = NextStatus(itemType, StatusCompleted)
		assert.False(t, ok)

		// payment states do not exist on the training tracks
		assert.False(t, CanTransition(itemType, StatusAssigned, StatusRequirementSubmitted))
		assert.False(t, KnownStatus(itemType, StatusAdvancePaymentDue))
	}
}

func TestCanTransitionRejectsSkips(t *testing.T) {
	assert.True(t, CanTransition(ItemTypeProject, StatusAssigned, StatusRequirementSubmitted))
	assert.False(t, CanTransition(ItemTypeProject, StatusAssigned, StatusInProgress))
	assert.False(t, CanTransition(ItemTypeProject, StatusInProgress, StatusAssigned))
	assert.False(t, CanTransition(ItemTypeProject, StatusDelivered, StatusDelivered))
}

func TestNextStatusUnknownItemType(t *testing.T) {
	_, ok := NextStatus(ItemType("workshop"), StatusAssigned)
	assert.False(t, ok)
}

func TestValidReviewStatus(t *testing.T) {
	assert.True(t, ValidReviewStatus(SubmissionApproved))
	assert.True(t, ValidReviewStatus(SubmissionNeedsRevision))
	assert.False(t, ValidReviewStatus(SubmissionSubmitted))
	assert.False(t, ValidReviewStatus(SubmissionStatus("archived")))
}
