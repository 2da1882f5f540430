package models_test

import (
	"estatehub/backend/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplaintTransitions(t *testing.T) {
	tests := []struct {
		from, to models.ComplaintStatus
		want     bool
	}{
		{models.ComplaintOpen, models.ComplaintInProgress, true},
		{models.ComplaintOpen, models.ComplaintResolved, true},
		{models.ComplaintOpen, models.ComplaintDismissed, true},
		{models.ComplaintInProgress, models.ComplaintOpen, true},
		{models.ComplaintInProgress, models.ComplaintResolved, true},
		{models.ComplaintInProgress, models.ComplaintInProgress, true},
		{models.ComplaintResolved, models.ComplaintOpen, false},
		{models.ComplaintDismissed, models.ComplaintInProgress, false},
		{models.ComplaintResolved, models.ComplaintResolved, true},
		{models.ComplaintOpen, models.ComplaintStatus("escalated"), false},
		{models.ComplaintStatus("escalated"), models.ComplaintOpen, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppealTransitions(t *testing.T) {
	assert.True(t, models.AppealPending.CanTransitionTo(models.AppealApproved))
	assert.True(t, models.AppealPending.CanTransitionTo(models.AppealRejected))
	assert.False(t, models.AppealPending.CanTransitionTo(models.AppealPending))

	// Once decided, an appeal stays decided.
	assert.False(t, models.AppealApproved.CanTransitionTo(models.AppealRejected))
	assert.False(t, models.AppealApproved.CanTransitionTo(models.AppealApproved))
	assert.False(t, models.AppealRejected.CanTransitionTo(models.AppealApproved))

	assert.True(t, models.AppealApproved.Terminal())
	assert.False(t, models.AppealPending.Terminal())
	assert.False(t, models.AppealStatus("maybe").Valid())
}

func TestPropertyTransitions(t *testing.T) {
	tests := []struct {
		from, to models.PropertyStatus
		want     bool
	}{
		{models.PropertyPendingVerification, models.PropertyActive, true},
		{models.PropertyPendingVerification, models.PropertyRejected, true},
		{models.PropertyPendingVerification, models.PropertyFlagged, false},
		{models.PropertyActive, models.PropertyFlagged, true},
		{models.PropertyActive, models.PropertyRejected, false},
		{models.PropertyFlagged, models.PropertyActive, true},
		{models.PropertyFlagged, models.PropertyRejected, true},
		{models.PropertyRejected, models.PropertyActive, true},
		{models.PropertyRejected, models.PropertyFlagged, false},
		{models.PropertyActive, models.PropertyActive, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingTransitions(t *testing.T) {
	assert.True(t, models.BookingPending.CanTransitionTo(models.BookingConfirmed))
	assert.True(t, models.BookingConfirmed.CanTransitionTo(models.BookingCancelled))
	assert.False(t, models.BookingCancelled.CanTransitionTo(models.BookingConfirmed))
	assert.False(t, models.BookingConfirmed.CanTransitionTo(models.BookingPending))
}

func TestValidComplaintType(t *testing.T) {
	assert.True(t, models.ValidComplaintType("Fraudulent Listing"))
	assert.False(t, models.ValidComplaintType("fraudulent listing"))
	assert.False(t, models.ValidComplaintType(""))
}
