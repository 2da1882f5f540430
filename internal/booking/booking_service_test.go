package booking_test

import (
	"context"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/booking"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/notification/notificationtest"
	"estatehub/backend/internal/pagination"
	"estatehub/backend/internal/storage"
	"estatehub/backend/internal/storage/storagetest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	start    = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end      = time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)
)

func newService() (*booking.Service, *storagetest.MockStorage, *notificationtest.MockNotifier) {
	st := new(storagetest.MockStorage)
	n := new(notificationtest.MockNotifier)
	svc := booking.NewService(st, n, zap.NewNop())
	svc.Now = func() time.Time { return fixedNow }
	return svc, st, n
}

func activeProperty() *models.Property {
	return &models.Property{ID: "prop-1", OwnerID: "owner-1", Title: "Loft", Status: models.PropertyActive}
}

func TestCreate_Success(t *testing.T) {
	svc, st, n := newService()
	ctx := context.Background()
	st.On("GetPropertyForUpdate", ctx, "prop-1").Return(activeProperty(), nil)
	st.On("HasOverlappingBooking", ctx, "prop-1", start, end).Return(false, nil)
	st.On("CreateBooking", ctx, mock.MatchedBy(func(b *models.Booking) bool {
		return b.GuestID == "guest-1" && b.Status == models.BookingPending
	})).Return(nil)
	n.On("Notify", ctx, "owner-1", models.NotificationBookingRequested,
		map[string]string{"property": "Loft", "start": "2025-04-01", "end": "2025-04-05"}, mock.Anything).
		Return(&models.Notification{}, nil)

	b, err := svc.Create(ctx, "guest-1", booking.CreateInput{PropertyID: "prop-1", StartDate: start, EndDate: end})

	require.NoError(t, err)
	assert.Equal(t, "prop-1", b.PropertyID)
	st.AssertExpectations(t)
	n.AssertExpectations(t)
}

func TestCreate_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("dates reversed", func(t *testing.T) {
		svc, st, _ := newService()
		_, err := svc.Create(ctx, "guest-1", booking.CreateInput{PropertyID: "prop-1", StartDate: end, EndDate: start})
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		assert.Empty(t, st.Calls)
	})

	t.Run("in the past", func(t *testing.T) {
		svc, _, _ := newService()
		past := fixedNow.Add(-72 * time.Hour)
		_, err := svc.Create(ctx, "guest-1", booking.CreateInput{PropertyID: "prop-1", StartDate: past, EndDate: past.Add(24 * time.Hour)})
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})

	t.Run("own property", func(t *testing.T) {
		svc, st, _ := newService()
		st.On("GetPropertyForUpdate", ctx, "prop-1").Return(activeProperty(), nil)
		_, err := svc.Create(ctx, "owner-1", booking.CreateInput{PropertyID: "prop-1", StartDate: start, EndDate: end})
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})

	t.Run("not active", func(t *testing.T) {
		svc, st, _ := newService()
		p := activeProperty()
		p.Status = models.PropertyFlagged
		st.On("GetPropertyForUpdate", ctx, "prop-1").Return(p, nil)
		_, err := svc.Create(ctx, "guest-1", booking.CreateInput{PropertyID: "prop-1", StartDate: start, EndDate: end})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("overlap", func(t *testing.T) {
		svc, st, _ := newService()
		st.On("GetPropertyForUpdate", ctx, "prop-1").Return(activeProperty(), nil)
		st.On("HasOverlappingBooking", ctx, "prop-1", start, end).Return(true, nil)
		_, err := svc.Create(ctx, "guest-1", booking.CreateInput{PropertyID: "prop-1", StartDate: start, EndDate: end})
		assert.ErrorIs(t, err, apperr.ErrConflict)
		st.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})
}

func TestUpdateStatus_Permissions(t *testing.T) {
	ctx := context.Background()
	pending := func() *models.Booking {
		return &models.Booking{ID: "b-1", PropertyID: "prop-1", GuestID: "guest-1", Status: models.BookingPending}
	}

	t.Run("guest cannot confirm", func(t *testing.T) {
		svc, st, _ := newService()
		st.On("GetBookingForUpdate", ctx, "b-1").Return(pending(), nil)
		st.On("GetPropertyByID", ctx, "prop-1").Return(activeProperty(), nil)
		_, err := svc.UpdateStatus(ctx, "b-1", "guest-1", "confirmed")
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("stranger", func(t *testing.T) {
		svc, st, _ := newService()
		st.On("GetBookingForUpdate", ctx, "b-1").Return(pending(), nil)
		st.On("GetPropertyByID", ctx, "prop-1").Return(activeProperty(), nil)
		_, err := svc.UpdateStatus(ctx, "b-1", "stranger", "cancelled")
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("owner confirms", func(t *testing.T) {
		svc, st, n := newService()
		st.On("GetBookingForUpdate", ctx, "b-1").Return(pending(), nil)
		st.On("GetPropertyByID", ctx, "prop-1").Return(activeProperty(), nil)
		st.On("UpdateBooking", ctx, mock.Anything).Return(nil)
		n.On("Notify", ctx, "guest-1", models.NotificationBookingUpdated, mock.Anything, mock.Anything).Return(&models.Notification{}, nil)
		b, err := svc.UpdateStatus(ctx, "b-1", "owner-1", "confirmed")
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, b.Status)
		n.AssertExpectations(t)
	})

	t.Run("guest cancels", func(t *testing.T) {
		svc, st, n := newService()
		st.On("GetBookingForUpdate", ctx, "b-1").Return(pending(), nil)
		st.On("GetPropertyByID", ctx, "prop-1").Return(activeProperty(), nil)
		st.On("UpdateBooking", ctx, mock.Anything).Return(nil)
		n.On("Notify", ctx, "owner-1", models.NotificationBookingUpdated, mock.Anything, mock.Anything).Return(&models.Notification{}, nil)
		_, err := svc.UpdateStatus(ctx, "b-1", "guest-1", "cancelled")
		require.NoError(t, err)
		n.AssertExpectations(t)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		svc, st, _ := newService()
		b := pending()
		b.Status = models.BookingCancelled
		st.On("GetBookingForUpdate", ctx, "b-1").Return(b, nil)
		st.On("GetPropertyByID", ctx, "prop-1").Return(activeProperty(), nil)
		_, err := svc.UpdateStatus(ctx, "b-1", "owner-1", "confirmed")
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, st, _ := newService()
		_, err := svc.UpdateStatus(ctx, "b-1", "owner-1", "done")
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		assert.Empty(t, st.Calls)
	})
}

func TestUpdateStatus_ConfirmAfterGuestCancelIsRejected(t *testing.T) {
	st := newLockingStore(activeProperty(),
		models.Booking{ID: "b-1", PropertyID: "prop-1", GuestID: "guest-1", Status: models.BookingPending})
	n := new(notificationtest.MockNotifier)
	n.On("Notify", mock.Anything, "owner-1", models.NotificationBookingUpdated, mock.Anything, mock.Anything).
		Return(&models.Notification{}, nil)
	svc := booking.NewService(st, n, zap.NewNop())
	ctx := context.Background()

	// The owner confirms while the guest's cancellation still holds the row.
	confirmed := make(chan error, 1)
	st.afterRead = func() {
		go func() {
			_, err := svc.UpdateStatus(ctx, "b-1", "owner-1", "confirmed")
			confirmed <- err
		}()
	}

	b, err := svc.UpdateStatus(ctx, "b-1", "guest-1", "cancelled")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, b.Status)
	assert.ErrorIs(t, <-confirmed, apperr.ErrInvalidTransition)

	assert.Equal(t, models.BookingCancelled, st.get("b-1").Status)
	n.AssertNumberOfCalls(t, "Notify", 1)
}

func TestListings(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()
	page := pagination.New(1, 10)
	st.On("ListBookings", ctx, storage.BookingFilter{GuestID: "guest-1"}, page).Return(pagination.Result[models.Booking]{Total: 1}, nil)
	st.On("ListBookings", ctx, storage.BookingFilter{OwnerID: "owner-1"}, page).Return(pagination.Result[models.Booking]{Total: 2}, nil)

	mine, err := svc.ListMine(ctx, "guest-1", page)
	require.NoError(t, err)
	owned, err := svc.ListForOwner(ctx, "owner-1", page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Total)
	assert.Equal(t, int64(2), owned.Total)
}
