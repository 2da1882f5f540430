// Package booking handles stay requests between guests and property owners.
package booking

import (
	"context"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/notification"
	"estatehub/backend/internal/pagination"
	"estatehub/backend/internal/storage"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Service struct {
	Storage  storage.Storage
	Notifier notification.Notifier
	Log      *zap.Logger
	Now      func() time.Time
}

func NewService(s storage.Storage, n notification.Notifier, log *zap.Logger) *Service {
	return &Service{Storage: s, Notifier: n, Log: log, Now: time.Now}
}

type CreateInput struct {
	PropertyID string
	StartDate  time.Time
	EndDate    time.Time
	Note       string
}

// Create requests a stay. The property row is locked while the overlap check
// and the insert run, so two guests cannot book the same nights.
func (s *Service) Create(ctx context.Context, guestID string, in CreateInput) (*models.Booking, error) {
	today := s.Now().UTC().Truncate(24 * time.Hour)
	switch {
	case in.PropertyID == "":
		return nil, fmt.Errorf("%w: propertyId is required", apperr.ErrInvalidInput)
	case !in.EndDate.After(in.StartDate):
		return nil, fmt.Errorf("%w: endDate must be after startDate", apperr.ErrInvalidInput)
	case in.StartDate.Before(today):
		return nil, fmt.Errorf("%w: startDate is in the past", apperr.ErrInvalidInput)
	}

	var (
		b        *models.Booking
		property *models.Property
	)
	err := s.Storage.WithTx(ctx, func(tx storage.Storage) error {
		p, err := tx.GetPropertyForUpdate(ctx, in.PropertyID)
		if err != nil {
			return err
		}
		if p.OwnerID == guestID {
			return fmt.Errorf("%w: you cannot book your own property", apperr.ErrInvalidInput)
		}
		if p.Status != models.PropertyActive {
			return fmt.Errorf("%w: property is not available for booking", apperr.ErrConflict)
		}
		overlap, err := tx.HasOverlappingBooking(ctx, p.ID, in.StartDate, in.EndDate)
		if err != nil {
			return err
		}
		if overlap {
			return fmt.Errorf("%w: property is already booked for these dates", apperr.ErrConflict)
		}

		b = &models.Booking{
			PropertyID: p.ID,
			GuestID:    guestID,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			Status:     models.BookingPending,
			Note:       strings.TrimSpace(in.Note),
		}
		property = p
		return tx.CreateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, property.OwnerID, models.NotificationBookingRequested, map[string]string{
		"property": property.Title,
		"start":    b.StartDate.Format(dateLayout),
		"end":      b.EndDate.Format(dateLayout),
	}, map[string]string{"bookingId": b.ID, "propertyId": property.ID})
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, guestID string, page pagination.Page) (pagination.Result[models.Booking], error) {
	return s.Storage.ListBookings(ctx, storage.BookingFilter{GuestID: guestID}, page)
}

// ListForOwner lists bookings on every property ownerID lists.
func (s *Service) ListForOwner(ctx context.Context, ownerID string, page pagination.Page) (pagination.Result[models.Booking], error) {
	return s.Storage.ListBookings(ctx, storage.BookingFilter{OwnerID: ownerID}, page)
}

// UpdateStatus lets the owner confirm or cancel, and the guest cancel.
func (s *Service) UpdateStatus(ctx context.Context, id, callerID, status string) (*models.Booking, error) {
	next := models.BookingStatus(status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", apperr.ErrInvalidInput, status)
	}

	var (
		b       *models.Booking
		p       *models.Property
		changed bool
	)
	// The booking row stays locked so a guest cancel and an owner confirm serialise.
	err := s.Storage.WithTx(ctx, func(tx storage.Storage) error {
		var err error
		if b, err = tx.GetBookingForUpdate(ctx, id); err != nil {
			return err
		}
		if p, err = tx.GetPropertyByID(ctx, b.PropertyID); err != nil {
			return err
		}

		isOwner := p.OwnerID == callerID
		isGuest := b.GuestID == callerID
		switch {
		case !isOwner && !isGuest:
			return fmt.Errorf("%w: you are not a party to this booking", apperr.ErrForbidden)
		case !isOwner && next != models.BookingCancelled:
			return fmt.Errorf("%w: only the owner can %s a booking", apperr.ErrForbidden, next)
		}
		if !b.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: cannot move booking from %s to %s", apperr.ErrInvalidTransition, b.Status, next)
		}
		if b.Status == next {
			return nil
		}
		b.Status = next
		changed = true
		return tx.UpdateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	counterpart := b.GuestID
	if callerID == b.GuestID {
		counterpart = p.OwnerID
	}
	s.notify(ctx, counterpart, models.NotificationBookingUpdated,
		map[string]string{"property": p.Title, "status": string(next)},
		map[string]string{"bookingId": b.ID, "propertyId": p.ID})
	return b, nil
}

func (s *Service) notify(ctx context.Context, userID, kind string, vars map[string]string, data any) {
	if s.Notifier == nil {
		return
	}
	if _, err := s.Notifier.Notify(ctx, userID, kind, vars, data); err != nil {
		s.Log.Warn("notification failed", zap.String("user_id", userID), zap.String("type", kind), zap.Error(err))
	}
}
