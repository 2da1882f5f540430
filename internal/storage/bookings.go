package storage

import (
	"context"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"
	"time"

	"gorm.io/gorm/clause"
)

// BookingFilter selects bookings made by a guest or made on an owner's properties.
type BookingFilter struct {
	GuestID string
	OwnerID string
}

func (s *Service) CreateBooking(ctx context.Context, b *models.Booking) error {
	return s.DB.WithContext(ctx).Create(b).Error
}

// GetBookingForUpdate locks the booking row until the surrounding transaction ends.
func (s *Service) GetBookingForUpdate(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := s.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "booking")
	}
	return &b, nil
}

func (s *Service) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return s.DB.WithContext(ctx).Save(b).Error
}

func (s *Service) ListBookings(ctx context.Context, f BookingFilter, page pagination.Page) (pagination.Result[models.Booking], error) {
	q := s.DB.WithContext(ctx).Model(&models.Booking{})
	if f.GuestID != "" {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.OwnerID != "" {
		q = q.Where("property_id IN (?)",
			s.DB.WithContext(ctx).Model(&models.Property{}).Select("id").Where("owner_id = ?", f.OwnerID))
	}
	return paginate[models.Booking](q, page, "created_at DESC, id DESC")
}

// HasOverlappingBooking reports whether a non-cancelled booking intersects [start, end).
func (s *Service) HasOverlappingBooking(ctx context.Context, propertyID string, start, end time.Time) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("property_id = ? AND status <> ?", propertyID, models.BookingCancelled).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&n).Error
	return n > 0, err
}
