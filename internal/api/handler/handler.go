package handler

import (
	"estatehub/backend/internal/account"
	"estatehub/backend/internal/appeal"
	"estatehub/backend/internal/booking"
	"estatehub/backend/internal/complaint"
	"estatehub/backend/internal/listing"
	"estatehub/backend/internal/messaging"
	"estatehub/backend/internal/notification"
	"estatehub/backend/internal/notifyhub"
	"estatehub/backend/internal/review"

	"go.uber.org/zap"
)

// Handler містить посилання на доменні сервіси та хаб сповіщень
type Handler struct {
	Accounts      *account.Service
	Listings      *listing.Service
	Complaints    *complaint.Service
	Appeals       *appeal.Service
	Bookings      *booking.Service
	Messages      *messaging.Service
	Reviews       *review.Service
	Notifications *notification.Service
	Hub           *notifyhub.Hub
	Log           *zap.Logger
}

// Services groups the dependencies NewHandler wires into a Handler.
type Services struct {
	Accounts      *account.Service
	Listings      *listing.Service
	Complaints    *complaint.Service
	Appeals       *appeal.Service
	Bookings      *booking.Service
	Messages      *messaging.Service
	Reviews       *review.Service
	Notifications *notification.Service
}

func NewHandler(s Services, hub *notifyhub.Hub, log *zap.Logger) *Handler {
	return &Handler{
		Accounts:      s.Accounts,
		Listings:      s.Listings,
		Complaints:    s.Complaints,
		Appeals:       s.Appeals,
		Bookings:      s.Bookings,
		Messages:      s.Messages,
		Reviews:       s.Reviews,
		Notifications: s.Notifications,
		Hub:           hub,
		Log:           log,
	}
}
