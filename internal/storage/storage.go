package storage

import (
	"context"
	"errors"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence boundary used by every domain service.
// Implementations must honour ctx cancellation.
type Storage interface {
	// WithTx runs fn against a Storage bound to one database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Storage) error) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdateUserReputation(ctx context.Context, userID string, change int) error
	GetUserSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error)

	CreateProperty(ctx context.Context, p *models.Property) error
	GetPropertyByID(ctx context.Context, id string) (*models.Property, error)
	GetPropertyForUpdate(ctx context.Context, id string) (*models.Property, error)
	UpdateProperty(ctx context.Context, p *models.Property) error
	DeleteProperty(ctx context.Context, id string) error
	ListProperties(ctx context.Context, f PropertyFilter, page pagination.Page) (pagination.Result[models.Property], error)
	GetPropertySummaries(ctx context.Context, ids []string) (map[string]models.PropertySummary, error)

	CreateComplaint(ctx context.Context, c *models.Complaint) error
	GetComplaintByID(ctx context.Context, id string) (*models.Complaint, error)
	GetComplaintForUpdate(ctx context.Context, id string) (*models.Complaint, error)
	GetComplaintView(ctx context.Context, id string) (*models.ComplaintView, error)
	UpdateComplaint(ctx context.Context, c *models.Complaint) error
	ListComplaints(ctx context.Context, f ComplaintFilter, page pagination.Page) (pagination.Result[models.ComplaintView], error)
	CountComplaintsAgainst(ctx context.Context, targetID string, since time.Time) (int64, error)

	CreateAppeal(ctx context.Context, a *models.Appeal) error
	GetAppealByID(ctx context.Context, id string) (*models.Appeal, error)
	GetAppealForUpdate(ctx context.Context, id string) (*models.Appeal, error)
	GetAppealByComplaintID(ctx context.Context, complaintID string) (*models.Appeal, error)
	CountPendingAppeals(ctx context.Context, propertyID string) (int64, error)
	GetAppealView(ctx context.Context, id string) (*models.AppealView, error)
	UpdateAppeal(ctx context.Context, a *models.Appeal) error
	ListAppeals(ctx context.Context, f AppealFilter, page pagination.Page) (pagination.Result[models.AppealView], error)

	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBookingForUpdate(ctx context.Context, id string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking) error
	ListBookings(ctx context.Context, f BookingFilter, page pagination.Page) (pagination.Result[models.Booking], error)
	HasOverlappingBooking(ctx context.Context, propertyID string, start, end time.Time) (bool, error)

	CreateMessage(ctx context.Context, m *models.Message) error
	GetMessageByID(ctx context.Context, id string) (*models.Message, error)
	ListConversation(ctx context.Context, userA, userB string, since time.Time, limit int) ([]models.Message, error)
	MarkMessageRead(ctx context.Context, id, recipientID string) error
	ListInbox(ctx context.Context, userID string) ([]models.Message, error)

	CreateReview(ctx context.Context, r *models.Review) error
	ListReviews(ctx context.Context, propertyID string, page pagination.Page) (pagination.Result[models.Review], error)
	GetRatingSummary(ctx context.Context, propertyID string) (RatingSummary, error)

	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, page pagination.Page) (pagination.Result[models.Notification], error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
	DeleteNotification(ctx context.Context, id, userID string) error
	CountUnreadNotifications(ctx context.Context, userID string) (int64, error)

	// Redis-backed state.
	SetBanMarker(ctx context.Context, userID string, ttl time.Duration) error
	ClearBanMarker(ctx context.Context, userID string) error
	IsUserBanned(ctx context.Context, userID string) (bool, error)
	GetCachedUnread(ctx context.Context, userID string) (int64, bool, error)
	SetCachedUnread(ctx context.Context, userID string, count int64) error
	IncrCachedUnread(ctx context.Context, userID string) error
	InvalidateCachedUnread(ctx context.Context, userID string) error
	PublishNotification(ctx context.Context, n *models.Notification) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStorageService Constructor. rdb may be nil (admin CLI); Redis-backed
// methods then degrade to no-ops.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
	}
}

func (s *Service) WithTx(ctx context.Context, fn func(tx Storage) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Service{DB: tx, Redis: s.Redis})
	})
}

// notFound maps gorm.ErrRecordNotFound onto apperr.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s not found", apperr.ErrNotFound, what)
	}
	return err
}

// duplicate maps unique violations onto apperr.ErrConflict.
// Requires gorm.Config.TranslateError.
func duplicate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", apperr.ErrConflict, msg)
	}
	return err
}

// paginate runs the COUNT and the page query of a filtered scope.
func paginate[T any](q *gorm.DB, page pagination.Page, order string) (pagination.Result[T], error) {
	var res pagination.Result[T]
	if err := q.Session(&gorm.Session{}).Count(&res.Total).Error; err != nil {
		return res, err
	}
	items := make([]T, 0, page.Limit)
	if err := q.Session(&gorm.Session{}).Order(order).Offset(page.Offset()).Limit(page.Limit).Find(&items).Error; err != nil {
		return res, err
	}
	res.Items = items
	return res, nil
}
