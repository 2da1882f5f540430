// Package storagetest provides a testify mock of storage.Storage.
package storagetest

import (
	"context"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"
	"estatehub/backend/internal/storage"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

// WithTx runs fn against the mock itself. Expect "WithTx" to make the
// transaction fail before fn runs.
func (m *MockStorage) WithTx(ctx context.Context, fn func(tx storage.Storage) error) error {
	for _, c := range m.ExpectedCalls {
		if c.Method == "WithTx" {
			if err := m.Called(ctx).Error(0); err != nil {
				return err
			}
			break
		}
	}
	return fn(m)
}

func (m *MockStorage) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStorage) UpdateUserReputation(ctx context.Context, userID string, change int) error {
	args := m.Called(ctx, userID, change)
	return args.Error(0)
}

func (m *MockStorage) GetUserSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.UserSummary), args.Error(1)
}

func (m *MockStorage) CreateProperty(ctx context.Context, p *models.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStorage) GetPropertyByID(ctx context.Context, id string) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockStorage) GetPropertyForUpdate(ctx context.Context, id string) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockStorage) UpdateProperty(ctx context.Context, p *models.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStorage) DeleteProperty(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) ListProperties(ctx context.Context, f storage.PropertyFilter, page pagination.Page) (pagination.Result[models.Property], error) {
	args := m.Called(ctx, f, page)
	return args.Get(0).(pagination.Result[models.Property]), args.Error(1)
}

func (m *MockStorage) GetPropertySummaries(ctx context.Context, ids []string) (map[string]models.PropertySummary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.PropertySummary), args.Error(1)
}

func (m *MockStorage) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(ctx context.Context, id string) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) GetComplaintForUpdate(ctx context.Context, id string) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) GetComplaintView(ctx context.Context, id string) (*models.ComplaintView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplaintView), args.Error(1)
}

func (m *MockStorage) UpdateComplaint(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStorage) ListComplaints(ctx context.Context, f storage.ComplaintFilter, page pagination.Page) (pagination.Result[models.ComplaintView], error) {
	args := m.Called(ctx, f, page)
	return args.Get(0).(pagination.Result[models.ComplaintView]), args.Error(1)
}

func (m *MockStorage) CountComplaintsAgainst(ctx context.Context, targetID string, since time.Time) (int64, error) {
	args := m.Called(ctx, targetID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CreateAppeal(ctx context.Context, a *models.Appeal) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockStorage) GetAppealByID(ctx context.Context, id string) (*models.Appeal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appeal), args.Error(1)
}

func (m *MockStorage) GetAppealForUpdate(ctx context.Context, id string) (*models.Appeal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appeal), args.Error(1)
}

func (m *MockStorage) CountPendingAppeals(ctx context.Context, propertyID string) (int64, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) GetAppealByComplaintID(ctx context.Context, complaintID string) (*models.Appeal, error) {
	args := m.Called(ctx, complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appeal), args.Error(1)
}

func (m *MockStorage) GetAppealView(ctx context.Context, id string) (*models.AppealView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppealView), args.Error(1)
}

func (m *MockStorage) UpdateAppeal(ctx context.Context, a *models.Appeal) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockStorage) ListAppeals(ctx context.Context, f storage.AppealFilter, page pagination.Page) (pagination.Result[models.AppealView], error) {
	args := m.Called(ctx, f, page)
	return args.Get(0).(pagination.Result[models.AppealView]), args.Error(1)
}

func (m *MockStorage) CreateBooking(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockStorage) GetBookingForUpdate(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockStorage) UpdateBooking(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockStorage) ListBookings(ctx context.Context, f storage.BookingFilter, page pagination.Page) (pagination.Result[models.Booking], error) {
	args := m.Called(ctx, f, page)
	return args.Get(0).(pagination.Result[models.Booking]), args.Error(1)
}

func (m *MockStorage) HasOverlappingBooking(ctx context.Context, propertyID string, start, end time.Time) (bool, error) {
	args := m.Called(ctx, propertyID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CreateMessage(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockStorage) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) ListConversation(ctx context.Context, userA, userB string, since time.Time, limit int) ([]models.Message, error) {
	args := m.Called(ctx, userA, userB, since, limit)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) MarkMessageRead(ctx context.Context, id, recipientID string) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

func (m *MockStorage) ListInbox(ctx context.Context, userID string) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) CreateReview(ctx context.Context, r *models.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockStorage) ListReviews(ctx context.Context, propertyID string, page pagination.Page) (pagination.Result[models.Review], error) {
	args := m.Called(ctx, propertyID, page)
	return args.Get(0).(pagination.Result[models.Review]), args.Error(1)
}

func (m *MockStorage) GetRatingSummary(ctx context.Context, propertyID string) (storage.RatingSummary, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(storage.RatingSummary), args.Error(1)
}

func (m *MockStorage) CreateNotification(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockStorage) ListNotifications(ctx context.Context, userID string, unreadOnly bool, page pagination.Page) (pagination.Result[models.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, page)
	return args.Get(0).(pagination.Result[models.Notification]), args.Error(1)
}

func (m *MockStorage) MarkNotificationRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockStorage) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) DeleteNotification(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockStorage) CountUnreadNotifications(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) SetBanMarker(ctx context.Context, userID string, ttl time.Duration) error {
	args := m.Called(ctx, userID, ttl)
	return args.Error(0)
}

func (m *MockStorage) ClearBanMarker(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStorage) IsUserBanned(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) GetCachedUnread(ctx context.Context, userID string) (int64, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockStorage) SetCachedUnread(ctx context.Context, userID string, count int64) error {
	args := m.Called(ctx, userID, count)
	return args.Error(0)
}

func (m *MockStorage) IncrCachedUnread(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStorage) InvalidateCachedUnread(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStorage) PublishNotification(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
