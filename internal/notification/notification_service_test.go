package notification_test

import (
	"context"
	"errors"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/localization"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/notification"
	"estatehub/backend/internal/pagination"
	"estatehub/backend/internal/storage/storagetest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*notification.Service, *storagetest.MockStorage) {
	t.Helper()
	l, err := localization.NewDefault()
	require.NoError(t, err)
	st := new(storagetest.MockStorage)
	return notification.NewService(st, l, zap.NewNop()), st
}

func TestNotify_LocalizesStoresAndPublishes(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	st.On("GetUserByID", ctx, "owner-1").Return(&models.User{ID: "owner-1", Language: "uk"}, nil)
	st.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == "owner-1" &&
			n.Type == models.NotificationPropertyStatus &&
			n.Title == "Статус оголошення змінено" &&
			n.Message == "\"Loft\" тепер має статус Active."
	})).Return(nil)
	st.On("IncrCachedUnread", ctx, "owner-1").Return(nil)
	st.On("PublishNotification", ctx, mock.AnythingOfType("*models.Notification")).Return(nil)

	n, err := svc.Notify(ctx, "owner-1", models.NotificationPropertyStatus,
		map[string]string{"property": "Loft", "status": "Active", "reason": ""},
		map[string]string{"propertyId": "p-1"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"propertyId":"p-1"}`, string(n.Data))
	st.AssertExpectations(t)
}

func TestNotify_FallsBackToEnglishAndToleratesRedisFailure(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	st.On("GetUserByID", ctx, "u-1").Return(&models.User{ID: "u-1", Language: "de"}, nil)
	st.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Title == "New message" && n.Message == "Anna sent you a message."
	})).Return(nil)
	st.On("IncrCachedUnread", ctx, "u-1").Return(errors.New("redis down"))
	st.On("PublishNotification", ctx, mock.Anything).Return(errors.New("redis down"))

	n, err := svc.Notify(ctx, "u-1", models.NotificationMessageReceived, map[string]string{"sender": "Anna"}, nil)

	require.NoError(t, err)
	assert.Nil(t, n.Data)
}

func TestNotify_UnknownUser(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	st.On("GetUserByID", ctx, "ghost").Return(nil, apperr.ErrNotFound)

	_, err := svc.Notify(ctx, "ghost", models.NotificationMessageReceived, nil, nil)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	st.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
}

func TestUnreadCount_CacheHitAndMiss(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	st.On("GetCachedUnread", ctx, "hit").Return(int64(4), true, nil)
	n, err := svc.UnreadCount(ctx, "hit")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	st.AssertNotCalled(t, "CountUnreadNotifications", ctx, "hit")

	st.On("GetCachedUnread", ctx, "miss").Return(int64(0), false, errors.New("redis down"))
	st.On("CountUnreadNotifications", ctx, "miss").Return(int64(7), nil)
	st.On("SetCachedUnread", ctx, "miss", int64(7)).Return(nil)
	n, err = svc.UnreadCount(ctx, "miss")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	st.AssertExpectations(t)
}

func TestMarkReadDeleteAndMarkAll(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	st.On("MarkNotificationRead", ctx, "n-1", "u-1").Return(nil)
	st.On("DeleteNotification", ctx, "n-2", "u-1").Return(nil)
	st.On("InvalidateCachedUnread", ctx, "u-1").Return(nil).Twice()
	st.On("MarkAllNotificationsRead", ctx, "u-1").Return(int64(3), nil)
	st.On("SetCachedUnread", ctx, "u-1", int64(0)).Return(nil)

	require.NoError(t, svc.MarkRead(ctx, "n-1", "u-1"))
	require.NoError(t, svc.Delete(ctx, "n-2", "u-1"))
	n, err := svc.MarkAllRead(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	st.AssertExpectations(t)
}

func TestDelete_OtherUsersNotification(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	st.On("DeleteNotification", ctx, "n-1", "intruder").Return(apperr.ErrNotFound)

	err := svc.Delete(ctx, "n-1", "intruder")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	st.AssertNotCalled(t, "InvalidateCachedUnread", ctx, "intruder")
}

func TestList_PassesFilter(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	page := pagination.New(2, 5)
	st.On("ListNotifications", ctx, "u-1", true, page).
		Return(pagination.Result[models.Notification]{Items: []models.Notification{{ID: "n"}}, Total: 6}, nil)

	res, err := svc.List(ctx, "u-1", page, true)

	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, int64(6), res.Total)
}
