package main

import (
	"bytes"
	"context"
	"errors"
	"estatehub/backend/internal/account"
	"estatehub/backend/internal/appeal"
	"estatehub/backend/internal/complaint"
	"estatehub/backend/internal/listing"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/notification"
	"estatehub/backend/internal/notification/notificationtest"
	"estatehub/backend/internal/storage/storagetest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp() (*app, *storagetest.MockStorage, *notificationtest.MockNotifier) {
	st := new(storagetest.MockStorage)
	n := new(notificationtest.MockNotifier)
	log := zap.NewNop()
	return &app{
		Accounts:   account.NewService(st, account.NewTokenManager("secret", time.Hour), n, log),
		Complaints: complaint.NewService(st, n, notification.NopAlerter{}, log),
		Appeals:    appeal.NewService(st, n, notification.NopAlerter{}, log),
		Listings:   listing.NewService(st, n, log),
	}, st, n
}

func TestRun_Usage(t *testing.T) {
	a, _, _ := newApp()
	var out bytes.Buffer

	assert.ErrorIs(t, a.run(context.Background(), nil, &out), errUsage)
	assert.ErrorIs(t, a.run(context.Background(), []string{"unban"}, &out), errUsage)

	err := a.run(context.Background(), []string{"confirm-complaint", "1"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "confirm-complaint"`)
}

func TestRun_BanForHours(t *testing.T) {
	a, st, n := newApp()
	ctx := context.Background()
	st.On("GetUserByID", ctx, "user-1").Return(&models.User{ID: "user-1"}, nil)
	st.On("UpdateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.IsBlocked && u.BlockEndTime > 0
	})).Return(nil)
	st.On("SetBanMarker", ctx, "user-1", mock.Anything).Return(nil)
	n.On("Notify", ctx, "user-1", models.NotificationAccountRestricted, mock.Anything, mock.Anything).Return(&models.Notification{}, nil)

	var out bytes.Buffer
	require.NoError(t, a.run(ctx, []string{"ban", "user-1", "24"}, &out))

	assert.Equal(t, "User user-1 has been banned.\n", out.String())
	st.AssertExpectations(t)
}

func TestRun_BanRejectsBadHours(t *testing.T) {
	a, st, _ := newApp()
	err := a.run(context.Background(), []string{"ban", "user-1", "soon"}, &bytes.Buffer{})
	require.Error(t, err)
	st.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
}

func TestRun_Promote(t *testing.T) {
	a, st, _ := newApp()
	ctx := context.Background()
	st.On("GetUserByID", ctx, "user-1").Return(&models.User{ID: "user-1", Role: models.RoleUser}, nil)
	st.On("UpdateUser", ctx, mock.MatchedBy(func(u *models.User) bool { return u.Role == models.RoleAdmin })).Return(nil)

	var out bytes.Buffer
	require.NoError(t, a.run(ctx, []string{"promote", "user-1"}, &out))
	assert.Equal(t, "User user-1 is now an admin.\n", out.String())
}

func TestRun_ResolveAppealNeedsAdminID(t *testing.T) {
	a, st, _ := newApp()
	err := a.run(context.Background(), []string{"resolve-appeal", "a-1", "approved"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_USER_ID")
	st.AssertNotCalled(t, "GetAppealForUpdate", mock.Anything, mock.Anything)
}

func TestRun_PropertyStatusWrapsServiceError(t *testing.T) {
	a, st, _ := newApp()
	ctx := context.Background()
	st.On("GetPropertyForUpdate", ctx, "p-1").Return(nil, errors.New("db down"))

	err := a.run(ctx, []string{"property-status", "p-1", "Active"}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, "update property: db down", err.Error())
}
