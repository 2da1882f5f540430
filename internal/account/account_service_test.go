package account_test

import (
	"context"
	"errors"
	"estatehub/backend/internal/account"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/notification/notificationtest"
	"estatehub/backend/internal/storage/storagetest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newService() (*account.Service, *storagetest.MockStorage, *notificationtest.MockNotifier) {
	st := new(storagetest.MockStorage)
	n := new(notificationtest.MockNotifier)
	svc := account.NewService(st, account.NewTokenManager("test-secret", time.Hour), n, zap.NewNop())
	svc.Now = func() time.Time { return fixedNow }
	return svc, st, n
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()
	st.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "ann@example.com" &&
			u.Role == models.RoleUser &&
			u.Language == "en" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password1")) == nil
	})).Return(nil)

	u, err := svc.Register(ctx, account.RegisterInput{Email: "ann@example.com", Password: "password1", Name: " Ann "})

	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	st.AssertExpectations(t)
}

func TestRegister_StoresBareAddress(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()
	st.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "ann@example.com"
	})).Return(nil)

	u, err := svc.Register(ctx, account.RegisterInput{Email: "Ann Lee <ann@example.com>", Password: "password1", Name: "Ann"})

	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)
	st.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	svc, st, _ := newService()
	cases := map[string]account.RegisterInput{
		"bad email":      {Email: "nope", Password: "password1", Name: "A"},
		"short password": {Email: "a@b.co", Password: "short", Name: "A"},
		"no name":        {Email: "a@b.co", Password: "password1"},
		"language":       {Email: "a@b.co", Password: "password1", Name: "A", Language: "fr"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
	st.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, st, _ := newService()
	st.On("CreateUser", mock.Anything, mock.Anything).Return(apperr.ErrConflict)

	_, err := svc.Register(context.Background(), account.RegisterInput{Email: "a@b.co", Password: "password1", Name: "A"})

	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLogin(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()
	user := &models.User{ID: "user-1", Email: "a@b.co", Role: models.RoleAdmin, PasswordHash: hashed(t, "password1")}
	st.On("GetUserByEmail", ctx, "a@b.co").Return(user, nil)
	st.On("GetUserByEmail", ctx, "ghost@b.co").Return(nil, apperr.ErrNotFound)

	session, err := svc.Login(ctx, "a@b.co", "password1")
	require.NoError(t, err)
	claims, err := svc.Tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = svc.Login(ctx, "a@b.co", "wrong-password")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = svc.Login(ctx, "ghost@b.co", "password1")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Equal(t, "invalid email or password", apperr.Message(err))
}

func TestLogin_BlockedUser(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()
	st.On("GetUserByEmail", ctx, "a@b.co").Return(&models.User{
		ID: "user-1", PasswordHash: hashed(t, "password1"),
		IsBlocked: true, BlockEndTime: fixedNow.Add(time.Hour).Unix(),
	}, nil)

	_, err := svc.Login(ctx, "a@b.co", "password1")

	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Contains(t, apperr.Message(err), "restricted until")
}

func TestAuthenticate(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()
	token, _, err := svc.Tokens.Issue("user-1", models.RoleUser)
	require.NoError(t, err)

	st.On("IsUserBanned", ctx, "user-1").Return(false, nil).Once()
	st.On("GetUserByID", ctx, "user-1").Return(&models.User{ID: "user-1"}, nil).Once()
	claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	st.On("IsUserBanned", ctx, "user-1").Return(true, nil).Once()
	st.On("GetUserByID", ctx, "user-1").Return(&models.User{ID: "user-1", IsBlocked: true}, nil).Once()
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestIsBanned_RemirrorsLostMarker(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()
	st.On("IsUserBanned", ctx, "user-1").Return(false, errors.New("redis down"))
	st.On("GetUserByID", ctx, "user-1").Return(&models.User{
		ID: "user-1", IsBlocked: true, BlockEndTime: fixedNow.Add(2 * time.Hour).Unix(),
	}, nil)
	st.On("SetBanMarker", ctx, "user-1", 2*time.Hour).Return(nil)

	banned, err := svc.IsBanned(ctx, "user-1")

	require.NoError(t, err)
	assert.True(t, banned)
	st.AssertExpectations(t)
}

func TestIsBanned_DropsMarkerAfterUnban(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()
	// The unban reached Postgres but not Redis.
	st.On("IsUserBanned", ctx, "user-1").Return(true, nil)
	st.On("GetUserByID", ctx, "user-1").Return(&models.User{ID: "user-1"}, nil)
	st.On("ClearBanMarker", ctx, "user-1").Return(nil)

	banned, err := svc.IsBanned(ctx, "user-1")

	require.NoError(t, err)
	assert.False(t, banned)
	st.AssertExpectations(t)
	st.AssertNotCalled(t, "SetBanMarker", mock.Anything, mock.Anything, mock.Anything)
}

func TestIsBanned_ExpiredBanIsNotEnforced(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()
	st.On("IsUserBanned", ctx, "user-1").Return(true, nil)
	st.On("GetUserByID", ctx, "user-1").Return(&models.User{
		ID: "user-1", IsBlocked: true, BlockEndTime: fixedNow.Add(-time.Minute).Unix(),
	}, nil)
	st.On("ClearBanMarker", ctx, "user-1").Return(errors.New("redis down"))

	banned, err := svc.IsBanned(ctx, "user-1")

	require.NoError(t, err)
	assert.False(t, banned)
}

func TestBanAndUnban(t *testing.T) {
	svc, st, n := newService()
	ctx := context.Background()
	user := &models.User{ID: "user-1"}
	st.On("GetUserByID", ctx, "user-1").Return(user, nil)
	st.On("UpdateUser", ctx, user).Return(nil)
	st.On("SetBanMarker", ctx, "user-1", 48*time.Hour).Return(nil)
	st.On("ClearBanMarker", ctx, "user-1").Return(nil)
	n.On("Notify", ctx, "user-1", models.NotificationAccountRestricted, mock.Anything, nil).Return(&models.Notification{}, nil)

	u, err := svc.Ban(ctx, "user-1", 48)
	require.NoError(t, err)
	assert.True(t, u.IsBlocked)
	assert.Equal(t, fixedNow.Add(48*time.Hour).Unix(), u.BlockEndTime)

	u, err = svc.Unban(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, u.IsBlocked)
	assert.Zero(t, u.BlockEndTime)
	st.AssertExpectations(t)
	n.AssertExpectations(t)
}

func TestBan_Permanent(t *testing.T) {
	svc, st, n := newService()
	ctx := context.Background()
	st.On("GetUserByID", ctx, "user-1").Return(&models.User{ID: "user-1"}, nil)
	st.On("UpdateUser", ctx, mock.Anything).Return(nil)
	st.On("SetBanMarker", ctx, "user-1", time.Duration(0)).Return(nil)
	n.On("Notify", ctx, "user-1", models.NotificationAccountRestricted,
		map[string]string{"until": "further notice"}, nil).Return(&models.Notification{}, nil)

	u, err := svc.Ban(ctx, "user-1", 0)

	require.NoError(t, err)
	assert.True(t, u.BlockActive(fixedNow.Add(365*24*time.Hour)))
	n.AssertExpectations(t)
}

func TestPromote(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()
	st.On("GetUserByID", ctx, "user-1").Return(&models.User{ID: "user-1", Role: models.RoleUser}, nil)
	st.On("UpdateUser", ctx, mock.MatchedBy(func(u *models.User) bool { return u.IsAdmin() })).Return(nil)

	u, err := svc.Promote(ctx, "user-1")

	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}
