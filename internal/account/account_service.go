// Package account handles registration, login and admin account restrictions.
package account

import (
	"context"
	"errors"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/localization"
	"estatehub/backend/internal/metrics"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/notification"
	"estatehub/backend/internal/storage"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// SupportedLanguages are the notification locales a user can pick.
var SupportedLanguages = []string{"en", "uk", "ru"}

type Service struct {
	Storage  storage.Storage
	Tokens   *TokenManager
	Notifier notification.Notifier
	Log      *zap.Logger
	Now      func() time.Time
}

func NewService(s storage.Storage, tokens *TokenManager, n notification.Notifier, log *zap.Logger) *Service {
	return &Service{Storage: s, Tokens: tokens, Notifier: n, Log: log, Now: time.Now}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Language string `json:"language"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	addr, err := mail.ParseAddress(in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email address", apperr.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperr.ErrInvalidInput, minPasswordLength)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrInvalidInput)
	}
	if in.Language == "" {
		in.Language = localization.DefaultLanguage
	}
	if !slices.Contains(SupportedLanguages, in.Language) {
		return nil, fmt.Errorf("%w: unsupported language %q", apperr.ErrInvalidInput, in.Language)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:        addr.Address,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         models.RoleUser,
		Language:     in.Language,
	}
	if err := s.Storage.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and issues an access token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	invalid := fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthorized)

	u, err := s.Storage.GetUserByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, invalid
	}
	if u.BlockActive(s.Now()) {
		return nil, restricted(u)
	}

	token, exp, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.Storage.GetUserByID(ctx, userID)
}

// Authenticate resolves a bearer token to its claims and refuses banned users.
func (s *Service) Authenticate(ctx context.Context, token string) (Claims, error) {
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return Claims{}, err
	}
	banned, err := s.IsBanned(ctx, claims.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return Claims{}, fmt.Errorf("%w: account no longer exists", apperr.ErrUnauthorized)
	}
	if err != nil {
		return Claims{}, err
	}
	if banned {
		return Claims{}, fmt.Errorf("%w: account is restricted", apperr.ErrForbidden)
	}
	return claims, nil
}

// IsBanned decides from the user row and keeps the Redis ban mirror in
// step with it. A marker left behind by an unban that could not reach
// Redis is dropped here instead of locking the user out until it expires.
func (s *Service) IsBanned(ctx context.Context, userID string) (bool, error) {
	marked, err := s.Storage.IsUserBanned(ctx, userID)
	if err != nil {
		s.Log.Warn("ban marker lookup failed", zap.String("user_id", userID), zap.Error(err))
	}

	u, err := s.Storage.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	now := s.Now()
	active := u.BlockActive(now)
	switch {
	case active && !marked:
		if err := s.Storage.SetBanMarker(ctx, userID, banTTL(u, now)); err != nil {
			s.Log.Warn("failed to mirror ban to redis", zap.String("user_id", userID), zap.Error(err))
		}
	case !active && marked:
		if err := s.Storage.ClearBanMarker(ctx, userID); err != nil {
			s.Log.Warn("failed to clear stale ban marker", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return active, nil
}

// Ban blocks a user for hours; hours <= 0 blocks permanently.
func (s *Service) Ban(ctx context.Context, userID string, hours int) (*models.User, error) {
	u, err := s.Storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	u.IsBlocked = true
	u.BlockEndTime = 0
	if hours > 0 {
		u.BlockEndTime = now.Add(time.Duration(hours) * time.Hour).Unix()
	}
	u.LastBanDate = now.Unix()
	if err := s.Storage.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	if err := s.Storage.SetBanMarker(ctx, userID, banTTL(u, now)); err != nil {
		s.Log.Warn("failed to mirror ban to redis", zap.String("user_id", userID), zap.Error(err))
	}
	metrics.RecordBan("admin")
	s.Log.Info("user banned by admin", zap.String("user_id", userID), zap.Int("hours", hours))

	if s.Notifier != nil {
		if _, err := s.Notifier.Notify(ctx, userID, models.NotificationAccountRestricted,
			map[string]string{"until": untilText(u)}, nil); err != nil {
			s.Log.Warn("notification failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return u, nil
}

func (s *Service) Unban(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.IsBlocked = false
	u.BlockEndTime = 0
	if err := s.Storage.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	if err := s.Storage.ClearBanMarker(ctx, userID); err != nil {
		s.Log.Warn("failed to clear ban marker", zap.String("user_id", userID), zap.Error(err))
	}
	s.Log.Info("user unbanned", zap.String("user_id", userID))
	return u, nil
}

// Promote grants the admin role.
func (s *Service) Promote(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.IsAdmin() {
		return u, nil
	}
	u.Role = models.RoleAdmin
	if err := s.Storage.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// banTTL is the remaining ban time; 0 means permanent.
func banTTL(u *models.User, now time.Time) time.Duration {
	if u.BlockEndTime == 0 {
		return 0
	}
	return time.Unix(u.BlockEndTime, 0).Sub(now)
}

func untilText(u *models.User) string {
	if u.BlockEndTime == 0 {
		return "further notice"
	}
	return time.Unix(u.BlockEndTime, 0).UTC().Format(time.RFC1123)
}

func restricted(u *models.User) error {
	if u.BlockEndTime == 0 {
		return fmt.Errorf("%w: account is restricted", apperr.ErrForbidden)
	}
	return fmt.Errorf("%w: account is restricted until %s", apperr.ErrForbidden, untilText(u))
}
