// Package complaint provides the core logic for handling user complaints,
// including reputation management and applying restrictions.
package complaint

import (
	"context"
	"estatehub/backend/internal/analysis"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/config"
	"estatehub/backend/internal/metrics"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/notification"
	"estatehub/backend/internal/pagination"
	"estatehub/backend/internal/storage"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Service handles the business logic for complaints.
type Service struct {
	Storage  storage.Storage
	Notifier notification.Notifier
	Alerter  notification.Alerter
	Log      *zap.Logger
	Now      func() time.Time
}

// NewService creates a new complaint service.
func NewService(s storage.Storage, n notification.Notifier, a notification.Alerter, log *zap.Logger) *Service {
	if a == nil {
		a = notification.NopAlerter{}
	}
	return &Service{Storage: s, Notifier: n, Alerter: a, Log: log, Now: time.Now}
}

// CreateInput is a complaint as submitted by a user.
type CreateInput struct {
	ComplainantID string
	TargetID      string
	TargetType    string
	Type          string
	Description   string
	Evidence      []string
}

// CreatePropertyComplaint files a complaint against a listing.
func (s *Service) CreatePropertyComplaint(ctx context.Context, complainantID, propertyID, complaintType, description string, evidence []string) (*models.Complaint, error) {
	return s.Create(ctx, CreateInput{
		ComplainantID: complainantID,
		TargetID:      propertyID,
		TargetType:    models.TargetProperty,
		Type:          complaintType,
		Description:   description,
		Evidence:      evidence,
	})
}

// Create validates the target and stores an open complaint weighted by its type.
// Nothing is inserted when the target does not exist.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Complaint, error) {
	in.Description = strings.TrimSpace(in.Description)
	switch {
	case in.TargetID == "":
		return nil, fmt.Errorf("%w: targetId is required", apperr.ErrInvalidInput)
	case !models.ValidComplaintType(in.Type):
		return nil, fmt.Errorf("%w: invalid complaint type %q", apperr.ErrInvalidInput, in.Type)
	case in.Description == "":
		return nil, fmt.Errorf("%w: description is required", apperr.ErrInvalidInput)
	}

	var property *models.Property
	switch in.TargetType {
	case models.TargetProperty:
		p, err := s.Storage.GetPropertyByID(ctx, in.TargetID)
		if err != nil {
			return nil, err
		}
		if p.OwnerID == in.ComplainantID {
			return nil, fmt.Errorf("%w: you cannot file a complaint against your own property", apperr.ErrInvalidInput)
		}
		property = p
	case models.TargetUser:
		if in.TargetID == in.ComplainantID {
			return nil, fmt.Errorf("%w: you cannot file a complaint against yourself", apperr.ErrInvalidInput)
		}
		if _, err := s.Storage.GetUserByID(ctx, in.TargetID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: targetType must be %q or %q", apperr.ErrInvalidInput, models.TargetUser, models.TargetProperty)
	}

	c := &models.Complaint{
		ComplainantID: in.ComplainantID,
		TargetID:      in.TargetID,
		TargetType:    in.TargetType,
		Type:          in.Type,
		Description:   in.Description,
		Evidence:      models.CleanURLs(in.Evidence),
		Status:        models.ComplaintOpen,
		Severity:      analysis.GetWeight(in.Type),
	}
	if err := s.Storage.CreateComplaint(ctx, c); err != nil {
		return nil, err
	}
	metrics.RecordComplaintFiled(c.TargetType, c.Type)

	if property != nil {
		s.notify(ctx, property.OwnerID, models.NotificationComplaintFiled,
			map[string]string{"type": c.Type, "property": property.Title},
			map[string]string{"complaintId": c.ID, "propertyId": property.ID})
	}
	s.Alerter.AlertModerators(ctx, fmt.Sprintf("New %s complaint (%s, severity %s) against %s %s\n%s",
		c.Type, c.ID, analysis.Severity(c.Severity), c.TargetType, c.TargetID, c.Description))
	return c, nil
}

// GetAll lists complaints newest first, optionally filtered by status.
func (s *Service) GetAll(ctx context.Context, page pagination.Page, status string) (pagination.Result[models.ComplaintView], error) {
	f := storage.ComplaintFilter{}
	if status != "" {
		st := models.ComplaintStatus(status)
		if !st.Valid() {
			return pagination.Result[models.ComplaintView]{}, fmt.Errorf("%w: invalid status %q", apperr.ErrInvalidInput, status)
		}
		f.Status = st
	}
	return s.Storage.ListComplaints(ctx, f, page)
}

func (s *Service) Get(ctx context.Context, id string) (*models.ComplaintView, error) {
	return s.Storage.GetComplaintView(ctx, id)
}

// ListMine lists complaints filed by complainantID.
func (s *Service) ListMine(ctx context.Context, complainantID string, page pagination.Page) (pagination.Result[models.ComplaintView], error) {
	return s.Storage.ListComplaints(ctx, storage.ComplaintFilter{ComplainantID: complainantID}, page)
}

// UpdateStatus moves a complaint along its transition table. The first time a
// complaint against a user is resolved, the user's reputation drops by the
// complaint's severity and the ban check runs.
func (s *Service) UpdateStatus(ctx context.Context, id, status, resolution, adminNotes string) (*models.Complaint, error) {
	next := models.ComplaintStatus(status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", apperr.ErrInvalidInput, status)
	}

	var (
		updated   *models.Complaint
		penalized bool
	)
	err := s.Storage.WithTx(ctx, func(tx storage.Storage) error {
		c, err := tx.GetComplaintForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !c.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: cannot move complaint from %s to %s", apperr.ErrInvalidTransition, c.Status, next)
		}

		firstResolve := next == models.ComplaintResolved && c.Status != models.ComplaintResolved
		c.Status = next
		if resolution = strings.TrimSpace(resolution); resolution != "" {
			c.Resolution = resolution
		}
		if adminNotes = strings.TrimSpace(adminNotes); adminNotes != "" {
			c.AdminNotes = adminNotes
		}
		if err := tx.UpdateComplaint(ctx, c); err != nil {
			return err
		}

		if firstResolve && c.TargetType == models.TargetUser && c.Severity > 0 {
			if err := tx.UpdateUserReputation(ctx, c.TargetID, -c.Severity); err != nil {
				return err
			}
			penalized = true
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordComplaintStatus(string(updated.Status))

	if penalized {
		if _, err := s.CheckForBan(ctx, updated.TargetID); err != nil {
			s.Log.Error("ban check failed", zap.String("user_id", updated.TargetID), zap.Error(err))
		}
	}
	s.notify(ctx, updated.ComplainantID, models.NotificationComplaintUpdated,
		map[string]string{"status": string(updated.Status), "resolution": updated.Resolution},
		map[string]string{"complaintId": updated.ID})
	return updated, nil
}

// CheckForBan checks if a user should be banned based on their reputation and complaint history.
// It reports whether a new ban was applied.
func (s *Service) CheckForBan(ctx context.Context, userID string) (bool, error) {
	user, err := s.Storage.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	now := s.Now()
	if user.BlockActive(now) {
		return false, nil
	}

	// Threshold Ban
	if user.ReputationScore < config.BanThresholdReputation {
		return true, s.applyBan(ctx, user, now)
	}

	// Frequency Ban
	count, err := s.Storage.CountComplaintsAgainst(ctx, userID, now.Add(-config.BanFrequencyWindow))
	if err != nil {
		return false, err
	}
	if count > config.BanThresholdFrequency {
		return true, s.applyBan(ctx, user, now)
	}

	return false, nil
}

// applyBan escalates the ban level when the previous ban is recent enough.
func (s *Service) applyBan(ctx context.Context, user *models.User, now time.Time) error {
	level := 1
	if user.LastBanDate > 0 && now.Sub(time.Unix(user.LastBanDate, 0)) < config.BanEscalationWindow {
		level = min(user.BlockLevel+1, 3)
	}

	duration := getBanDuration(level)
	until := now.Add(duration)
	user.IsBlocked = true
	user.BlockEndTime = until.Unix()
	user.BlockLevel = level
	user.LastBanDate = now.Unix()
	if err := s.Storage.UpdateUser(ctx, user); err != nil {
		return err
	}
	if err := s.Storage.SetBanMarker(ctx, user.ID, duration); err != nil {
		s.Log.Warn("failed to mirror ban to redis", zap.String("user_id", user.ID), zap.Error(err))
	}
	metrics.RecordBan("auto")

	s.Log.Info("user banned",
		zap.String("user_id", user.ID),
		zap.Int("level", level),
		zap.Int("reputation", user.ReputationScore),
		zap.Time("until", until))
	s.notify(ctx, user.ID, models.NotificationAccountRestricted,
		map[string]string{"until": until.UTC().Format(time.RFC1123)}, nil)
	s.Alerter.AlertModerators(ctx, fmt.Sprintf("User %s banned automatically (level %d) until %s",
		user.ID, level, until.UTC().Format(time.RFC1123)))
	return nil
}

func getBanDuration(level int) time.Duration {
	switch level {
	case 1:
		return config.BanLevel1Duration
	case 2:
		return config.BanLevel2Duration
	default:
		return config.BanLevel3Duration
	}
}

func (s *Service) notify(ctx context.Context, userID, kind string, vars map[string]string, data any) {
	if s.Notifier == nil {
		return
	}
	if _, err := s.Notifier.Notify(ctx, userID, kind, vars, data); err != nil {
		s.Log.Warn("notification failed", zap.String("user_id", userID), zap.String("type", kind), zap.Error(err))
	}
}
