// Package appeal lets property owners contest complaints and lets admins decide them.
package appeal

import (
	"context"
	"errors"
	"estatehub/backend/internal/apperr"
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

// Property actions reported by ResolveAppeal.
const (
	PropertyReinstated = "reinstated"
	PropertyUnchanged  = "unchanged"
)

type Service struct {
	Storage  storage.Storage
	Notifier notification.Notifier
	Alerter  notification.Alerter
	Log      *zap.Logger
	Now      func() time.Time
}

func NewService(s storage.Storage, n notification.Notifier, a notification.Alerter, log *zap.Logger) *Service {
	if a == nil {
		a = notification.NopAlerter{}
	}
	return &Service{Storage: s, Notifier: n, Alerter: a, Log: log, Now: time.Now}
}

type CreateInput struct {
	ComplaintID    string
	PropertyID     string
	CallerID       string
	Message        string
	EvidencePhotos []string
}

// Resolution is the outcome of ResolveAppeal.
type Resolution struct {
	Appeal         *models.Appeal      `json:"appeal"`
	Decision       models.AppealStatus `json:"decision"`
	PropertyAction string              `json:"propertyAction"`
}

// CreateAppeal files the owner's appeal against an open complaint on their property.
func (s *Service) CreateAppeal(ctx context.Context, in CreateInput) (*models.Appeal, error) {
	in.Message = strings.TrimSpace(in.Message)
	switch {
	case in.ComplaintID == "" || in.PropertyID == "":
		return nil, fmt.Errorf("%w: complaintId and propertyId are required", apperr.ErrInvalidInput)
	case in.Message == "":
		return nil, fmt.Errorf("%w: message is required", apperr.ErrInvalidInput)
	}

	c, err := s.Storage.GetComplaintByID(ctx, in.ComplaintID)
	if err != nil {
		return nil, err
	}
	if c.TargetType != models.TargetProperty || c.TargetID != in.PropertyID {
		return nil, fmt.Errorf("%w: complaint does not concern this property", apperr.ErrInvalidInput)
	}
	p, err := s.Storage.GetPropertyByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != in.CallerID {
		return nil, fmt.Errorf("%w: only the property owner can appeal this complaint", apperr.ErrForbidden)
	}
	if c.Status != models.ComplaintOpen && c.Status != models.ComplaintInProgress {
		return nil, fmt.Errorf("%w: complaint is already %s", apperr.ErrConflict, c.Status)
	}

	// The unique index on complaint_id still guards concurrent submissions.
	if _, err := s.Storage.GetAppealByComplaintID(ctx, c.ID); err == nil {
		return nil, fmt.Errorf("%w: an appeal for this complaint already exists", apperr.ErrConflict)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	a := &models.Appeal{
		ComplaintID:     c.ID,
		PropertyID:      p.ID,
		PropertyOwnerID: p.OwnerID,
		ComplainantID:   c.ComplainantID,
		Message:         in.Message,
		EvidencePhotos:  models.CleanURLs(in.EvidencePhotos),
		Status:          models.AppealPending,
	}
	if err := s.Storage.CreateAppeal(ctx, a); err != nil {
		return nil, err
	}
	metrics.RecordAppealFiled()

	s.Alerter.AlertModerators(ctx, fmt.Sprintf("New appeal %s for \"%s\" against %s complaint %s\n%s",
		a.ID, p.Title, c.Type, c.ID, a.Message))
	return a, nil
}

// GetAllAppeals is the admin listing, optionally filtered by status.
func (s *Service) GetAllAppeals(ctx context.Context, page pagination.Page, status string) (pagination.Result[models.AppealView], error) {
	f := storage.AppealFilter{}
	if status != "" {
		st := models.AppealStatus(status)
		if !st.Valid() {
			return pagination.Result[models.AppealView]{}, fmt.Errorf("%w: invalid status %q", apperr.ErrInvalidInput, status)
		}
		f.Status = st
	}
	return s.Storage.ListAppeals(ctx, f, page)
}

// ListForUser lists appeals where userID is the owner or the complainant.
func (s *Service) ListForUser(ctx context.Context, userID string, page pagination.Page) (pagination.Result[models.AppealView], error) {
	return s.Storage.ListAppeals(ctx, storage.AppealFilter{ParticipantID: userID}, page)
}

// ListMyAppeals lists appeals filed by ownerID.
func (s *Service) ListMyAppeals(ctx context.Context, ownerID string, page pagination.Page) (pagination.Result[models.AppealView], error) {
	return s.Storage.ListAppeals(ctx, storage.AppealFilter{OwnerID: ownerID}, page)
}

// GetAppeal returns the appeal if viewerID is a party to it or an admin.
func (s *Service) GetAppeal(ctx context.Context, id, viewerID string, isAdmin bool) (*models.AppealView, error) {
	v, err := s.Storage.GetAppealView(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !v.InvolvesUser(viewerID) {
		return nil, fmt.Errorf("%w: you do not have access to this appeal", apperr.ErrForbidden)
	}
	return v, nil
}

// ResolveAppeal records the admin's decision and, on approval, reinstates the
// property. Both writes share one transaction with the appeal row locked, so
// concurrent resolutions serialize and the second one sees a decided appeal.
func (s *Service) ResolveAppeal(ctx context.Context, appealID, adminID, decision, adminResponse string) (*Resolution, error) {
	d := models.AppealStatus(decision)
	if d != models.AppealApproved && d != models.AppealRejected {
		return nil, fmt.Errorf("%w: decision must be %q or %q", apperr.ErrInvalidInput, models.AppealApproved, models.AppealRejected)
	}

	res := &Resolution{Decision: d, PropertyAction: PropertyUnchanged}
	var property *models.Property
	err := s.Storage.WithTx(ctx, func(tx storage.Storage) error {
		a, err := tx.GetAppealForUpdate(ctx, appealID)
		if err != nil {
			return err
		}
		if !a.Status.CanTransitionTo(d) {
			return fmt.Errorf("%w: appeal has already been %s", apperr.ErrInvalidTransition, a.Status)
		}

		now := s.Now()
		a.Status = d
		a.AdminResponse = strings.TrimSpace(adminResponse)
		a.ResolvedBy = &adminID
		a.ResolvedAt = &now
		if err := tx.UpdateAppeal(ctx, a); err != nil {
			return err
		}
		res.Appeal = a

		// A rejection leaves the listing alone, so it does not need the row.
		if d != models.AppealApproved {
			return nil
		}
		p, err := tx.GetPropertyForUpdate(ctx, a.PropertyID)
		if err != nil {
			return err
		}
		property = p
		if p.Status == models.PropertyActive {
			return nil
		}
		if !p.Status.CanTransitionTo(models.PropertyActive) {
			return fmt.Errorf("%w: property cannot move from %s to %s", apperr.ErrInvalidTransition, p.Status, models.PropertyActive)
		}
		p.Status = models.PropertyActive
		p.StatusReason = "appeal approved"
		if err := tx.UpdateProperty(ctx, p); err != nil {
			return err
		}
		res.PropertyAction = PropertyReinstated
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordAppealResolved(string(d), res.PropertyAction)

	var title string
	if property != nil {
		title = property.Title
	} else if p, err := s.Storage.GetPropertyByID(ctx, res.Appeal.PropertyID); err == nil {
		title = p.Title
	}
	vars := map[string]string{
		"decision": string(d),
		"property": title,
		"response": res.Appeal.AdminResponse,
	}
	data := map[string]string{
		"appealId":       res.Appeal.ID,
		"propertyId":     res.Appeal.PropertyID,
		"propertyAction": res.PropertyAction,
	}
	s.notify(ctx, res.Appeal.PropertyOwnerID, vars, data)
	s.notify(ctx, res.Appeal.ComplainantID, vars, data)
	return res, nil
}

func (s *Service) notify(ctx context.Context, userID string, vars map[string]string, data any) {
	if s.Notifier == nil {
		return
	}
	if _, err := s.Notifier.Notify(ctx, userID, models.NotificationAppealResolved, vars, data); err != nil {
		s.Log.Warn("notification failed", zap.String("user_id", userID), zap.Error(err))
	}
}
