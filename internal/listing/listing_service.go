// Package listing manages property listings and their moderation status.
package listing

import (
	"context"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/notification"
	"estatehub/backend/internal/pagination"
	"estatehub/backend/internal/storage"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type Service struct {
	Storage  storage.Storage
	Notifier notification.Notifier
	Log      *zap.Logger
}

func NewService(s storage.Storage, n notification.Notifier, log *zap.Logger) *Service {
	return &Service{Storage: s, Notifier: n, Log: log}
}

// Details are the owner-editable fields of a listing.
type Details struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Location     string   `json:"location"`
	PropertyType string   `json:"propertyType"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Images       []string `json:"images"`
}

func (d *Details) validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Location = strings.TrimSpace(d.Location)
	switch {
	case d.Title == "":
		return fmt.Errorf("%w: title is required", apperr.ErrInvalidInput)
	case d.Price <= 0:
		return fmt.Errorf("%w: price must be positive", apperr.ErrInvalidInput)
	case d.Bedrooms < 0 || d.Bathrooms < 0:
		return fmt.Errorf("%w: room counts cannot be negative", apperr.ErrInvalidInput)
	}
	return nil
}

func (d *Details) apply(p *models.Property) {
	p.Title = d.Title
	p.Description = strings.TrimSpace(d.Description)
	p.Price = d.Price
	p.Location = d.Location
	p.PropertyType = d.PropertyType
	p.Bedrooms = d.Bedrooms
	p.Bathrooms = d.Bathrooms
	p.Images = models.CleanURLs(d.Images)
}

// Search narrows the public catalogue.
type Search struct {
	Location string
	MinPrice float64
	MaxPrice float64
}

// Create publishes a listing awaiting verification.
func (s *Service) Create(ctx context.Context, ownerID string, d Details) (*models.Property, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	p := &models.Property{OwnerID: ownerID, Status: models.PropertyPendingVerification}
	d.apply(p)
	if err := s.Storage.CreateProperty(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Property, error) {
	return s.Storage.GetPropertyByID(ctx, id)
}

// ListActive is the public catalogue: only Active listings are visible.
func (s *Service) ListActive(ctx context.Context, q Search, page pagination.Page) (pagination.Result[models.Property], error) {
	if q.MinPrice < 0 || q.MaxPrice < 0 || (q.MaxPrice > 0 && q.MinPrice > q.MaxPrice) {
		return pagination.Result[models.Property]{}, fmt.Errorf("%w: invalid price range", apperr.ErrInvalidInput)
	}
	return s.Storage.ListProperties(ctx, storage.PropertyFilter{
		Status:   models.PropertyActive,
		Location: strings.TrimSpace(q.Location),
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
	}, page)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string, page pagination.Page) (pagination.Result[models.Property], error) {
	return s.Storage.ListProperties(ctx, storage.PropertyFilter{OwnerID: ownerID}, page)
}

// ListByStatus is the admin review queue; an empty status lists everything.
func (s *Service) ListByStatus(ctx context.Context, status string, page pagination.Page) (pagination.Result[models.Property], error) {
	f := storage.PropertyFilter{}
	if status != "" {
		st := models.PropertyStatus(status)
		if !st.Valid() {
			return pagination.Result[models.Property]{}, fmt.Errorf("%w: invalid status %q", apperr.ErrInvalidInput, status)
		}
		f.Status = st
	}
	return s.Storage.ListProperties(ctx, f, page)
}

// Update replaces the details of a listing owned by callerID. Status is untouched.
// The row is locked so a concurrent moderation decision is never written back stale.
func (s *Service) Update(ctx context.Context, id, callerID string, d Details) (*models.Property, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	var updated *models.Property
	err := s.Storage.WithTx(ctx, func(tx storage.Storage) error {
		p, err := tx.GetPropertyForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p.OwnerID != callerID {
			return fmt.Errorf("%w: only the owner can edit this property", apperr.ErrForbidden)
		}
		d.apply(p)
		if err := tx.UpdateProperty(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus is the admin moderation decision on a listing.
func (s *Service) UpdateStatus(ctx context.Context, id, status, reason string) (*models.Property, error) {
	next := models.PropertyStatus(status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", apperr.ErrInvalidInput, status)
	}

	var updated *models.Property
	err := s.Storage.WithTx(ctx, func(tx storage.Storage) error {
		p, err := tx.GetPropertyForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !p.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: cannot move property from %s to %s", apperr.ErrInvalidTransition, p.Status, next)
		}
		p.Status = next
		p.StatusReason = strings.TrimSpace(reason)
		if err := tx.UpdateProperty(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		_, err := s.Notifier.Notify(ctx, updated.OwnerID, models.NotificationPropertyStatus,
			map[string]string{"property": updated.Title, "status": string(updated.Status), "reason": updated.StatusReason},
			map[string]string{"propertyId": updated.ID})
		if err != nil {
			s.Log.Warn("notification failed", zap.String("user_id", updated.OwnerID), zap.Error(err))
		}
	}
	return updated, nil
}

// Delete removes a listing permanently. It refuses while an appeal on the
// listing is still pending.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Storage.WithTx(ctx, func(tx storage.Storage) error {
		if _, err := tx.GetPropertyForUpdate(ctx, id); err != nil {
			return err
		}
		pending, err := tx.CountPendingAppeals(ctx, id)
		if err != nil {
			return err
		}
		if pending > 0 {
			return fmt.Errorf("%w: property has %d pending appeal(s); resolve them first", apperr.ErrConflict, pending)
		}
		return tx.DeleteProperty(ctx, id)
	})
}
