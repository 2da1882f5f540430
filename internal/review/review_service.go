// Package review stores guest ratings of properties.
package review

import (
	"context"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"
	"estatehub/backend/internal/storage"
	"fmt"
	"strings"
)

type Service struct {
	Storage storage.Storage
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Page is one page of reviews plus the property's overall rating.
type Page struct {
	pagination.Result[models.Review]
	Rating storage.RatingSummary
}

// Create adds the reviewer's single review of a property.
func (s *Service) Create(ctx context.Context, reviewerID, propertyID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", apperr.ErrInvalidInput)
	}
	p, err := s.Storage.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID == reviewerID {
		return nil, fmt.Errorf("%w: you cannot review your own property", apperr.ErrInvalidInput)
	}
	r := &models.Review{
		PropertyID: propertyID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}
	if err := s.Storage.CreateReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListForProperty(ctx context.Context, propertyID string, page pagination.Page) (*Page, error) {
	if _, err := s.Storage.GetPropertyByID(ctx, propertyID); err != nil {
		return nil, err
	}
	res, err := s.Storage.ListReviews(ctx, propertyID, page)
	if err != nil {
		return nil, err
	}
	sum, err := s.Storage.GetRatingSummary(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return &Page{Result: res, Rating: sum}, nil
}
