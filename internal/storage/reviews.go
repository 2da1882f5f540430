package storage

import (
	"context"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"
)

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

func (s *Service) CreateReview(ctx context.Context, r *models.Review) error {
	return duplicate(s.DB.WithContext(ctx).Create(r).Error, "you have already reviewed this property")
}

func (s *Service) ListReviews(ctx context.Context, propertyID string, page pagination.Page) (pagination.Result[models.Review], error) {
	q := s.DB.WithContext(ctx).Model(&models.Review{}).Where("property_id = ?", propertyID)
	return paginate[models.Review](q, page, "created_at DESC, id DESC")
}

func (s *Service) GetRatingSummary(ctx context.Context, propertyID string) (RatingSummary, error) {
	var sum RatingSummary
	err := s.DB.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("property_id = ?", propertyID).
		Scan(&sum).Error
	return sum, err
}
