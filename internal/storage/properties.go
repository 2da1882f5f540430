package storage

import (
	"context"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PropertyFilter narrows property listings. Zero values are ignored.
type PropertyFilter struct {
	OwnerID  string
	Status   models.PropertyStatus
	Location string
	MinPrice float64
	MaxPrice float64
}

func (s *Service) CreateProperty(ctx context.Context, p *models.Property) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

func (s *Service) GetPropertyByID(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := s.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "property")
	}
	return &p, nil
}

// GetPropertyForUpdate locks the row until the surrounding transaction ends.
func (s *Service) GetPropertyForUpdate(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	err := s.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "property")
	}
	return &p, nil
}

func (s *Service) UpdateProperty(ctx context.Context, p *models.Property) error {
	return s.DB.WithContext(ctx).Save(p).Error
}

func (s *Service) DeleteProperty(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&models.Property{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "property")
	}
	return nil
}

func (s *Service) ListProperties(ctx context.Context, f PropertyFilter, page pagination.Page) (pagination.Result[models.Property], error) {
	q := s.DB.WithContext(ctx).Model(&models.Property{})
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Location != "" {
		q = q.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	return paginate[models.Property](q, page, "created_at DESC, id DESC")
}

func (s *Service) GetPropertySummaries(ctx context.Context, ids []string) (map[string]models.PropertySummary, error) {
	out := make(map[string]models.PropertySummary, len(ids))
	ids = uniqueNonEmpty(ids)
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.PropertySummary
	if err := s.DB.WithContext(ctx).Model(&models.Property{}).
		Select("id", "title", "location", "status").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}
