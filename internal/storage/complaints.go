package storage

import (
	"context"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"
	"time"

	"gorm.io/gorm/clause"
)

// ComplaintFilter narrows complaint listings. Zero values are ignored.
type ComplaintFilter struct {
	Status        models.ComplaintStatus
	ComplainantID string
	TargetType    string
}

func (s *Service) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	return s.DB.WithContext(ctx).Create(c).Error
}

func (s *Service) GetComplaintByID(ctx context.Context, id string) (*models.Complaint, error) {
	var c models.Complaint
	if err := s.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "complaint")
	}
	return &c, nil
}

func (s *Service) GetComplaintForUpdate(ctx context.Context, id string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "complaint")
	}
	return &c, nil
}

func (s *Service) GetComplaintView(ctx context.Context, id string) (*models.ComplaintView, error) {
	c, err := s.GetComplaintByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.complaintViews(ctx, []models.Complaint{*c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) UpdateComplaint(ctx context.Context, c *models.Complaint) error {
	return s.DB.WithContext(ctx).Model(c).Select("status", "resolution", "admin_notes", "updated_at").Updates(c).Error
}

// ListComplaints returns one page ordered newest first, with complainant
// and target attached.
func (s *Service) ListComplaints(ctx context.Context, f ComplaintFilter, page pagination.Page) (pagination.Result[models.ComplaintView], error) {
	q := s.DB.WithContext(ctx).Model(&models.Complaint{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ComplainantID != "" {
		q = q.Where("complainant_id = ?", f.ComplainantID)
	}
	if f.TargetType != "" {
		q = q.Where("target_type = ?", f.TargetType)
	}

	rows, err := paginate[models.Complaint](q, page, "created_at DESC, id DESC")
	if err != nil {
		return pagination.Result[models.ComplaintView]{}, err
	}
	views, err := s.complaintViews(ctx, rows.Items)
	if err != nil {
		return pagination.Result[models.ComplaintView]{}, err
	}
	return pagination.Result[models.ComplaintView]{Items: views, Total: rows.Total}, nil
}

func (s *Service) CountComplaintsAgainst(ctx context.Context, targetID string, since time.Time) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Complaint{}).
		Where("target_id = ? AND created_at >= ?", targetID, since).
		Count(&n).Error
	return n, err
}

// complaintViews batch-loads the users and properties referenced by rows.
func (s *Service) complaintViews(ctx context.Context, rows []models.Complaint) ([]models.ComplaintView, error) {
	userIDs := make([]string, 0, len(rows)*2)
	propertyIDs := make([]string, 0, len(rows))
	for _, c := range rows {
		userIDs = append(userIDs, c.ComplainantID)
		if c.TargetType == models.TargetProperty {
			propertyIDs = append(propertyIDs, c.TargetID)
		} else {
			userIDs = append(userIDs, c.TargetID)
		}
	}

	users, err := s.GetUserSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	props, err := s.GetPropertySummaries(ctx, propertyIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.ComplaintView, len(rows))
	for i, c := range rows {
		v := models.ComplaintView{Complaint: c}
		if u, ok := users[c.ComplainantID]; ok {
			v.Complainant = &u
		}
		if c.TargetType == models.TargetProperty {
			if p, ok := props[c.TargetID]; ok {
				v.TargetProperty = &p
			}
		} else if u, ok := users[c.TargetID]; ok {
			v.TargetUser = &u
		}
		views[i] = v
	}
	return views, nil
}
