package storage

import (
	"context"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"

	"gorm.io/gorm/clause"
)

// AppealFilter narrows appeal listings. Zero values are ignored.
// ParticipantID matches appeals where the user is owner or complainant.
type AppealFilter struct {
	Status        models.AppealStatus
	OwnerID       string
	ParticipantID string
}

func (s *Service) CreateAppeal(ctx context.Context, a *models.Appeal) error {
	return duplicate(s.DB.WithContext(ctx).Create(a).Error, "an appeal for this complaint already exists")
}

func (s *Service) GetAppealByID(ctx context.Context, id string) (*models.Appeal, error) {
	var a models.Appeal
	if err := s.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "appeal")
	}
	return &a, nil
}

// GetAppealForUpdate locks the appeal row; concurrent resolutions queue behind it.
func (s *Service) GetAppealForUpdate(ctx context.Context, id string) (*models.Appeal, error) {
	var a models.Appeal
	err := s.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "appeal")
	}
	return &a, nil
}

// CountPendingAppeals counts undecided appeals that reference propertyID.
func (s *Service) CountPendingAppeals(ctx context.Context, propertyID string) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Appeal{}).
		Where("property_id = ? AND status = ?", propertyID, models.AppealPending).
		Count(&n).Error
	return n, err
}

func (s *Service) GetAppealByComplaintID(ctx context.Context, complaintID string) (*models.Appeal, error) {
	var a models.Appeal
	if err := s.DB.WithContext(ctx).First(&a, "complaint_id = ?", complaintID).Error; err != nil {
		return nil, notFound(err, "appeal")
	}
	return &a, nil
}

func (s *Service) GetAppealView(ctx context.Context, id string) (*models.AppealView, error) {
	a, err := s.GetAppealByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.appealViews(ctx, []models.Appeal{*a})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) UpdateAppeal(ctx context.Context, a *models.Appeal) error {
	return s.DB.WithContext(ctx).Model(a).
		Select("status", "admin_response", "resolved_by", "resolved_at", "updated_at").
		Updates(a).Error
}

func (s *Service) ListAppeals(ctx context.Context, f AppealFilter, page pagination.Page) (pagination.Result[models.AppealView], error) {
	q := s.DB.WithContext(ctx).Model(&models.Appeal{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OwnerID != "" {
		q = q.Where("property_owner_id = ?", f.OwnerID)
	}
	if f.ParticipantID != "" {
		q = q.Where("property_owner_id = ? OR complainant_id = ?", f.ParticipantID, f.ParticipantID)
	}

	rows, err := paginate[models.Appeal](q, page, "created_at DESC, id DESC")
	if err != nil {
		return pagination.Result[models.AppealView]{}, err
	}
	views, err := s.appealViews(ctx, rows.Items)
	if err != nil {
		return pagination.Result[models.AppealView]{}, err
	}
	return pagination.Result[models.AppealView]{Items: views, Total: rows.Total}, nil
}

func (s *Service) appealViews(ctx context.Context, rows []models.Appeal) ([]models.AppealView, error) {
	userIDs := make([]string, 0, len(rows)*2)
	propertyIDs := make([]string, 0, len(rows))
	complaintIDs := make([]string, 0, len(rows))
	for _, a := range rows {
		userIDs = append(userIDs, a.PropertyOwnerID, a.ComplainantID)
		propertyIDs = append(propertyIDs, a.PropertyID)
		complaintIDs = append(complaintIDs, a.ComplaintID)
	}

	users, err := s.GetUserSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	props, err := s.GetPropertySummaries(ctx, propertyIDs)
	if err != nil {
		return nil, err
	}

	complaints := make(map[string]models.Complaint, len(complaintIDs))
	if ids := uniqueNonEmpty(complaintIDs); len(ids) > 0 {
		var cs []models.Complaint
		if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&cs).Error; err != nil {
			return nil, err
		}
		for _, c := range cs {
			complaints[c.ID] = c
		}
	}

	views := make([]models.AppealView, len(rows))
	for i, a := range rows {
		v := models.AppealView{Appeal: a}
		if p, ok := props[a.PropertyID]; ok {
			v.Property = &p
		}
		if c, ok := complaints[a.ComplaintID]; ok {
			v.Complaint = &c
		}
		if u, ok := users[a.PropertyOwnerID]; ok {
			v.Owner = &u
		}
		if u, ok := users[a.ComplainantID]; ok {
			v.Complainant = &u
		}
		views[i] = v
	}
	return views, nil
}
