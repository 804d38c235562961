package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/models"
)

// OpportunityFilter defines filters for listing opportunities. Campus
// restricts the result to one partition; empty means unrestricted (admin).
type OpportunityFilter struct {
	Campus   string
	Status   string
	Type     string
	Search   string
	Page     int
	PageSize int
}

// OpportunityRepository provides access to opportunity records.
type OpportunityRepository interface {
	Create(ctx context.Context, opportunity *models.Opportunity) error
	GetScoped(ctx context.Context, id uint, campus string) (models.Opportunity, error)
	List(ctx context.Context, filter OpportunityFilter) ([]models.Opportunity, int64, error)
	Update(ctx context.Context, id uint, campus string, updates map[string]interface{}) (models.Opportunity, error)
	DeleteWithApplications(ctx context.Context, id uint, campus string) error
	Count(ctx context.Context, campus string) (int64, error)
	CountByStatus(ctx context.Context, campus string) (map[string]int64, error)
}

type opportunityRepository struct {
	db *gorm.DB
}

// NewOpportunityRepository constructs an opportunity repository.
func NewOpportunityRepository(db *gorm.DB) OpportunityRepository {
	return &opportunityRepository{db: db}
}

func (r *opportunityRepository) Create(ctx context.Context, opportunity *models.Opportunity) error {
	return r.db.WithContext(ctx).Create(opportunity).Error
}

func (r *opportunityRepository) GetScoped(ctx context.Context, id uint, campus string) (models.Opportunity, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if campus != "" {
		query = query.Where("campus = ?", campus)
	}

	var opportunity models.Opportunity
	if err := query.First(&opportunity).Error; err != nil {
		return models.Opportunity{}, err
	}

	return opportunity, nil
}

func (r *opportunityRepository) List(ctx context.Context, filter OpportunityFilter) ([]models.Opportunity, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Opportunity{})

	if filter.Campus != "" {
		query = query.Where("campus = ?", filter.Campus)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(company) LIKE ?", like, like)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var opportunities []models.Opportunity
	if err := query.Find(&opportunities).Error; err != nil {
		return nil, 0, err
	}

	return opportunities, total, nil
}

func (r *opportunityRepository) Update(ctx context.Context, id uint, campus string, updates map[string]interface{}) (models.Opportunity, error) {
	tx := r.db.WithContext(ctx).Model(&models.Opportunity{}).Where("id = ?", id)
	if campus != "" {
		tx = tx.Where("campus = ?", campus)
	}

	tx = tx.Updates(updates)
	if tx.Error != nil {
		return models.Opportunity{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Opportunity{}, gorm.ErrRecordNotFound
	}

	return r.GetScoped(ctx, id, campus)
}

// DeleteWithApplications removes an opportunity and every application
// against it in one transaction, so a failure leaves no orphans.
func (r *opportunityRepository) DeleteWithApplications(ctx context.Context, id uint, campus string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("id = ?", id)
		if campus != "" {
			query = query.Where("campus = ?", campus)
		}

		var opportunity models.Opportunity
		if err := query.First(&opportunity).Error; err != nil {
			return err
		}

		if err := tx.Where("opportunity_id = ?", opportunity.ID).Delete(&models.Application{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Opportunity{}, opportunity.ID).Error
	})
}

func (r *opportunityRepository) Count(ctx context.Context, campus string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Opportunity{})
	if campus != "" {
		query = query.Where("campus = ?", campus)
	}

	var total int64
	err := query.Count(&total).Error

	return total, err
}

func (r *opportunityRepository) CountByStatus(ctx context.Context, campus string) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}

	query := r.db.WithContext(ctx).Model(&models.Opportunity{}).
		Select("status, COUNT(*) AS total").
		Group("status")
	if campus != "" {
		query = query.Where("campus = ?", campus)
	}

	var rows []row
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}

	return counts, nil
}
