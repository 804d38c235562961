package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/models"
)

// ApplicationRepository provides access to application records.
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id uint) (models.Application, error)
	ListByOpportunity(ctx context.Context, opportunityID uint) ([]models.Application, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uint, status string) (models.Application, error)
	CountByStatusForCampus(ctx context.Context, campus string) (map[string]int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository constructs an application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts a new application. The composite unique index on
// (opportunity_id, student_id) makes the second of two racing inserts fail
// with ErrDuplicateKey.
func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		return translateDuplicate(err)
	}

	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uint) (models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).First(&application, id).Error; err != nil {
		return models.Application{}, err
	}

	return application, nil
}

func (r *applicationRepository) ListByOpportunity(ctx context.Context, opportunityID uint) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *applicationRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, status string) (models.Application, error) {
	tx := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return models.Application{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Application{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

// CountByStatusForCampus aggregates application counts for one campus
// partition by joining through the parent opportunity.
func (r *applicationRepository) CountByStatusForCampus(ctx context.Context, campus string) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}

	query := r.db.WithContext(ctx).Model(&models.Application{}).
		Select("applications.status, COUNT(*) AS total").
		Joins("JOIN opportunities ON opportunities.id = applications.opportunity_id").
		Group("applications.status")
	if campus != "" {
		query = query.Where("opportunities.campus = ?", campus)
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
