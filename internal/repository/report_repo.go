package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/models"
)

// ReportFilter defines filters for listing moderation reports.
type ReportFilter struct {
	Status   string
	Type     string
	Severity string
	Page     int
	PageSize int
}

// ReportRepository provides access to moderation reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uint) (models.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]models.Report, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Report, error)
	CountOpen(ctx context.Context) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs a report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return models.Report{}, err
	}

	return report, nil
}

func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]models.Report, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Report{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
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

	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *reportRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Report, error) {
	tx := r.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Report{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.Report{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *reportRepository) CountOpen(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("status IN ?", []string{models.ReportStatusPending, models.ReportStatusInvestigating}).
		Count(&total).Error

	return total, err
}
