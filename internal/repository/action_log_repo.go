package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/models"
)

// ActionLogFilter defines filters for listing audit entries.
type ActionLogFilter struct {
	ActorID  *uint
	Type     string
	Page     int
	PageSize int
}

// ActionLogRepository persists audit entries. The log is append-only:
// no update or delete operation is exposed.
type ActionLogRepository interface {
	Create(ctx context.Context, entry *models.ActionLog) error
	List(ctx context.Context, filter ActionLogFilter) ([]models.ActionLog, int64, error)
}

type actionLogRepository struct {
	db *gorm.DB
}

// NewActionLogRepository constructs an action log repository.
func NewActionLogRepository(db *gorm.DB) ActionLogRepository {
	return &actionLogRepository{db: db}
}

func (r *actionLogRepository) Create(ctx context.Context, entry *models.ActionLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *actionLogRepository) List(ctx context.Context, filter ActionLogFilter) ([]models.ActionLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ActionLog{})

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
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

	var entries []models.ActionLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
