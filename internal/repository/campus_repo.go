package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/models"
)

// CampusRepository provides access to campus records.
type CampusRepository interface {
	Create(ctx context.Context, campus *models.Campus) error
	GetByID(ctx context.Context, id uint) (models.Campus, error)
	GetByName(ctx context.Context, name string) (models.Campus, error)
	List(ctx context.Context, status string) ([]models.Campus, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Campus, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type campusRepository struct {
	db *gorm.DB
}

// NewCampusRepository constructs a campus repository.
func NewCampusRepository(db *gorm.DB) CampusRepository {
	return &campusRepository{db: db}
}

func (r *campusRepository) Create(ctx context.Context, campus *models.Campus) error {
	campus.NameKey = strings.ToLower(strings.TrimSpace(campus.Name))
	if err := r.db.WithContext(ctx).Create(campus).Error; err != nil {
		return translateDuplicate(err)
	}

	return nil
}

func (r *campusRepository) GetByID(ctx context.Context, id uint) (models.Campus, error) {
	var campus models.Campus
	if err := r.db.WithContext(ctx).First(&campus, id).Error; err != nil {
		return models.Campus{}, err
	}

	return campus, nil
}

// GetByName resolves a campus case-insensitively via the NameKey column.
func (r *campusRepository) GetByName(ctx context.Context, name string) (models.Campus, error) {
	var campus models.Campus
	err := r.db.WithContext(ctx).
		Where("name_key = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&campus).Error
	if err != nil {
		return models.Campus{}, err
	}

	return campus, nil
}

func (r *campusRepository) List(ctx context.Context, status string) ([]models.Campus, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var campuses []models.Campus
	if err := query.Find(&campuses).Error; err != nil {
		return nil, err
	}

	return campuses, nil
}

func (r *campusRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Campus, error) {
	if name, ok := updates["name"].(string); ok {
		updates["name_key"] = strings.ToLower(strings.TrimSpace(name))
	}

	tx := r.db.WithContext(ctx).Model(&models.Campus{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Campus{}, translateDuplicate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return models.Campus{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *campusRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Campus{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *campusRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Campus{}).Count(&total).Error

	return total, err
}
