package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/models"
)

// CampusRequestRepository provides access to campus join requests.
type CampusRequestRepository interface {
	Create(ctx context.Context, request *models.CampusRequest) error
	GetByID(ctx context.Context, id uint) (models.CampusRequest, error)
	List(ctx context.Context, status string) ([]models.CampusRequest, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.CampusRequest, error)
	Approve(ctx context.Context, id uint, adminNote string) (models.Campus, error)
}

type campusRequestRepository struct {
	db *gorm.DB
}

// NewCampusRequestRepository constructs a campus request repository.
func NewCampusRequestRepository(db *gorm.DB) CampusRequestRepository {
	return &campusRequestRepository{db: db}
}

func (r *campusRequestRepository) Create(ctx context.Context, request *models.CampusRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *campusRequestRepository) GetByID(ctx context.Context, id uint) (models.CampusRequest, error) {
	var request models.CampusRequest
	if err := r.db.WithContext(ctx).First(&request, id).Error; err != nil {
		return models.CampusRequest{}, err
	}

	return request, nil
}

func (r *campusRequestRepository) List(ctx context.Context, status string) ([]models.CampusRequest, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.CampusRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

// Approve resolves a pending request inside a single transaction. An
// existing campus with a case-insensitively equal name is activated instead
// of duplicated; otherwise a new active campus is created from the request.
// Returns gorm.ErrRecordNotFound when no pending request matches the id.
func (r *campusRequestRepository) Approve(ctx context.Context, id uint, adminNote string) (models.Campus, error) {
	var campus models.Campus

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.CampusRequest
		if err := tx.First(&request, id).Error; err != nil {
			return err
		}

		update := tx.Model(&models.CampusRequest{}).
			Where("id = ?", id).
			Where("status = ?", models.CampusRequestPending).
			Updates(map[string]interface{}{
				"status":     models.CampusRequestApproved,
				"admin_note": adminNote,
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		nameKey := strings.ToLower(strings.TrimSpace(request.CampusName))
		err := tx.Where("name_key = ?", nameKey).First(&campus).Error
		switch {
		case err == nil:
			if err := tx.Model(&campus).Update("status", models.CampusStatusActive).Error; err != nil {
				return err
			}
			campus.Status = models.CampusStatusActive
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			campus = models.Campus{
				Name:       strings.TrimSpace(request.CampusName),
				NameKey:    nameKey,
				Domain:     requestDomain(request),
				AdminEmail: request.ContactEmail,
				Status:     models.CampusStatusActive,
			}
			return tx.Create(&campus).Error
		default:
			return err
		}
	})
	if err != nil {
		return models.Campus{}, err
	}

	return campus, nil
}

// requestDomain falls back to the contact email domain when the request
// omits one.
func requestDomain(request models.CampusRequest) string {
	if request.Domain != "" {
		return request.Domain
	}
	if at := strings.LastIndex(request.ContactEmail, "@"); at >= 0 {
		return request.ContactEmail[at+1:]
	}
	return ""
}

func (r *campusRequestRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.CampusRequest, error) {
	tx := r.db.WithContext(ctx).Model(&models.CampusRequest{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.CampusRequest{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.CampusRequest{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}
