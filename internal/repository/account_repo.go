package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/models"
)

// AccountFilter defines filters for listing accounts. Campus restricts the
// result to a single partition; an empty Campus means unrestricted and is
// only reachable for admin callers.
type AccountFilter struct {
	Campus   string
	Role     string
	Status   string
	Search   string
	Page     int
	PageSize int
}

// AccountRepository provides access to account records.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (models.Account, error)
	GetScoped(ctx context.Context, id uint, campus string, roles ...string) (models.Account, error)
	GetByEmail(ctx context.Context, email string) (models.Account, error)
	FindByEmailOrName(ctx context.Context, lookup string) ([]models.Account, error)
	List(ctx context.Context, filter AccountFilter) ([]models.Account, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Account, error)
	Delete(ctx context.Context, id uint) error
	CountByCampus(ctx context.Context, campus string) (int64, error)
	CountByStatus(ctx context.Context, campus string) (map[string]int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository constructs an account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return translateDuplicate(err)
	}

	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// GetScoped fetches an account by id restricted to the given campus
// partition and, optionally, a role set. Records outside the partition are
// indistinguishable from missing records.
func (r *accountRepository) GetScoped(ctx context.Context, id uint, campus string, roles ...string) (models.Account, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if campus != "" {
		query = query.Where("campus = ?", campus)
	}
	if len(roles) > 0 {
		query = query.Where("role IN ?", roles)
	}

	var account models.Account
	if err := query.First(&account).Error; err != nil {
		return models.Account{}, err
	}

	return account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&account).Error
	if err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// FindByEmailOrName resolves moderation targets by case-insensitive exact
// match on email or display name. Callers decide what multiple matches mean.
func (r *accountRepository) FindByEmailOrName(ctx context.Context, lookup string) ([]models.Account, error) {
	normalized := strings.ToLower(strings.TrimSpace(lookup))

	var accounts []models.Account
	err := r.db.WithContext(ctx).
		Where("email = ? OR LOWER(name) = ?", normalized, normalized).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *accountRepository) List(ctx context.Context, filter AccountFilter) ([]models.Account, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Account{})

	if filter.Campus != "" {
		query = query.Where("campus = ?", filter.Campus)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR email LIKE ?", like, like)
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

	var accounts []models.Account
	if err := query.Find(&accounts).Error; err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

func (r *accountRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Account, error) {
	tx := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return models.Account{}, translateDuplicate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return models.Account{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Account{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *accountRepository) CountByCampus(ctx context.Context, campus string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("campus = ?", campus).
		Count(&total).Error

	return total, err
}

func (r *accountRepository) CountByStatus(ctx context.Context, campus string) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}

	query := r.db.WithContext(ctx).Model(&models.Account{}).
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
