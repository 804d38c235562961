package service

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Campus{},
		&models.CampusRequest{},
		&models.Opportunity{},
		&models.Application{},
		&models.Report{},
		&models.ActionLog{},
	))
	return db
}

func newTestValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func mustHash(t *testing.T, plaintext string) string {
	t.Helper()
	hash, err := HashSecret(plaintext)
	require.NoError(t, err)
	return hash
}

func seedAccount(t *testing.T, db *gorm.DB, account models.Account) models.Account {
	t.Helper()
	if account.PasswordHash == "" {
		account.PasswordHash = mustHash(t, "secret-pass")
	}
	require.NoError(t, db.Create(&account).Error)
	return account
}

func actionLogCount(t *testing.T, db *gorm.DB, logType string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.ActionLog{}).Where("type = ?", logType).Count(&count).Error)
	return count
}
