package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/repository"
)

func newDashboardService(t *testing.T) (DashboardService, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()
	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	db := setupTestDB(t)
	svc := NewDashboardService(
		repository.NewAccountRepository(db),
		repository.NewCampusRepository(db),
		repository.NewOpportunityRepository(db),
		repository.NewApplicationRepository(db),
		repository.NewReportRepository(db),
		redis.NewClient(&redis.Options{Addr: mini.Addr()}),
		time.Minute,
		zerolog.Nop(),
	)
	return svc, db, mini
}

func TestCampusSummaryAggregatesAndCaches(t *testing.T) {
	svc, db, _ := newDashboardService(t)
	ctx := context.Background()

	seedAccount(t, db, models.Account{Name: "A", Email: "a@example.edu", Role: models.RoleStudent, Status: models.AccountStatusActive, Campus: "State University"})
	seedAccount(t, db, models.Account{Name: "B", Email: "b@example.edu", Role: models.RoleStudent, Status: models.AccountStatusPending, Campus: "State University"})
	seedAccount(t, db, models.Account{Name: "C", Email: "c@example.edu", Role: models.RoleStudent, Status: models.AccountStatusActive, Campus: "Other College"})

	opportunity := models.Opportunity{Campus: "State University", Company: "Acme Corp", Title: "Backend Intern", Status: models.OpportunityStatusActive, PostedBy: 2}
	require.NoError(t, db.Create(&opportunity).Error)
	require.NoError(t, db.Create(&models.Application{OpportunityID: opportunity.ID, StudentID: 1, Status: models.ApplicationStatusPending}).Error)

	actor := authorityIdentity("State University")

	first, err := svc.CampusSummary(ctx, actor)
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Equal(t, "State University", first.Campus)
	require.Equal(t, int64(1), first.StudentsByStatus[models.AccountStatusActive])
	require.Equal(t, int64(1), first.StudentsByStatus[models.AccountStatusPending])
	require.Equal(t, int64(1), first.OpportunitiesByStatus[models.OpportunityStatusActive])
	require.Equal(t, int64(1), first.ApplicationsByStatus[models.ApplicationStatusPending])

	second, err := svc.CampusSummary(ctx, actor)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.StudentsByStatus, second.StudentsByStatus)
}

func TestAdminSummaryCountsPlatformWide(t *testing.T) {
	svc, db, mini := newDashboardService(t)
	ctx := context.Background()

	seedAccount(t, db, models.Account{Name: "A", Email: "a@example.edu", Role: models.RoleStudent, Status: models.AccountStatusActive, Campus: "State University"})
	seedAccount(t, db, models.Account{Name: "B", Email: "b@example.edu", Role: models.RoleStudent, Status: models.AccountStatusSuspended, Campus: "Other College"})
	require.NoError(t, db.Create(&models.Campus{Name: "State University", NameKey: "state university", Status: models.CampusStatusActive}).Error)
	require.NoError(t, db.Create(&models.Report{Type: models.ReportTypeGig, Severity: models.ReportSeverityLow, Status: models.ReportStatusPending, Subject: "s", ReporterID: 1}).Error)

	summary, err := svc.AdminSummary(ctx)
	require.NoError(t, err)
	require.False(t, summary.CacheHit)
	require.Equal(t, int64(1), summary.AccountsByStatus[models.AccountStatusActive])
	require.Equal(t, int64(1), summary.AccountsByStatus[models.AccountStatusSuspended])
	require.Equal(t, int64(1), summary.CampusCount)
	require.Equal(t, int64(1), summary.OpenReportCount)

	// Expiring the cache forces a recount.
	mini.FastForward(2 * time.Minute)
	again, err := svc.AdminSummary(ctx)
	require.NoError(t, err)
	require.False(t, again.CacheHit)
}
