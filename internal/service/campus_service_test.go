package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/repository"
)

func newCampusService(t *testing.T) (CampusService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewCampusService(
		repository.NewCampusRepository(db),
		repository.NewCampusRequestRepository(db),
		repository.NewAccountRepository(db),
		newTestValidator(),
		NewAuditService(repository.NewActionLogRepository(db), zerolog.Nop()),
		zerolog.Nop(),
	)
	return svc, db
}

func TestCreateCampusRejectsCaseInsensitiveDuplicate(t *testing.T) {
	svc, _ := newCampusService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, adminIdentity(), dto.CampusCreateRequest{Name: "State University"})
	require.NoError(t, err)
	require.Equal(t, models.CampusStatusActive, created.Status)

	_, err = svc.Create(ctx, adminIdentity(), dto.CampusCreateRequest{Name: "STATE UNIVERSITY"})
	require.ErrorIs(t, err, ErrCampusNameTaken)
}

func TestApproveEquivalentRequestsYieldsOneCampus(t *testing.T) {
	svc, db := newCampusService(t)
	ctx := context.Background()

	first, err := svc.SubmitRequest(ctx, dto.CampusRequestSubmission{
		CampusName:   "State University",
		ContactEmail: "dean@stateu.edu",
	})
	require.NoError(t, err)

	second, err := svc.SubmitRequest(ctx, dto.CampusRequestSubmission{
		CampusName:   "state university",
		ContactEmail: "registrar@stateu.edu",
	})
	require.NoError(t, err)

	campusA, err := svc.ApproveRequest(ctx, adminIdentity(), first.ID, dto.CampusRequestReview{})
	require.NoError(t, err)
	require.Equal(t, models.CampusStatusActive, campusA.Status)

	campusB, err := svc.ApproveRequest(ctx, adminIdentity(), second.ID, dto.CampusRequestReview{})
	require.NoError(t, err)
	require.Equal(t, campusA.ID, campusB.ID)

	// Display casing of the first registration wins.
	require.Equal(t, "State University", campusB.Name)

	var count int64
	require.NoError(t, db.Model(&models.Campus{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestApproveResolvedRequestConflicts(t *testing.T) {
	svc, _ := newCampusService(t)
	ctx := context.Background()

	request, err := svc.SubmitRequest(ctx, dto.CampusRequestSubmission{
		CampusName:   "State University",
		ContactEmail: "dean@stateu.edu",
	})
	require.NoError(t, err)

	_, err = svc.ApproveRequest(ctx, adminIdentity(), request.ID, dto.CampusRequestReview{})
	require.NoError(t, err)

	_, err = svc.ApproveRequest(ctx, adminIdentity(), request.ID, dto.CampusRequestReview{})
	require.ErrorIs(t, err, ErrRequestResolved)

	_, err = svc.RejectRequest(ctx, adminIdentity(), request.ID, dto.CampusRequestReview{})
	require.ErrorIs(t, err, ErrRequestResolved)
}

func TestRejectRequestLeavesCampusesUntouched(t *testing.T) {
	svc, db := newCampusService(t)
	ctx := context.Background()

	request, err := svc.SubmitRequest(ctx, dto.CampusRequestSubmission{
		CampusName:   "State University",
		ContactEmail: "dean@stateu.edu",
	})
	require.NoError(t, err)

	rejected, err := svc.RejectRequest(ctx, adminIdentity(), request.ID, dto.CampusRequestReview{AdminNote: "unverifiable"})
	require.NoError(t, err)
	require.Equal(t, models.CampusRequestRejected, rejected.Status)
	require.Equal(t, "unverifiable", rejected.AdminNote)

	var count int64
	require.NoError(t, db.Model(&models.Campus{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDeleteCampusBlockedWhileReferenced(t *testing.T) {
	svc, db := newCampusService(t)
	ctx := context.Background()

	campus, err := svc.Create(ctx, adminIdentity(), dto.CampusCreateRequest{Name: "State University"})
	require.NoError(t, err)

	seedAccount(t, db, models.Account{
		Name:   "Jane Doe",
		Email:  "jane@example.edu",
		Role:   models.RoleStudent,
		Status: models.AccountStatusActive,
		Campus: "State University",
	})

	err = svc.Delete(ctx, adminIdentity(), campus.ID)
	require.ErrorIs(t, err, ErrCampusInUse)

	require.NoError(t, db.Where("email = ?", "jane@example.edu").Delete(&models.Account{}).Error)
	require.NoError(t, svc.Delete(ctx, adminIdentity(), campus.ID))

	_, err = svc.Get(ctx, campus.ID)
	require.ErrorIs(t, err, ErrCampusNotFound)
}
