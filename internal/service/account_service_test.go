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

func newAccountService(t *testing.T) (AccountService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	accounts := repository.NewAccountRepository(db)
	audit := NewAuditService(repository.NewActionLogRepository(db), zerolog.Nop())
	svc := NewAccountService(accounts, newTestValidator(), audit, zerolog.Nop())
	return svc, db
}

func adminIdentity() Identity {
	return Identity{AccountID: 1, Role: models.RoleAdmin}
}

func authorityIdentity(campus string) Identity {
	return Identity{AccountID: 2, Role: models.RoleCampusAuthority, Campus: campus}
}

func TestApproveAdmitsPendingAccount(t *testing.T) {
	svc, db := newAccountService(t)
	ctx := context.Background()

	pending := seedAccount(t, db, models.Account{
		Name:   "Jane Doe",
		Email:  "jane@example.edu",
		Role:   models.RoleStudent,
		Status: models.AccountStatusPending,
		Campus: "State University",
	})

	approved, err := svc.Approve(ctx, adminIdentity(), pending.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccountStatusActive, approved.Status)
	require.True(t, approved.Verified)

	require.Equal(t, int64(1), actionLogCount(t, db, models.ActionTypeVerify))
}

func TestRejectRefusesAdmission(t *testing.T) {
	svc, db := newAccountService(t)

	pending := seedAccount(t, db, models.Account{
		Name:   "Jane Doe",
		Email:  "jane@example.edu",
		Role:   models.RoleStudent,
		Status: models.AccountStatusPending,
		Campus: "State University",
	})

	rejected, err := svc.Reject(context.Background(), adminIdentity(), pending.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccountStatusRejected, rejected.Status)
	require.False(t, rejected.Verified)
}

func TestSuspendTwiceConflicts(t *testing.T) {
	svc, db := newAccountService(t)
	ctx := context.Background()

	active := seedAccount(t, db, models.Account{
		Name:     "Jane Doe",
		Email:    "jane@example.edu",
		Role:     models.RoleStudent,
		Status:   models.AccountStatusActive,
		Verified: true,
		Campus:   "State University",
	})

	suspended, err := svc.Suspend(ctx, adminIdentity(), active.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccountStatusSuspended, suspended.Status)

	_, err = svc.Suspend(ctx, adminIdentity(), active.ID)
	require.ErrorIs(t, err, ErrAlreadyInState)

	restored, err := svc.Reactivate(ctx, adminIdentity(), active.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccountStatusActive, restored.Status)
}

func TestSuspensionRequiresAdmin(t *testing.T) {
	svc, db := newAccountService(t)
	ctx := context.Background()

	foreign := seedAccount(t, db, models.Account{
		Name:   "Far Student",
		Email:  "far@example.edu",
		Role:   models.RoleStudent,
		Status: models.AccountStatusActive,
		Campus: "Other College",
	})
	admin := seedAccount(t, db, models.Account{
		Name:   "Root Admin",
		Email:  "root@example.edu",
		Role:   models.RoleAdmin,
		Status: models.AccountStatusActive,
	})

	actor := authorityIdentity("State University")

	_, err := svc.Suspend(ctx, actor, foreign.ID)
	require.ErrorIs(t, err, ErrAdminOnly)

	_, err = svc.Suspend(ctx, actor, admin.ID)
	require.ErrorIs(t, err, ErrAdminOnly)

	_, err = svc.Reactivate(ctx, actor, foreign.ID)
	require.ErrorIs(t, err, ErrAdminOnly)

	require.ErrorIs(t, svc.Delete(ctx, actor, foreign.ID), ErrAdminOnly)

	var current models.Account
	require.NoError(t, db.First(&current, foreign.ID).Error)
	require.Equal(t, models.AccountStatusActive, current.Status)
}

func TestCampusAuthorityConfinedToOwnPartition(t *testing.T) {
	svc, db := newAccountService(t)
	ctx := context.Background()

	foreign := seedAccount(t, db, models.Account{
		Name:   "Far Student",
		Email:  "far@example.edu",
		Role:   models.RoleStudent,
		Status: models.AccountStatusPending,
		Campus: "Other College",
	})
	peer := seedAccount(t, db, models.Account{
		Name:   "Peer Authority",
		Email:  "peer@example.edu",
		Role:   models.RoleCampusAuthority,
		Status: models.AccountStatusActive,
		Campus: "State University",
	})
	local := seedAccount(t, db, models.Account{
		Name:   "Near Student",
		Email:  "near@example.edu",
		Role:   models.RoleStudent,
		Status: models.AccountStatusPending,
		Campus: "State University",
	})

	actor := authorityIdentity("State University")

	// A student in another campus looks like a missing record.
	_, err := svc.Approve(ctx, actor, foreign.ID)
	require.ErrorIs(t, err, ErrAccountNotFound)

	// Authorities cannot act on other authorities at all.
	_, err = svc.Approve(ctx, actor, peer.ID)
	require.ErrorIs(t, err, ErrAccountNotFound)

	approved, err := svc.Approve(ctx, actor, local.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccountStatusActive, approved.Status)
}

func TestListScopesNonAdminsToStudentsInCampus(t *testing.T) {
	svc, db := newAccountService(t)
	ctx := context.Background()

	seedAccount(t, db, models.Account{Name: "A", Email: "a@example.edu", Role: models.RoleStudent, Status: models.AccountStatusActive, Campus: "State University"})
	seedAccount(t, db, models.Account{Name: "B", Email: "b@example.edu", Role: models.RoleStudent, Status: models.AccountStatusActive, Campus: "Other College"})
	seedAccount(t, db, models.Account{Name: "C", Email: "c@example.edu", Role: models.RoleCampusAuthority, Status: models.AccountStatusActive, Campus: "State University"})

	// Requested filters cannot widen the partition.
	listed, err := svc.List(ctx, authorityIdentity("State University"), dto.AccountListRequest{Role: models.RoleCampusAuthority, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	require.Equal(t, "a@example.edu", listed.Items[0].Email)

	all, err := svc.List(ctx, adminIdentity(), dto.AccountListRequest{PageSize: 10})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
}

func TestSwitchModeRequiresRegistration(t *testing.T) {
	svc, db := newAccountService(t)
	ctx := context.Background()

	freelancer := seedAccount(t, db, models.Account{
		Name:            "Jane Doe",
		Email:           "jane@example.edu",
		Role:            models.RoleStudent,
		Status:          models.AccountStatusActive,
		Verified:        true,
		Campus:          "State University",
		RegisteredModes: models.ModeFreelancer,
		ActiveMode:      models.ModeFreelancer,
	})
	dual := seedAccount(t, db, models.Account{
		Name:            "Dual Doe",
		Email:           "dual@example.edu",
		Role:            models.RoleStudent,
		Status:          models.AccountStatusActive,
		Verified:        true,
		Campus:          "State University",
		RegisteredModes: models.ModeBoth,
		ActiveMode:      models.ModeFreelancer,
	})

	_, err := svc.SwitchMode(ctx, freelancer.ID, dto.SwitchModeRequest{Mode: models.ModeRecruiter})
	require.ErrorIs(t, err, ErrModeNotOpen)

	switched, err := svc.SwitchMode(ctx, dual.ID, dto.SwitchModeRequest{Mode: models.ModeRecruiter})
	require.NoError(t, err)
	require.Equal(t, models.ModeRecruiter, switched.ActiveMode)
}

func TestInviteStudentStampsInviterCampus(t *testing.T) {
	svc, _ := newAccountService(t)

	invited, err := svc.InviteStudent(context.Background(), authorityIdentity("State University"), dto.InviteStudentRequest{
		Name:     "New Student",
		Email:    "new@example.edu",
		Password: "super-secret",
	})
	require.NoError(t, err)
	require.Equal(t, "State University", invited.Campus)
	require.Equal(t, models.AccountStatusPending, invited.Status)
	require.Equal(t, models.RoleStudent, invited.Role)
}

func TestDeleteRecordsAuditEntry(t *testing.T) {
	svc, db := newAccountService(t)
	ctx := context.Background()

	account := seedAccount(t, db, models.Account{
		Name:   "Jane Doe",
		Email:  "jane@example.edu",
		Role:   models.RoleStudent,
		Status: models.AccountStatusActive,
		Campus: "State University",
	})

	require.NoError(t, svc.Delete(ctx, adminIdentity(), account.ID))
	require.Equal(t, int64(1), actionLogCount(t, db, models.ActionTypeDelete))

	err := svc.Delete(ctx, adminIdentity(), account.ID)
	require.ErrorIs(t, err, ErrAccountNotFound)
}
