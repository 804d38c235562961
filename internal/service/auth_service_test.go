package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/repository"
)

func newAuthService(t *testing.T) (AuthService, repository.AccountRepository) {
	t.Helper()
	db := setupTestDB(t)
	accounts := repository.NewAccountRepository(db)
	svc := NewAuthService(accounts, newTestValidator(), "test-secret", time.Hour, zerolog.Nop())
	return svc, accounts
}

func TestRegisterCreatesPendingUnverifiedAccount(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "Jane.Doe@Example.edu",
		Password: "super-secret",
		Role:     models.RoleStudent,
		Campus:   "State University",
	})
	require.NoError(t, err)
	require.Equal(t, models.AccountStatusPending, account.Status)
	require.False(t, account.Verified)
	require.Equal(t, "jane.doe@example.edu", account.Email)
	require.Equal(t, models.ModeFreelancer, account.RegisteredModes)
	require.Equal(t, models.ModeFreelancer, account.ActiveMode)

	// A pending account cannot authenticate yet.
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "jane.doe@example.edu", Password: "super-secret"})
	require.ErrorIs(t, err, ErrAwaitingApproval)
}

func TestRegisterRejectsDuplicateEmailCaseInsensitively(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	first := dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.edu",
		Password: "super-secret",
		Role:     models.RoleStudent,
		Campus:   "State University",
	}
	_, err := svc.Register(ctx, first)
	require.NoError(t, err)

	second := first
	second.Email = "JANE@EXAMPLE.EDU"
	_, err = svc.Register(ctx, second)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRecruiterModeDefaultsActiveMode(t *testing.T) {
	svc, _ := newAuthService(t)

	account, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Rick Recruiter",
		Email:    "rick@example.edu",
		Password: "super-secret",
		Role:     models.RoleStudent,
		Campus:   "State University",
		Modes:    models.ModeRecruiter,
	})
	require.NoError(t, err)
	require.Equal(t, models.ModeRecruiter, account.RegisteredModes)
	require.Equal(t, models.ModeRecruiter, account.ActiveMode)
}

func TestLoginAdmissionGate(t *testing.T) {
	svc, accounts := newAuthService(t)
	ctx := context.Background()

	hash := mustHash(t, "super-secret")
	seed := func(email, status string, verified bool) {
		account := models.Account{
			Name:         "Account " + email,
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleStudent,
			Status:       status,
			Verified:     verified,
			Campus:       "State University",
		}
		require.NoError(t, accounts.Create(ctx, &account))
	}

	seed("pending@example.edu", models.AccountStatusPending, false)
	seed("suspended@example.edu", models.AccountStatusSuspended, true)
	seed("rejected@example.edu", models.AccountStatusRejected, false)
	seed("active@example.edu", models.AccountStatusActive, true)

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "pending@example.edu", Password: "super-secret"})
	require.ErrorIs(t, err, ErrAwaitingApproval)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "suspended@example.edu", Password: "super-secret"})
	require.ErrorIs(t, err, ErrAccountSuspended)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "rejected@example.edu", Password: "super-secret"})
	require.ErrorIs(t, err, ErrAwaitingApproval)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "active@example.edu", Password: "wrong-pass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.edu", Password: "super-secret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	session, err := svc.Login(ctx, dto.LoginRequest{Email: "active@example.edu", Password: "super-secret"})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)
	require.Equal(t, "active@example.edu", session.Account.Email)
}

func TestChangePasswordVerifiesCurrentSecret(t *testing.T) {
	svc, accounts := newAuthService(t)
	ctx := context.Background()

	account := models.Account{
		Name:         "Jane Doe",
		Email:        "jane@example.edu",
		PasswordHash: mustHash(t, "old-secret-1"),
		Role:         models.RoleStudent,
		Status:       models.AccountStatusActive,
		Verified:     true,
		Campus:       "State University",
	}
	require.NoError(t, accounts.Create(ctx, &account))

	err := svc.ChangePassword(ctx, account.ID, dto.ChangePasswordRequest{
		CurrentPassword: "wrong-secret",
		NewPassword:     "new-secret-1",
	})
	require.ErrorIs(t, err, ErrCurrentSecretWrong)

	err = svc.ChangePassword(ctx, account.ID, dto.ChangePasswordRequest{
		CurrentPassword: "old-secret-1",
		NewPassword:     "new-secret-1",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "jane@example.edu", Password: "old-secret-1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "jane@example.edu", Password: "new-secret-1"})
	require.NoError(t, err)
}
