package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/repository"
)

// Authentication sentinels.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrAwaitingApproval   = errors.New("awaiting verification")
	ErrCurrentSecretWrong = errors.New("current password incorrect")
	ErrAccountNotFound    = errors.New("account not found")
)

// AuthService handles registration, login and credential rotation.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AccountResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, accountID uint, req dto.ChangePasswordRequest) error
	IssueToken(accountID uint) (string, time.Time, error)
}

type authService struct {
	accounts  repository.AccountRepository
	validator *validator.Validate
	secret    []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(accounts repository.AccountRepository, validator *validator.Validate, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		accounts:  accounts,
		validator: validator,
		secret:    []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

// Register creates a pending, unverified account. No token is issued:
// an account must be admitted before it can authenticate.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AccountResponse{}, err
	}

	hash, err := HashSecret(req.Password)
	if err != nil {
		return dto.AccountResponse{}, err
	}

	account := models.Account{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         req.Role,
		Status:       models.AccountStatusPending,
		Verified:     false,
		Campus:       strings.TrimSpace(req.Campus),
	}

	if req.Role == models.RoleStudent {
		modes := req.Modes
		if modes == "" {
			modes = models.ModeFreelancer
		}
		account.RegisteredModes = modes
		if modes == models.ModeRecruiter {
			account.ActiveMode = models.ModeRecruiter
		} else {
			account.ActiveMode = models.ModeFreelancer
		}
	}

	if err := s.accounts.Create(ctx, &account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return dto.AccountResponse{}, ErrEmailTaken
		}
		s.logger.Error().Err(err).Msg("failed to create account")
		return dto.AccountResponse{}, err
	}

	return dto.NewAccountResponse(account), nil
}

// Login authenticates credentials and enforces the admission gate.
// Suspended and not-yet-admitted accounts fail with distinct errors.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if !VerifySecret(account.PasswordHash, req.Password) {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	switch {
	case account.Status == models.AccountStatusSuspended:
		return dto.LoginResponse{}, ErrAccountSuspended
	case account.Status != models.AccountStatusActive || !account.Verified:
		return dto.LoginResponse{}, ErrAwaitingApproval
	}

	token, expiresAt, err := s.IssueToken(account.ID)
	if err != nil {
		s.logger.Error().Err(err).Uint("account_id", account.ID).Msg("failed to sign token")
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   dto.NewAccountResponse(account),
	}, nil
}

// IssueToken signs a bearer token that binds only the opaque account id.
// Role and campus are deliberately absent so privileges are always
// re-resolved from the store on each request.
func (s *authService) IssueToken(accountID uint) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.MapClaims{
		"sub": float64(accountID),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// ChangePassword rotates the caller's credential after verifying the
// current one.
func (s *authService) ChangePassword(ctx context.Context, accountID uint, req dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if !VerifySecret(account.PasswordHash, req.CurrentPassword) {
		return ErrCurrentSecretWrong
	}

	hash, err := HashSecret(req.NewPassword)
	if err != nil {
		return err
	}

	if _, err := s.accounts.Update(ctx, accountID, map[string]interface{}{"password_hash": hash}); err != nil {
		s.logger.Error().Err(err).Uint("account_id", accountID).Msg("failed to rotate credential")
		return err
	}

	return nil
}
