package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/repository"
)

// Account lifecycle sentinels.
var (
	ErrAlreadyInState = errors.New("account already in requested state")
	ErrModeNotOpen    = errors.New("mode not registered for account")
	ErrAdminOnly      = errors.New("action requires admin role")
)

// AccountService orchestrates the account admission state machine and
// profile management.
type AccountService interface {
	Approve(ctx context.Context, actor Identity, accountID uint) (dto.AccountResponse, error)
	Reject(ctx context.Context, actor Identity, accountID uint) (dto.AccountResponse, error)
	Suspend(ctx context.Context, actor Identity, accountID uint) (dto.AccountResponse, error)
	Reactivate(ctx context.Context, actor Identity, accountID uint) (dto.AccountResponse, error)
	Delete(ctx context.Context, actor Identity, accountID uint) error
	List(ctx context.Context, actor Identity, req dto.AccountListRequest) (dto.AccountListResponse, error)
	Get(ctx context.Context, actor Identity, accountID uint) (dto.AccountResponse, error)
	Profile(ctx context.Context, accountID uint) (dto.AccountResponse, error)
	UpdateProfile(ctx context.Context, accountID uint, req dto.ProfileUpdateRequest) (dto.AccountResponse, error)
	SwitchMode(ctx context.Context, accountID uint, req dto.SwitchModeRequest) (dto.AccountResponse, error)
	InviteStudent(ctx context.Context, actor Identity, req dto.InviteStudentRequest) (dto.AccountResponse, error)
	UpdateStudent(ctx context.Context, actor Identity, studentID uint, req dto.StudentUpdateRequest) (dto.AccountResponse, error)
	RemoveStudent(ctx context.Context, actor Identity, studentID uint) error
}

type accountService struct {
	accounts  repository.AccountRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewAccountService constructs the account service.
func NewAccountService(accounts repository.AccountRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) AccountService {
	return &accountService{
		accounts:  accounts,
		validator: validator,
		audit:     audit,
		logger:    logger.With().Str("component", "account_service").Logger(),
	}
}

// resolveTarget loads the account the actor is allowed to act on. Admins
// reach any account; campus authorities reach only students inside their
// own partition. Out-of-scope targets look like missing records.
func (s *accountService) resolveTarget(ctx context.Context, actor Identity, accountID uint) (models.Account, error) {
	if actor.IsAdmin() {
		account, err := s.accounts.GetByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Account{}, ErrAccountNotFound
			}
			return models.Account{}, err
		}
		return account, nil
	}

	account, err := s.accounts.GetScoped(ctx, accountID, actor.CampusScope(), models.RoleStudent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, err
	}

	return account, nil
}

// Approve admits a pending account: status active, verified true.
func (s *accountService) Approve(ctx context.Context, actor Identity, accountID uint) (dto.AccountResponse, error) {
	target, err := s.resolveTarget(ctx, actor, accountID)
	if err != nil {
		return dto.AccountResponse{}, err
	}

	updated, err := s.accounts.Update(ctx, target.ID, map[string]interface{}{
		"status":   models.AccountStatusActive,
		"verified": true,
	})
	if err != nil {
		return dto.AccountResponse{}, err
	}

	s.recordLifecycle(ctx, actor, models.ActionTypeVerify, "account.approved", updated)

	return dto.NewAccountResponse(updated), nil
}

// Reject refuses admission: status rejected, verified false.
func (s *accountService) Reject(ctx context.Context, actor Identity, accountID uint) (dto.AccountResponse, error) {
	target, err := s.resolveTarget(ctx, actor, accountID)
	if err != nil {
		return dto.AccountResponse{}, err
	}

	updated, err := s.accounts.Update(ctx, target.ID, map[string]interface{}{
		"status":   models.AccountStatusRejected,
		"verified": false,
	})
	if err != nil {
		return dto.AccountResponse{}, err
	}

	s.recordLifecycle(ctx, actor, models.ActionTypeVerify, "account.rejected", updated)

	return dto.NewAccountResponse(updated), nil
}

// Suspend moves an active account to suspended. Suspending an account
// that is already suspended is a conflict, not a no-op.
func (s *accountService) Suspend(ctx context.Context, actor Identity, accountID uint) (dto.AccountResponse, error) {
	return s.toggleSuspension(ctx, actor, accountID, models.AccountStatusSuspended, models.ActionTypeBan, "account.suspended")
}

// Reactivate moves a suspended account back to active.
func (s *accountService) Reactivate(ctx context.Context, actor Identity, accountID uint) (dto.AccountResponse, error) {
	return s.toggleSuspension(ctx, actor, accountID, models.AccountStatusActive, models.ActionTypeRestore, "account.reactivated")
}

// toggleSuspension flips the suspension state. Only platform admins may
// suspend or reactivate; campus authorities never reach this path.
func (s *accountService) toggleSuspension(ctx context.Context, actor Identity, accountID uint, newStatus, logType, action string) (dto.AccountResponse, error) {
	if !actor.IsAdmin() {
		return dto.AccountResponse{}, ErrAdminOnly
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AccountResponse{}, ErrAccountNotFound
		}
		return dto.AccountResponse{}, err
	}

	if account.Status == newStatus {
		return dto.AccountResponse{}, ErrAlreadyInState
	}

	updated, err := s.accounts.Update(ctx, accountID, map[string]interface{}{"status": newStatus})
	if err != nil {
		return dto.AccountResponse{}, err
	}

	s.recordLifecycle(ctx, actor, logType, action, updated)

	return dto.NewAccountResponse(updated), nil
}

// Delete removes an account entirely. Admin override only.
func (s *accountService) Delete(ctx context.Context, actor Identity, accountID uint) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if err := s.accounts.Delete(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	s.recordLifecycle(ctx, actor, models.ActionTypeDelete, "account.deleted", account)

	return nil
}

// List returns accounts visible to the actor. Non-admin callers only ever
// see their own campus partition regardless of requested filters.
func (s *accountService) List(ctx context.Context, actor Identity, req dto.AccountListRequest) (dto.AccountListResponse, error) {
	filter := repository.AccountFilter{
		Campus:   actor.CampusScope(),
		Role:     strings.TrimSpace(req.Role),
		Status:   strings.TrimSpace(req.Status),
		Search:   strings.TrimSpace(req.Search),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if !actor.IsAdmin() {
		filter.Role = models.RoleStudent
	}

	accounts, total, err := s.accounts.List(ctx, filter)
	if err != nil {
		return dto.AccountListResponse{}, err
	}

	responses := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, dto.NewAccountResponse(account))
	}

	return dto.AccountListResponse{
		Items:      responses,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *accountService) Get(ctx context.Context, actor Identity, accountID uint) (dto.AccountResponse, error) {
	account, err := s.resolveTarget(ctx, actor, accountID)
	if err != nil {
		return dto.AccountResponse{}, err
	}

	return dto.NewAccountResponse(account), nil
}

func (s *accountService) Profile(ctx context.Context, accountID uint) (dto.AccountResponse, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AccountResponse{}, ErrAccountNotFound
		}
		return dto.AccountResponse{}, err
	}

	return dto.NewAccountResponse(account), nil
}

func (s *accountService) UpdateProfile(ctx context.Context, accountID uint, req dto.ProfileUpdateRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AccountResponse{}, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}

	if len(updates) == 0 {
		return s.Profile(ctx, accountID)
	}

	account, err := s.accounts.Update(ctx, accountID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AccountResponse{}, ErrAccountNotFound
		}
		return dto.AccountResponse{}, err
	}

	return dto.NewAccountResponse(account), nil
}

// SwitchMode changes a student's active marketplace mode. The new mode
// must be reachable from the registered modes.
func (s *accountService) SwitchMode(ctx context.Context, accountID uint, req dto.SwitchModeRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AccountResponse{}, err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AccountResponse{}, ErrAccountNotFound
		}
		return dto.AccountResponse{}, err
	}

	if account.Role != models.RoleStudent || !models.ModeAllowed(account.RegisteredModes, req.Mode) {
		return dto.AccountResponse{}, ErrModeNotOpen
	}

	updated, err := s.accounts.Update(ctx, accountID, map[string]interface{}{"active_mode": req.Mode})
	if err != nil {
		return dto.AccountResponse{}, err
	}

	return dto.NewAccountResponse(updated), nil
}

// InviteStudent creates a pending student account inside the inviting
// authority's own campus. The campus never comes from the payload.
func (s *accountService) InviteStudent(ctx context.Context, actor Identity, req dto.InviteStudentRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AccountResponse{}, err
	}

	hash, err := HashSecret(req.Password)
	if err != nil {
		return dto.AccountResponse{}, err
	}

	modes := req.Modes
	if modes == "" {
		modes = models.ModeFreelancer
	}
	activeMode := models.ModeFreelancer
	if modes == models.ModeRecruiter {
		activeMode = models.ModeRecruiter
	}

	account := models.Account{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:    hash,
		Role:            models.RoleStudent,
		Status:          models.AccountStatusPending,
		Campus:          actor.Campus,
		RegisteredModes: modes,
		ActiveMode:      activeMode,
	}

	if err := s.accounts.Create(ctx, &account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return dto.AccountResponse{}, ErrEmailTaken
		}
		return dto.AccountResponse{}, err
	}

	return dto.NewAccountResponse(account), nil
}

func (s *accountService) UpdateStudent(ctx context.Context, actor Identity, studentID uint, req dto.StudentUpdateRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AccountResponse{}, err
	}

	target, err := s.resolveTarget(ctx, actor, studentID)
	if err != nil {
		return dto.AccountResponse{}, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Modes != nil {
		updates["registered_modes"] = *req.Modes
		if !models.ModeAllowed(*req.Modes, target.ActiveMode) {
			if *req.Modes == models.ModeRecruiter {
				updates["active_mode"] = models.ModeRecruiter
			} else {
				updates["active_mode"] = models.ModeFreelancer
			}
		}
	}

	if len(updates) == 0 {
		return dto.NewAccountResponse(target), nil
	}

	updated, err := s.accounts.Update(ctx, target.ID, updates)
	if err != nil {
		return dto.AccountResponse{}, err
	}

	return dto.NewAccountResponse(updated), nil
}

func (s *accountService) RemoveStudent(ctx context.Context, actor Identity, studentID uint) error {
	target, err := s.resolveTarget(ctx, actor, studentID)
	if err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, target.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	s.recordLifecycle(ctx, actor, models.ActionTypeDelete, "student.removed", target)

	return nil
}

func (s *accountService) recordLifecycle(ctx context.Context, actor Identity, logType, action string, target models.Account) {
	if s.audit == nil {
		return
	}

	err := s.audit.Record(ctx, AuditEntry{
		Actor:  actor,
		Type:   logType,
		Action: action,
		Target: target.Email,
		Metadata: map[string]interface{}{
			"account_id": target.ID,
			"status":     target.Status,
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record lifecycle audit entry")
	}
}
