package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/repository"
)

// Moderation sentinels.
var (
	ErrReportNotFound   = errors.New("report not found")
	ErrReportClosed     = errors.New("report already resolved")
	ErrTargetNotFound   = errors.New("target account not found")
	ErrAmbiguousTarget  = errors.New("target lookup matches multiple accounts")
	ErrCannotActOnAdmin = errors.New("cannot moderate an admin account")
	ErrAlreadySuspended = errors.New("account already suspended")
)

// ModerationService handles report triage and admin override actions.
// Every successful override appends exactly one audit entry.
type ModerationService interface {
	FileReport(ctx context.Context, actor Identity, req dto.FileReportRequest) (dto.ReportResponse, error)
	ListReports(ctx context.Context, req dto.ReportListRequest) (dto.ReportListResponse, error)
	StartInvestigation(ctx context.Context, actor Identity, reportID uint) (dto.ReportResponse, error)
	Resolve(ctx context.Context, actor Identity, reportID uint, review dto.ReportReview) (dto.ReportResponse, error)
	Dismiss(ctx context.Context, actor Identity, reportID uint, review dto.ReportReview) (dto.ReportResponse, error)
	BanAccount(ctx context.Context, actor Identity, req dto.BanRequest) (dto.AccountResponse, error)
	Warn(ctx context.Context, actor Identity, req dto.WarnRequest) error
	MessageUser(ctx context.Context, actor Identity, req dto.MessageRequest) error
}

type moderationService struct {
	reports   repository.ReportRepository
	accounts  repository.AccountRepository
	validator *validator.Validate
	policy    *bluemonday.Policy
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewModerationService constructs the moderation service.
func NewModerationService(reports repository.ReportRepository, accounts repository.AccountRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) ModerationService {
	return &moderationService{
		reports:   reports,
		accounts:  accounts,
		validator: validator,
		policy:    bluemonday.UGCPolicy(),
		audit:     audit,
		logger:    logger.With().Str("component", "moderation_service").Logger(),
	}
}

// FileReport opens a pending moderation ticket stamped with the
// reporter's campus.
func (s *moderationService) FileReport(ctx context.Context, actor Identity, req dto.FileReportRequest) (dto.ReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ReportResponse{}, err
	}

	severity := req.Severity
	if severity == "" {
		severity = models.ReportSeverityMedium
	}

	report := models.Report{
		Type:       req.Type,
		Severity:   severity,
		Status:     models.ReportStatusPending,
		Subject:    strings.TrimSpace(req.Subject),
		Details:    s.policy.Sanitize(req.Details),
		ReporterID: actor.AccountID,
		Campus:     actor.Campus,
	}

	if err := s.reports.Create(ctx, &report); err != nil {
		s.logger.Error().Err(err).Msg("failed to create report")
		return dto.ReportResponse{}, err
	}

	return dto.NewReportResponse(report), nil
}

func (s *moderationService) ListReports(ctx context.Context, req dto.ReportListRequest) (dto.ReportListResponse, error) {
	filter := repository.ReportFilter{
		Status:   strings.TrimSpace(req.Status),
		Type:     strings.TrimSpace(req.Type),
		Severity: strings.TrimSpace(req.Severity),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	reports, total, err := s.reports.List(ctx, filter)
	if err != nil {
		return dto.ReportListResponse{}, err
	}

	responses := make([]dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, dto.NewReportResponse(report))
	}

	return dto.ReportListResponse{
		Items:      responses,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

// StartInvestigation moves a pending report into triage.
func (s *moderationService) StartInvestigation(ctx context.Context, actor Identity, reportID uint) (dto.ReportResponse, error) {
	report, err := s.loadOpenReport(ctx, reportID)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	updated, err := s.reports.Update(ctx, report.ID, map[string]interface{}{
		"status": models.ReportStatusInvestigating,
	})
	if err != nil {
		return dto.ReportResponse{}, err
	}

	return dto.NewReportResponse(updated), nil
}

// Resolve closes the report as handled and appends one audit entry.
func (s *moderationService) Resolve(ctx context.Context, actor Identity, reportID uint, review dto.ReportReview) (dto.ReportResponse, error) {
	return s.closeReport(ctx, actor, reportID, models.ReportStatusResolved, "report.resolved", review)
}

// Dismiss closes the report without action and appends one audit entry.
func (s *moderationService) Dismiss(ctx context.Context, actor Identity, reportID uint, review dto.ReportReview) (dto.ReportResponse, error) {
	return s.closeReport(ctx, actor, reportID, models.ReportStatusDismissed, "report.dismissed", review)
}

func (s *moderationService) closeReport(ctx context.Context, actor Identity, reportID uint, status, action string, review dto.ReportReview) (dto.ReportResponse, error) {
	if err := s.validator.Struct(review); err != nil {
		return dto.ReportResponse{}, err
	}

	report, err := s.loadOpenReport(ctx, reportID)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	updated, err := s.reports.Update(ctx, report.ID, map[string]interface{}{
		"status":      status,
		"admin_notes": strings.TrimSpace(review.Notes),
	})
	if err != nil {
		return dto.ReportResponse{}, err
	}

	s.recordModeration(ctx, actor, models.ActionTypeResolve, action, updated.Subject, map[string]interface{}{
		"report_id": updated.ID,
		"status":    updated.Status,
	})

	return dto.NewReportResponse(updated), nil
}

func (s *moderationService) loadOpenReport(ctx context.Context, reportID uint) (models.Report, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Report{}, ErrReportNotFound
		}
		return models.Report{}, err
	}

	if models.ReportStatusTerminal(report.Status) {
		return models.Report{}, ErrReportClosed
	}

	return report, nil
}

// resolveModerationTarget finds exactly one account by case-insensitive
// email-or-name match. Multiple matches are rejected as ambiguous rather
// than guessed at.
func (s *moderationService) resolveModerationTarget(ctx context.Context, lookup string) (models.Account, error) {
	matches, err := s.accounts.FindByEmailOrName(ctx, lookup)
	if err != nil {
		return models.Account{}, err
	}

	switch len(matches) {
	case 0:
		return models.Account{}, ErrTargetNotFound
	case 1:
		return matches[0], nil
	default:
		return models.Account{}, ErrAmbiguousTarget
	}
}

// BanAccount suspends the resolved target and appends one audit entry.
// Admins cannot be banned, and banning an already-suspended account is a
// conflict.
func (s *moderationService) BanAccount(ctx context.Context, actor Identity, req dto.BanRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AccountResponse{}, err
	}

	target, err := s.resolveModerationTarget(ctx, req.Target)
	if err != nil {
		return dto.AccountResponse{}, err
	}

	if target.Role == models.RoleAdmin {
		return dto.AccountResponse{}, ErrCannotActOnAdmin
	}
	if target.Status == models.AccountStatusSuspended {
		return dto.AccountResponse{}, ErrAlreadySuspended
	}

	updated, err := s.accounts.Update(ctx, target.ID, map[string]interface{}{
		"status": models.AccountStatusSuspended,
	})
	if err != nil {
		return dto.AccountResponse{}, err
	}

	s.recordModeration(ctx, actor, models.ActionTypeBan, "user.banned", target.Email, map[string]interface{}{
		"account_id": target.ID,
		"reason":     strings.TrimSpace(req.Reason),
	})

	return dto.NewAccountResponse(updated), nil
}

// Warn records a warning against the target. Communicative only: no
// account or report state changes.
func (s *moderationService) Warn(ctx context.Context, actor Identity, req dto.WarnRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	target, err := s.resolveModerationTarget(ctx, req.Target)
	if err != nil {
		return err
	}

	severity := req.Severity
	if severity == "" {
		severity = models.ReportSeverityMedium
	}

	// The entry is the whole effect of a warning, so a failed append
	// fails the call.
	return s.audit.Record(ctx, AuditEntry{
		Actor:  actor,
		Type:   models.ActionTypeWarning,
		Action: "user.warned",
		Target: target.Email,
		Metadata: map[string]interface{}{
			"account_id": target.ID,
			"message":    s.policy.Sanitize(req.Message),
			"severity":   severity,
		},
	})
}

// MessageUser records a notice against the target. Communicative only.
func (s *moderationService) MessageUser(ctx context.Context, actor Identity, req dto.MessageRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	target, err := s.resolveModerationTarget(ctx, req.Target)
	if err != nil {
		return err
	}

	return s.audit.Record(ctx, AuditEntry{
		Actor:  actor,
		Type:   models.ActionTypeFlag,
		Action: "user.messaged",
		Target: target.Email,
		Metadata: map[string]interface{}{
			"account_id": target.ID,
			"message":    s.policy.Sanitize(req.Message),
		},
	})
}

func (s *moderationService) recordModeration(ctx context.Context, actor Identity, logType, action, target string, metadata map[string]interface{}) {
	if s.audit == nil {
		return
	}

	err := s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Type:     logType,
		Action:   action,
		Target:   target,
		Metadata: metadata,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record moderation audit entry")
	}
}
