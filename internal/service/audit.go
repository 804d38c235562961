package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/repository"
)

// AuditEntry captures the details required to persist an audit record.
type AuditEntry struct {
	Actor    Identity
	Type     string
	Action   string
	Target   string
	Metadata map[string]interface{}
}

// AuditRecorder defines behaviour for appending audit records.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// AuditService exposes methods to append and query the action log.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, req dto.ActionLogListRequest) (dto.ActionLogListResponse, error)
}

type auditService struct {
	repo   repository.ActionLogRepository
	logger zerolog.Logger
}

// NewAuditService constructs the action log service.
func NewAuditService(repo repository.ActionLogRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

// Record appends one entry attributing the actor. The log is never
// mutated afterwards.
func (s *auditService) Record(ctx context.Context, entry AuditEntry) error {
	if strings.TrimSpace(entry.Action) == "" {
		return fmt.Errorf("action is required")
	}
	if strings.TrimSpace(entry.Type) == "" {
		return fmt.Errorf("action type is required")
	}

	model := models.ActionLog{
		ActorID:   entry.Actor.AccountID,
		ActorRole: entry.Actor.Role,
		Type:      strings.ToLower(strings.TrimSpace(entry.Type)),
		Action:    strings.TrimSpace(entry.Action),
		Target:    strings.TrimSpace(entry.Target),
		Metadata:  sanitizeMetadata(entry.Metadata),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Error().Err(err).Str("action", model.Action).Msg("failed to persist audit entry")
		return err
	}

	return nil
}

func (s *auditService) List(ctx context.Context, req dto.ActionLogListRequest) (dto.ActionLogListResponse, error) {
	filter := repository.ActionLogFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Type:     strings.TrimSpace(req.Type),
	}
	if req.ActorID > 0 {
		filter.ActorID = &req.ActorID
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ActionLogListResponse{}, err
	}

	responses := make([]dto.ActionLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewActionLogResponse(entry))
	}

	return dto.ActionLogListResponse{
		Items:      responses,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

// sanitizeMetadata masks values under keys that tend to carry secrets.
func sanitizeMetadata(metadata map[string]interface{}) datatypes.JSONMap {
	if metadata == nil {
		return datatypes.JSONMap{}
	}

	sanitized := datatypes.JSONMap{}
	for key, value := range metadata {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "password") || strings.Contains(lower, "token") || strings.Contains(lower, "secret") {
			sanitized[key] = "***"
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}

func paginationMeta(page, pageSize int, total int64) dto.PaginationMeta {
	meta := dto.PaginationMeta{
		Page:       maxInt(page, 1),
		PageSize:   pageSize,
		TotalItems: total,
	}
	if pageSize > 0 {
		meta.TotalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	} else {
		meta.TotalPages = 1
	}
	return meta
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
