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

// ErrOpportunityNotFound indicates the opportunity is absent or outside
// the caller's campus partition. The two cases are indistinguishable.
var (
	ErrOpportunityNotFound = errors.New("opportunity not found")
	ErrAuthorityOnly       = errors.New("posting requires a campus authority account")
)

// OpportunityService manages postings inside a campus partition.
type OpportunityService interface {
	Post(ctx context.Context, actor Identity, req dto.OpportunityCreateRequest) (dto.OpportunityResponse, error)
	List(ctx context.Context, actor Identity, req dto.OpportunityListRequest) (dto.OpportunityListResponse, error)
	Get(ctx context.Context, actor Identity, id uint) (dto.OpportunityResponse, error)
	Update(ctx context.Context, actor Identity, id uint, req dto.OpportunityUpdateRequest) (dto.OpportunityResponse, error)
	Close(ctx context.Context, actor Identity, id uint) (dto.OpportunityResponse, error)
	Delete(ctx context.Context, actor Identity, id uint) error
}

type opportunityService struct {
	opportunities repository.OpportunityRepository
	validator     *validator.Validate
	policy        *bluemonday.Policy
	audit         AuditRecorder
	logger        zerolog.Logger
}

// NewOpportunityService constructs the opportunity service.
func NewOpportunityService(opportunities repository.OpportunityRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) OpportunityService {
	return &opportunityService{
		opportunities: opportunities,
		validator:     validator,
		policy:        bluemonday.UGCPolicy(),
		audit:         audit,
		logger:        logger.With().Str("component", "opportunity_service").Logger(),
	}
}

// Post creates an opportunity. The campus always comes from the actor's
// own partition, never from the payload, so only campus authorities may
// post; an admin has no partition to stamp.
func (s *opportunityService) Post(ctx context.Context, actor Identity, req dto.OpportunityCreateRequest) (dto.OpportunityResponse, error) {
	if actor.Role != models.RoleCampusAuthority || actor.Campus == "" {
		return dto.OpportunityResponse{}, ErrAuthorityOnly
	}

	if err := s.validator.Struct(req); err != nil {
		return dto.OpportunityResponse{}, err
	}

	opportunityType := req.Type
	if opportunityType == "" {
		opportunityType = models.OpportunityTypeInternship
	}
	status := req.Status
	if status == "" {
		status = models.OpportunityStatusActive
	}

	opportunity := models.Opportunity{
		Campus:      actor.Campus,
		Company:     strings.TrimSpace(req.Company),
		Title:       strings.TrimSpace(req.Title),
		Description: s.policy.Sanitize(req.Description),
		Type:        opportunityType,
		Status:      status,
		Location:    strings.TrimSpace(req.Location),
		Stipend:     strings.TrimSpace(req.Stipend),
		PostedBy:    actor.AccountID,
	}

	if err := s.opportunities.Create(ctx, &opportunity); err != nil {
		s.logger.Error().Err(err).Msg("failed to create opportunity")
		return dto.OpportunityResponse{}, err
	}

	return dto.NewOpportunityResponse(opportunity), nil
}

// List returns opportunities inside the actor's partition. Students only
// see active postings; authorities see every status in their campus;
// admins are unrestricted.
func (s *opportunityService) List(ctx context.Context, actor Identity, req dto.OpportunityListRequest) (dto.OpportunityListResponse, error) {
	filter := repository.OpportunityFilter{
		Campus:   actor.CampusScope(),
		Status:   strings.TrimSpace(req.Status),
		Type:     strings.TrimSpace(req.Type),
		Search:   strings.TrimSpace(req.Search),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if actor.Role == models.RoleStudent {
		filter.Status = models.OpportunityStatusActive
	}

	opportunities, total, err := s.opportunities.List(ctx, filter)
	if err != nil {
		return dto.OpportunityListResponse{}, err
	}

	responses := make([]dto.OpportunityResponse, 0, len(opportunities))
	for _, opportunity := range opportunities {
		responses = append(responses, dto.NewOpportunityResponse(opportunity))
	}

	return dto.OpportunityListResponse{
		Items:      responses,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *opportunityService) Get(ctx context.Context, actor Identity, id uint) (dto.OpportunityResponse, error) {
	opportunity, err := s.opportunities.GetScoped(ctx, id, actor.CampusScope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OpportunityResponse{}, ErrOpportunityNotFound
		}
		return dto.OpportunityResponse{}, err
	}

	return dto.NewOpportunityResponse(opportunity), nil
}

func (s *opportunityService) Update(ctx context.Context, actor Identity, id uint, req dto.OpportunityUpdateRequest) (dto.OpportunityResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.OpportunityResponse{}, err
	}

	updates := make(map[string]interface{})
	if req.Company != nil {
		updates["company"] = strings.TrimSpace(*req.Company)
	}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = s.policy.Sanitize(*req.Description)
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Stipend != nil {
		updates["stipend"] = strings.TrimSpace(*req.Stipend)
	}

	if len(updates) == 0 {
		return s.Get(ctx, actor, id)
	}

	opportunity, err := s.opportunities.Update(ctx, id, actor.CampusScope(), updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OpportunityResponse{}, ErrOpportunityNotFound
		}
		return dto.OpportunityResponse{}, err
	}

	return dto.NewOpportunityResponse(opportunity), nil
}

func (s *opportunityService) Close(ctx context.Context, actor Identity, id uint) (dto.OpportunityResponse, error) {
	opportunity, err := s.opportunities.Update(ctx, id, actor.CampusScope(), map[string]interface{}{
		"status": models.OpportunityStatusClosed,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OpportunityResponse{}, ErrOpportunityNotFound
		}
		return dto.OpportunityResponse{}, err
	}

	return dto.NewOpportunityResponse(opportunity), nil
}

// Delete removes the opportunity and all of its applications in one
// transaction.
func (s *opportunityService) Delete(ctx context.Context, actor Identity, id uint) error {
	if err := s.opportunities.DeleteWithApplications(ctx, id, actor.CampusScope()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOpportunityNotFound
		}
		s.logger.Error().Err(err).Uint("opportunity_id", id).Msg("failed to delete opportunity")
		return err
	}

	if s.audit != nil && actor.IsAdmin() {
		_ = s.audit.Record(ctx, AuditEntry{
			Actor:    actor,
			Type:     models.ActionTypeDelete,
			Action:   "opportunity.deleted",
			Metadata: map[string]interface{}{"opportunity_id": id},
		})
	}

	return nil
}
