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

// Campus workflow sentinels.
var (
	ErrCampusNotFound  = errors.New("campus not found")
	ErrCampusNameTaken = errors.New("campus name already registered")
	ErrCampusInUse     = errors.New("campus still referenced by accounts")
	ErrRequestNotFound = errors.New("campus request not found")
	ErrRequestResolved = errors.New("campus request already resolved")
)

// CampusService manages campuses and the join-request workflow that
// provisions them.
type CampusService interface {
	Create(ctx context.Context, actor Identity, req dto.CampusCreateRequest) (dto.CampusResponse, error)
	List(ctx context.Context, status string) ([]dto.CampusResponse, error)
	Get(ctx context.Context, id uint) (dto.CampusResponse, error)
	Update(ctx context.Context, actor Identity, id uint, req dto.CampusUpdateRequest) (dto.CampusResponse, error)
	Delete(ctx context.Context, actor Identity, id uint) error
	SubmitRequest(ctx context.Context, req dto.CampusRequestSubmission) (dto.CampusRequestResponse, error)
	ListRequests(ctx context.Context, status string) ([]dto.CampusRequestResponse, error)
	ApproveRequest(ctx context.Context, actor Identity, requestID uint, review dto.CampusRequestReview) (dto.CampusResponse, error)
	RejectRequest(ctx context.Context, actor Identity, requestID uint, review dto.CampusRequestReview) (dto.CampusRequestResponse, error)
}

type campusService struct {
	campuses  repository.CampusRepository
	requests  repository.CampusRequestRepository
	accounts  repository.AccountRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewCampusService constructs the campus service.
func NewCampusService(campuses repository.CampusRepository, requests repository.CampusRequestRepository, accounts repository.AccountRepository, validator *validator.Validate, audit AuditRecorder, logger zerolog.Logger) CampusService {
	return &campusService{
		campuses:  campuses,
		requests:  requests,
		accounts:  accounts,
		validator: validator,
		audit:     audit,
		logger:    logger.With().Str("component", "campus_service").Logger(),
	}
}

func (s *campusService) Create(ctx context.Context, actor Identity, req dto.CampusCreateRequest) (dto.CampusResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CampusResponse{}, err
	}

	campus := models.Campus{
		Name:       strings.TrimSpace(req.Name),
		Domain:     strings.TrimSpace(req.Domain),
		AdminEmail: strings.ToLower(strings.TrimSpace(req.AdminEmail)),
		Status:     models.CampusStatusActive,
	}

	if err := s.campuses.Create(ctx, &campus); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return dto.CampusResponse{}, ErrCampusNameTaken
		}
		return dto.CampusResponse{}, err
	}

	s.recordCampusAction(ctx, actor, models.ActionTypeConfig, "campus.created", campus.Name, campus.ID)

	return dto.NewCampusResponse(campus), nil
}

func (s *campusService) List(ctx context.Context, status string) ([]dto.CampusResponse, error) {
	campuses, err := s.campuses.List(ctx, strings.TrimSpace(status))
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CampusResponse, 0, len(campuses))
	for _, campus := range campuses {
		responses = append(responses, dto.NewCampusResponse(campus))
	}

	return responses, nil
}

func (s *campusService) Get(ctx context.Context, id uint) (dto.CampusResponse, error) {
	campus, err := s.campuses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CampusResponse{}, ErrCampusNotFound
		}
		return dto.CampusResponse{}, err
	}

	return dto.NewCampusResponse(campus), nil
}

func (s *campusService) Update(ctx context.Context, actor Identity, id uint, req dto.CampusUpdateRequest) (dto.CampusResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CampusResponse{}, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Domain != nil {
		updates["domain"] = strings.TrimSpace(*req.Domain)
	}
	if req.AdminEmail != nil {
		updates["admin_email"] = strings.ToLower(strings.TrimSpace(*req.AdminEmail))
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	campus, err := s.campuses.Update(ctx, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return dto.CampusResponse{}, ErrCampusNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return dto.CampusResponse{}, ErrCampusNameTaken
		default:
			return dto.CampusResponse{}, err
		}
	}

	s.recordCampusAction(ctx, actor, models.ActionTypeConfig, "campus.updated", campus.Name, campus.ID)

	return dto.NewCampusResponse(campus), nil
}

// Delete removes a campus. Refused while accounts still reference the
// partition, so scoped records cannot be orphaned.
func (s *campusService) Delete(ctx context.Context, actor Identity, id uint) error {
	campus, err := s.campuses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampusNotFound
		}
		return err
	}

	referenced, err := s.accounts.CountByCampus(ctx, campus.Name)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return ErrCampusInUse
	}

	if err := s.campuses.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampusNotFound
		}
		return err
	}

	s.recordCampusAction(ctx, actor, models.ActionTypeDelete, "campus.deleted", campus.Name, campus.ID)

	return nil
}

// SubmitRequest files a join request. Requests are always created pending
// and never deduplicated here; duplicates collapse at approval time.
func (s *campusService) SubmitRequest(ctx context.Context, req dto.CampusRequestSubmission) (dto.CampusRequestResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CampusRequestResponse{}, err
	}

	request := models.CampusRequest{
		CampusName:   strings.TrimSpace(req.CampusName),
		Domain:       strings.TrimSpace(req.Domain),
		ContactEmail: strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		Note:         strings.TrimSpace(req.Note),
		Status:       models.CampusRequestPending,
	}

	if err := s.requests.Create(ctx, &request); err != nil {
		s.logger.Error().Err(err).Msg("failed to create campus request")
		return dto.CampusRequestResponse{}, err
	}

	return dto.NewCampusRequestResponse(request), nil
}

func (s *campusService) ListRequests(ctx context.Context, status string) ([]dto.CampusRequestResponse, error) {
	requests, err := s.requests.List(ctx, strings.TrimSpace(status))
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CampusRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, dto.NewCampusRequestResponse(request))
	}

	return responses, nil
}

// ApproveRequest resolves a pending request. An existing campus with a
// case-insensitively equal name is activated in place, so approving two
// equivalent requests never produces two campuses.
func (s *campusService) ApproveRequest(ctx context.Context, actor Identity, requestID uint, review dto.CampusRequestReview) (dto.CampusResponse, error) {
	if err := s.validator.Struct(review); err != nil {
		return dto.CampusResponse{}, err
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CampusResponse{}, ErrRequestNotFound
		}
		return dto.CampusResponse{}, err
	}
	if request.Status != models.CampusRequestPending {
		return dto.CampusResponse{}, ErrRequestResolved
	}

	campus, err := s.requests.Approve(ctx, requestID, strings.TrimSpace(review.AdminNote))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CampusResponse{}, ErrRequestResolved
		}
		s.logger.Error().Err(err).Uint("request_id", requestID).Msg("failed to approve campus request")
		return dto.CampusResponse{}, err
	}

	s.recordCampusAction(ctx, actor, models.ActionTypeConfig, "campus_request.approved", campus.Name, campus.ID)

	return dto.NewCampusResponse(campus), nil
}

// RejectRequest marks the request rejected without touching any campus.
func (s *campusService) RejectRequest(ctx context.Context, actor Identity, requestID uint, review dto.CampusRequestReview) (dto.CampusRequestResponse, error) {
	if err := s.validator.Struct(review); err != nil {
		return dto.CampusRequestResponse{}, err
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CampusRequestResponse{}, ErrRequestNotFound
		}
		return dto.CampusRequestResponse{}, err
	}
	if request.Status != models.CampusRequestPending {
		return dto.CampusRequestResponse{}, ErrRequestResolved
	}

	updated, err := s.requests.Update(ctx, requestID, map[string]interface{}{
		"status":     models.CampusRequestRejected,
		"admin_note": strings.TrimSpace(review.AdminNote),
	})
	if err != nil {
		return dto.CampusRequestResponse{}, err
	}

	s.recordCampusAction(ctx, actor, models.ActionTypeConfig, "campus_request.rejected", request.CampusName, request.ID)

	return dto.NewCampusRequestResponse(updated), nil
}

func (s *campusService) recordCampusAction(ctx context.Context, actor Identity, logType, action, target string, id uint) {
	if s.audit == nil {
		return
	}

	err := s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Type:     logType,
		Action:   action,
		Target:   target,
		Metadata: map[string]interface{}{"id": id},
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record campus audit entry")
	}
}
