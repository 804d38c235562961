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

// Application pipeline sentinels.
var (
	ErrDuplicateApplication = errors.New("application already exists for this opportunity")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrOpportunityClosed    = errors.New("opportunity not accepting applications")
	ErrTransitionBlocked    = errors.New("status transition not permitted")
	ErrStudentsOnly         = errors.New("only students may apply")
	ErrFreelancerRequired   = errors.New("freelancer mode must be active to apply")
)

// TransitionPolicy decides which application status transitions are legal.
// The graph is configuration, not an implicit default.
type TransitionPolicy map[string][]string

// Allows reports whether the policy permits moving from one status to
// another.
func (p TransitionPolicy) Allows(from, to string) bool {
	for _, candidate := range p[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// DefaultTransitionPolicy freezes terminal outcomes: accepted and
// rejected applications can no longer move.
func DefaultTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{
		models.ApplicationStatusPending:     {models.ApplicationStatusShortlisted, models.ApplicationStatusAccepted, models.ApplicationStatusRejected},
		models.ApplicationStatusShortlisted: {models.ApplicationStatusPending, models.ApplicationStatusAccepted, models.ApplicationStatusRejected},
	}
}

// PermissiveTransitionPolicy allows any-to-any movement between the four
// pipeline stages, matching deployments that want reviewers to be able to
// reverse a decision.
func PermissiveTransitionPolicy() TransitionPolicy {
	all := []string{
		models.ApplicationStatusPending,
		models.ApplicationStatusShortlisted,
		models.ApplicationStatusAccepted,
		models.ApplicationStatusRejected,
	}

	policy := TransitionPolicy{}
	for _, from := range all {
		policy[from] = all
	}
	return policy
}

// ApplicationService manages student bids and their pipeline stages.
type ApplicationService interface {
	Apply(ctx context.Context, actor Identity, opportunityID uint, req dto.ApplyRequest) (dto.ApplicationResponse, error)
	ListForOpportunity(ctx context.Context, actor Identity, opportunityID uint) ([]dto.ApplicationResponse, error)
	ListOwn(ctx context.Context, actor Identity) ([]dto.ApplicationResponse, error)
	Transition(ctx context.Context, actor Identity, applicationID uint, req dto.ApplicationStatusRequest) (dto.ApplicationResponse, error)
}

type applicationService struct {
	applications  repository.ApplicationRepository
	opportunities repository.OpportunityRepository
	validator     *validator.Validate
	policy        TransitionPolicy
	logger        zerolog.Logger
}

// NewApplicationService constructs the application service.
func NewApplicationService(applications repository.ApplicationRepository, opportunities repository.OpportunityRepository, validator *validator.Validate, policy TransitionPolicy, logger zerolog.Logger) ApplicationService {
	if policy == nil {
		policy = DefaultTransitionPolicy()
	}

	return &applicationService{
		applications:  applications,
		opportunities: opportunities,
		validator:     validator,
		policy:        policy,
		logger:        logger.With().Str("component", "application_service").Logger(),
	}
}

// Apply files a bid against an active opportunity inside the student's
// campus. Only students with freelancer mode active may apply. At most
// one application per (opportunity, student) pair exists; the
// store-level unique index makes this hold under concurrency.
func (s *applicationService) Apply(ctx context.Context, actor Identity, opportunityID uint, req dto.ApplyRequest) (dto.ApplicationResponse, error) {
	if actor.Role != models.RoleStudent {
		return dto.ApplicationResponse{}, ErrStudentsOnly
	}
	if actor.Mode != models.ModeFreelancer {
		return dto.ApplicationResponse{}, ErrFreelancerRequired
	}

	if err := s.validator.Struct(req); err != nil {
		return dto.ApplicationResponse{}, err
	}

	opportunity, err := s.opportunities.GetScoped(ctx, opportunityID, actor.CampusScope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrOpportunityNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	if opportunity.Status != models.OpportunityStatusActive {
		return dto.ApplicationResponse{}, ErrOpportunityClosed
	}

	application := models.Application{
		OpportunityID: opportunity.ID,
		StudentID:     actor.AccountID,
		Status:        models.ApplicationStatusPending,
		CoverNote:     strings.TrimSpace(req.CoverNote),
		ExpectedRate:  strings.TrimSpace(req.ExpectedRate),
	}

	if err := s.applications.Create(ctx, &application); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return dto.ApplicationResponse{}, ErrDuplicateApplication
		}
		s.logger.Error().Err(err).Uint("opportunity_id", opportunityID).Msg("failed to create application")
		return dto.ApplicationResponse{}, err
	}

	return dto.NewApplicationResponse(application), nil
}

// ListForOpportunity returns every application against an opportunity the
// actor's partition owns.
func (s *applicationService) ListForOpportunity(ctx context.Context, actor Identity, opportunityID uint) ([]dto.ApplicationResponse, error) {
	if _, err := s.opportunities.GetScoped(ctx, opportunityID, actor.CampusScope()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOpportunityNotFound
		}
		return nil, err
	}

	applications, err := s.applications.ListByOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, dto.NewApplicationResponse(application))
	}

	return responses, nil
}

// ListOwn returns the student's own applications.
func (s *applicationService) ListOwn(ctx context.Context, actor Identity) ([]dto.ApplicationResponse, error) {
	applications, err := s.applications.ListByStudent(ctx, actor.AccountID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, dto.NewApplicationResponse(application))
	}

	return responses, nil
}

// Transition moves an application through the pipeline. The actor must
// own the parent opportunity's partition and the policy must permit the
// move.
func (s *applicationService) Transition(ctx context.Context, actor Identity, applicationID uint, req dto.ApplicationStatusRequest) (dto.ApplicationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ApplicationResponse{}, err
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrApplicationNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	// Partition check goes through the parent opportunity; a foreign
	// application is indistinguishable from a missing one.
	if _, err := s.opportunities.GetScoped(ctx, application.OpportunityID, actor.CampusScope()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrApplicationNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	if application.Status != req.Status && !s.policy.Allows(application.Status, req.Status) {
		return dto.ApplicationResponse{}, ErrTransitionBlocked
	}

	updated, err := s.applications.UpdateStatus(ctx, applicationID, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrApplicationNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	return dto.NewApplicationResponse(updated), nil
}
