package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/campusgig/campusgig-api/internal/dto"
	"github.com/campusgig/campusgig-api/internal/repository"
)

// DashboardService produces cached aggregate views for the admin and
// campus authority dashboards.
type DashboardService interface {
	AdminSummary(ctx context.Context) (dto.AdminDashboardResponse, error)
	CampusSummary(ctx context.Context, actor Identity) (dto.CampusDashboardResponse, error)
}

type dashboardService struct {
	accounts      repository.AccountRepository
	campuses      repository.CampusRepository
	opportunities repository.OpportunityRepository
	applications  repository.ApplicationRepository
	reports       repository.ReportRepository
	cache         *redis.Client
	cacheTTL      time.Duration
	logger        zerolog.Logger
}

// NewDashboardService constructs the dashboard aggregator.
func NewDashboardService(accounts repository.AccountRepository, campuses repository.CampusRepository, opportunities repository.OpportunityRepository, applications repository.ApplicationRepository, reports repository.ReportRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		accounts:      accounts,
		campuses:      campuses,
		opportunities: opportunities,
		applications:  applications,
		reports:       reports,
		cache:         cache,
		cacheTTL:      ttl,
		logger:        logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) AdminSummary(ctx context.Context) (dto.AdminDashboardResponse, error) {
	const cacheKey = "dashboard:admin"
	tracer := otel.Tracer("github.com/campusgig/campusgig-api/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.admin_summary")
	span.SetAttributes(attribute.String("dashboard.cache_key", cacheKey))
	defer span.End()

	var cached dto.AdminDashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		cached.CacheHit = true
		span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
		return cached, nil
	}

	accountsByStatus, err := s.accounts.CountByStatus(ctx, "")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_accounts_failed")
		return dto.AdminDashboardResponse{}, err
	}

	campusCount, err := s.campuses.Count(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.AdminDashboardResponse{}, err
	}

	opportunityCount, err := s.opportunities.Count(ctx, "")
	if err != nil {
		span.RecordError(err)
		return dto.AdminDashboardResponse{}, err
	}

	openReports, err := s.reports.CountOpen(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.AdminDashboardResponse{}, err
	}

	response := dto.AdminDashboardResponse{
		AccountsByStatus: accountsByStatus,
		CampusCount:      campusCount,
		OpportunityCount: opportunityCount,
		OpenReportCount:  openReports,
	}

	s.writeCache(ctx, cacheKey, response)

	return response, nil
}

func (s *dashboardService) CampusSummary(ctx context.Context, actor Identity) (dto.CampusDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:campus:%s", actor.Campus)
	tracer := otel.Tracer("github.com/campusgig/campusgig-api/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.campus_summary")
	span.SetAttributes(attribute.String("dashboard.cache_key", cacheKey))
	defer span.End()

	var cached dto.CampusDashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		cached.CacheHit = true
		span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
		return cached, nil
	}

	studentsByStatus, err := s.accounts.CountByStatus(ctx, actor.Campus)
	if err != nil {
		span.RecordError(err)
		return dto.CampusDashboardResponse{}, err
	}

	opportunitiesByStatus, err := s.opportunities.CountByStatus(ctx, actor.Campus)
	if err != nil {
		span.RecordError(err)
		return dto.CampusDashboardResponse{}, err
	}

	applicationsByStatus, err := s.applications.CountByStatusForCampus(ctx, actor.Campus)
	if err != nil {
		span.RecordError(err)
		return dto.CampusDashboardResponse{}, err
	}

	response := dto.CampusDashboardResponse{
		Campus:                actor.Campus,
		StudentsByStatus:      studentsByStatus,
		OpportunitiesByStatus: opportunitiesByStatus,
		ApplicationsByStatus:  applicationsByStatus,
	}

	s.writeCache(ctx, cacheKey, response)

	return response, nil
}

func (s *dashboardService) readCache(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read dashboard cache")
		}
		return false
	}

	return json.Unmarshal([]byte(cached), out) == nil
}

func (s *dashboardService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to store dashboard cache")
	}
}
