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

func newApplicationService(t *testing.T, policy TransitionPolicy) (ApplicationService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewApplicationService(
		repository.NewApplicationRepository(db),
		repository.NewOpportunityRepository(db),
		newTestValidator(),
		policy,
		zerolog.Nop(),
	)
	return svc, db
}

func seedOpportunity(t *testing.T, db *gorm.DB, campus, status string) models.Opportunity {
	t.Helper()
	opportunity := models.Opportunity{
		Campus:   campus,
		Company:  "Acme Corp",
		Title:    "Backend Intern",
		Type:     models.OpportunityTypeInternship,
		Status:   status,
		PostedBy: 2,
	}
	require.NoError(t, db.Create(&opportunity).Error)
	return opportunity
}

func TestApplyAtMostOncePerOpportunity(t *testing.T) {
	svc, db := newApplicationService(t, nil)
	ctx := context.Background()
	opportunity := seedOpportunity(t, db, "State University", models.OpportunityStatusActive)
	student := studentIdentity("State University")

	first, err := svc.Apply(ctx, student, opportunity.ID, dto.ApplyRequest{CoverNote: "pick me"})
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusPending, first.Status)

	_, err = svc.Apply(ctx, student, opportunity.ID, dto.ApplyRequest{})
	require.ErrorIs(t, err, ErrDuplicateApplication)

	// A different student can still apply.
	other := Identity{AccountID: 8, Role: models.RoleStudent, Campus: "State University", Mode: models.ModeFreelancer}
	_, err = svc.Apply(ctx, other, opportunity.ID, dto.ApplyRequest{})
	require.NoError(t, err)
}

func TestApplyRequiresStudentInFreelancerMode(t *testing.T) {
	svc, db := newApplicationService(t, nil)
	ctx := context.Background()
	opportunity := seedOpportunity(t, db, "State University", models.OpportunityStatusActive)

	_, err := svc.Apply(ctx, authorityIdentity("State University"), opportunity.ID, dto.ApplyRequest{})
	require.ErrorIs(t, err, ErrStudentsOnly)

	_, err = svc.Apply(ctx, adminIdentity(), opportunity.ID, dto.ApplyRequest{})
	require.ErrorIs(t, err, ErrStudentsOnly)

	recruiter := Identity{AccountID: 9, Role: models.RoleStudent, Campus: "State University", Mode: models.ModeRecruiter}
	_, err = svc.Apply(ctx, recruiter, opportunity.ID, dto.ApplyRequest{})
	require.ErrorIs(t, err, ErrFreelancerRequired)

	var count int64
	require.NoError(t, db.Model(&models.Application{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestApplyBlockedAcrossPartitions(t *testing.T) {
	svc, db := newApplicationService(t, nil)
	opportunity := seedOpportunity(t, db, "Other College", models.OpportunityStatusActive)

	_, err := svc.Apply(context.Background(), studentIdentity("State University"), opportunity.ID, dto.ApplyRequest{})
	require.ErrorIs(t, err, ErrOpportunityNotFound)
}

func TestTransitionFollowsPolicy(t *testing.T) {
	svc, db := newApplicationService(t, nil)
	ctx := context.Background()
	opportunity := seedOpportunity(t, db, "State University", models.OpportunityStatusActive)
	authority := authorityIdentity("State University")

	application, err := svc.Apply(ctx, studentIdentity("State University"), opportunity.ID, dto.ApplyRequest{})
	require.NoError(t, err)

	shortlisted, err := svc.Transition(ctx, authority, application.ID, dto.ApplicationStatusRequest{Status: models.ApplicationStatusShortlisted})
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusShortlisted, shortlisted.Status)

	// Restating the current status is a no-op, not a violation.
	same, err := svc.Transition(ctx, authority, application.ID, dto.ApplicationStatusRequest{Status: models.ApplicationStatusShortlisted})
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusShortlisted, same.Status)

	accepted, err := svc.Transition(ctx, authority, application.ID, dto.ApplicationStatusRequest{Status: models.ApplicationStatusAccepted})
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusAccepted, accepted.Status)

	// Terminal outcomes are frozen under the default policy.
	_, err = svc.Transition(ctx, authority, application.ID, dto.ApplicationStatusRequest{Status: models.ApplicationStatusPending})
	require.ErrorIs(t, err, ErrTransitionBlocked)
}

func TestPermissivePolicyReopensTerminalOutcomes(t *testing.T) {
	svc, db := newApplicationService(t, PermissiveTransitionPolicy())
	ctx := context.Background()
	opportunity := seedOpportunity(t, db, "State University", models.OpportunityStatusActive)
	authority := authorityIdentity("State University")

	application, err := svc.Apply(ctx, studentIdentity("State University"), opportunity.ID, dto.ApplyRequest{})
	require.NoError(t, err)

	_, err = svc.Transition(ctx, authority, application.ID, dto.ApplicationStatusRequest{Status: models.ApplicationStatusRejected})
	require.NoError(t, err)

	reopened, err := svc.Transition(ctx, authority, application.ID, dto.ApplicationStatusRequest{Status: models.ApplicationStatusPending})
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusPending, reopened.Status)
}

func TestTransitionInvisibleAcrossPartitions(t *testing.T) {
	svc, db := newApplicationService(t, nil)
	ctx := context.Background()
	opportunity := seedOpportunity(t, db, "State University", models.OpportunityStatusActive)

	application, err := svc.Apply(ctx, studentIdentity("State University"), opportunity.ID, dto.ApplyRequest{})
	require.NoError(t, err)

	_, err = svc.Transition(ctx, authorityIdentity("Other College"), application.ID, dto.ApplicationStatusRequest{Status: models.ApplicationStatusShortlisted})
	require.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestListForOpportunityAndOwn(t *testing.T) {
	svc, db := newApplicationService(t, nil)
	ctx := context.Background()
	opportunity := seedOpportunity(t, db, "State University", models.OpportunityStatusActive)
	student := studentIdentity("State University")

	_, err := svc.Apply(ctx, student, opportunity.ID, dto.ApplyRequest{})
	require.NoError(t, err)

	applicants, err := svc.ListForOpportunity(ctx, authorityIdentity("State University"), opportunity.ID)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	require.Equal(t, student.AccountID, applicants[0].StudentID)

	own, err := svc.ListOwn(ctx, student)
	require.NoError(t, err)
	require.Len(t, own, 1)

	_, err = svc.ListForOpportunity(ctx, authorityIdentity("Other College"), opportunity.ID)
	require.ErrorIs(t, err, ErrOpportunityNotFound)
}
