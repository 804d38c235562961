package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusgig/campusgig-api/internal/middleware"
	"github.com/campusgig/campusgig-api/internal/service"
	"github.com/campusgig/campusgig-api/internal/utils"
)

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Params(key))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func paging(c *fiber.Ctx) (int, int, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return 0, 0, err
	}
	if page <= 0 {
		page = 1
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return 0, 0, err
	}
	if pageSize <= 0 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}

	return page, pageSize, nil
}

func identityFromContext(c *fiber.Ctx) service.Identity {
	identity, _ := middleware.IdentityFromContext(c)
	return identity
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func validationFields(err error) []utils.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]utils.FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, utils.FieldError{
			Field:  strings.ToLower(fieldError.Field()),
			Reason: fieldError.Tag(),
		})
	}
	return fields
}

// sendServiceError translates service sentinels into the response
// envelope. Unknown errors are logged and reported as internal.
func sendServiceError(c *fiber.Ctx, logger zerolog.Logger, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendValidationError(c, "validation failed", validationFields(err))
	case errors.Is(err, service.ErrSecretTooShort):
		return utils.SendValidationError(c, "validation failed", []utils.FieldError{{Field: "password", Reason: "min"}})

	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")

	case errors.Is(err, service.ErrAccountSuspended):
		return utils.SendError(c, fiber.StatusForbidden, "account suspended")
	case errors.Is(err, service.ErrAwaitingApproval):
		return utils.SendError(c, fiber.StatusForbidden, "awaiting verification")
	case errors.Is(err, service.ErrCannotActOnAdmin):
		return utils.SendError(c, fiber.StatusForbidden, "cannot moderate an admin account")
	case errors.Is(err, service.ErrAdminOnly),
		errors.Is(err, service.ErrStudentsOnly),
		errors.Is(err, service.ErrAuthorityOnly):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyInState),
		errors.Is(err, service.ErrAlreadySuspended),
		errors.Is(err, service.ErrAmbiguousTarget),
		errors.Is(err, service.ErrCampusNameTaken),
		errors.Is(err, service.ErrCampusInUse),
		errors.Is(err, service.ErrRequestResolved),
		errors.Is(err, service.ErrReportClosed),
		errors.Is(err, service.ErrDuplicateApplication),
		errors.Is(err, service.ErrTransitionBlocked),
		errors.Is(err, service.ErrOpportunityClosed),
		errors.Is(err, service.ErrModeNotOpen),
		errors.Is(err, service.ErrFreelancerRequired),
		errors.Is(err, service.ErrCurrentSecretWrong):
		return utils.SendError(c, fiber.StatusConflict, err.Error())

	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrTargetNotFound),
		errors.Is(err, service.ErrCampusNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrOpportunityNotFound),
		errors.Is(err, service.ErrApplicationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())

	default:
		requestLogger(logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
