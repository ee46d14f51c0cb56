package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Success: false, Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusBadRequest, "account already exists"
	case errors.Is(err, domain.ErrAlreadyAssigned):
		return http.StatusBadRequest, "farmer already assigned"
	case errors.Is(err, domain.ErrNotAssigned):
		return http.StatusBadRequest, "farmer not assigned"
	case errors.Is(err, domain.ErrCRPAlreadyLinked):
		return http.StatusBadRequest, "crp already linked to another expert"
	case errors.Is(err, domain.ErrExpertLinked):
		return http.StatusBadRequest, "expert already linked to a crp"
	case errors.Is(err, domain.ErrNoLinkedCRP):
		return http.StatusBadRequest, "no crp linked"
	case errors.Is(err, domain.ErrExpertClaimed):
		return http.StatusBadRequest, "expert already assigned to another supervisor"
	case errors.Is(err, domain.ErrExpertNotUnder):
		return http.StatusBadRequest, "expert not assigned to this supervisor"

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusUnauthorized, "account is deactivated"
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, domain.ErrTokenMalformed):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"

	case errors.Is(err, domain.ErrAccountLocked):
		return http.StatusLocked, "account locked due to repeated failed logins, try again later"

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"

	case errors.Is(err, domain.ErrFarmerNotFound):
		return http.StatusNotFound, "farmer not found"
	case errors.Is(err, domain.ErrCRPNotFound):
		return http.StatusNotFound, "crp not found"
	case errors.Is(err, domain.ErrExpertNotFound):
		return http.StatusNotFound, "expert not found"
	case errors.Is(err, domain.ErrSupervisorNotFound):
		return http.StatusNotFound, "supervisor not found"
	case errors.Is(err, domain.ErrTrainingNotFound):
		return http.StatusNotFound, "training not found"
	case errors.Is(err, domain.ErrProblemNotFound):
		return http.StatusNotFound, "problem not found"
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "follow-up task not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
