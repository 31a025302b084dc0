package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bloodlink/donor-registry/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Which credential part
	// was wrong is never revealed.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, domain.ErrDuplicateAccount):
		return http.StatusConflict, "account already registered"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "too many attempts, try again later"
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, "identity provider timed out"
	case errors.Is(err, domain.ErrProviderUnavailable):
		return http.StatusBadGateway, "identity provider unavailable"
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, "profile not found"
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "post not found"
	case errors.Is(err, domain.ErrRoleMismatch):
		return http.StatusForbidden, "account role does not match requested role"
	case errors.Is(err, domain.ErrNotPostOwner):
		return http.StatusForbidden, "only the requester may modify this post"
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidPostStatus),
		errors.Is(err, domain.ErrInvalidBloodGroup),
		errors.Is(err, domain.ErrInvalidUrgency),
		errors.Is(err, domain.ErrDonationInFuture):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrStoreUnavailable):
		logError(err, log, c)
		return http.StatusServiceUnavailable, "record store unavailable"
	case errors.Is(err, domain.ErrRecordInconsistency):
		logError(err, log, c)
		return http.StatusInternalServerError, "account record could not be repaired"
	}

	// Unexpected error: log the real cause, return a generic message.
	logError(err, log, c)
	return http.StatusInternalServerError, "internal server error"
}

func logError(err error, log zerolog.Logger, c echo.Context) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request failed")
}
