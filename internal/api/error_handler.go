package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/employee-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

var (
	badRequestErrors = []error{
		domain.ErrInvalidEmail,
		domain.ErrInvalidUsername,
		domain.ErrWeakPassword,
		domain.ErrDuplicateUser,
		domain.ErrInvalidInput,
	}
	unauthorizedErrors = []error{
		domain.ErrInvalidCredentials,
		domain.ErrForbiddenRole,
		domain.ErrMissingAuth,
		domain.ErrMissingToken,
		domain.ErrInvalidToken,
		domain.ErrInvalidRole,
	}
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes and renders {"error": "<message>"}. Unknown errors
// are logged and answered with a generic 500.
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
	// Echo's own errors (bind failures, 404 from router, body limit).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if sentinel, ok := matchAny(err, badRequestErrors); ok {
		return http.StatusBadRequest, sentinel.Error()
	}
	if sentinel, ok := matchAny(err, unauthorizedErrors); ok {
		return http.StatusUnauthorized, sentinel.Error()
	}

	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, domain.ErrEmployeeNotFound.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// matchAny reports the first sentinel in the chain of err. The sentinel's own
// message is returned so wrapped causes never reach the client.
func matchAny(err error, sentinels []error) (error, bool) {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s, true
		}
	}
	return nil, false
}
