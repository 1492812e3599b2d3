package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/employee-service/internal/api/metrics"
	"github.com/99minutos/employee-service/internal/core/domain"
)

// SubjectKey is the echo context key holding the authorized *domain.Subject.
const SubjectKey = "subject"

// Authorizer turns an Authorization header value into a subject.
type Authorizer interface {
	Authorize(ctx context.Context, authorizationHeader string) (*domain.Subject, error)
}

// Auth verifies the bearer token of every request and injects the decoded
// subject into the context. Failures are returned to the error handler.
func Auth(authorizer Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			subject, err := authorizer.Authorize(c.Request().Context(), header)
			if err != nil {
				metrics.AuthorizationFailuresTotal.WithLabelValues(failureReason(err)).Inc()
				return err
			}

			c.Set(SubjectKey, subject)
			return next(c)
		}
	}
}

// Subject returns the subject stored by Auth, or nil when absent.
func Subject(c echo.Context) *domain.Subject {
	s, _ := c.Get(SubjectKey).(*domain.Subject)
	return s
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingAuth):
		return "missing_auth"
	case errors.Is(err, domain.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, domain.ErrInvalidRole):
		return "invalid_role"
	default:
		return "invalid_token"
	}
}
