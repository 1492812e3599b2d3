package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/employee-service/internal/api/metrics"
	"github.com/99minutos/employee-service/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject := Subject(c)
			if subject == nil {
				return domain.ErrMissingAuth
			}
			if _, ok := allowed[subject.Role]; !ok {
				metrics.AuthorizationFailuresTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
