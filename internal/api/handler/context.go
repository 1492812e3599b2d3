package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/employee-service/internal/api/middleware"
	"github.com/99minutos/employee-service/internal/core/domain"
)

// ctxSubject returns the subject injected by the Auth middleware. Its absence
// means the route was mounted without Auth.
func ctxSubject(c echo.Context) (*domain.Subject, error) {
	subject := middleware.Subject(c)
	if subject == nil || subject.Role == "" {
		return nil, domain.ErrMissingAuth
	}
	return subject, nil
}

// errorBody documents the error envelope for swag.
type errorBody struct {
	Error string `json:"error"`
}
