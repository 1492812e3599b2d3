package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/employee-service/internal/api/middleware"
	"github.com/99minutos/employee-service/internal/core/domain"
	"github.com/99minutos/employee-service/internal/core/ports"
)

type stubIdentityService struct {
	registerFn     func(ctx context.Context, input ports.RegisterInput) (*domain.Employee, error)
	authenticateFn func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	authorizeFn    func(ctx context.Context, header string) (*domain.Subject, error)
}

func (s *stubIdentityService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Employee, error) {
	return s.registerFn(ctx, input)
}

func (s *stubIdentityService) Authenticate(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubIdentityService) Authorize(ctx context.Context, header string) (*domain.Subject, error) {
	return s.authorizeFn(ctx, header)
}

type stubDirectoryService struct {
	listFn   func(ctx context.Context) ([]*domain.Employee, error)
	getFn    func(ctx context.Context, id int64) (*domain.Employee, error)
	updateFn func(ctx context.Context, input ports.UpdateEmployeeInput) error
	deleteFn func(ctx context.Context, caller domain.Subject, id int64) error
}

func (s *stubDirectoryService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.listFn(ctx)
}

func (s *stubDirectoryService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.getFn(ctx, id)
}

func (s *stubDirectoryService) Update(ctx context.Context, input ports.UpdateEmployeeInput) error {
	return s.updateFn(ctx, input)
}

func (s *stubDirectoryService) Delete(ctx context.Context, caller domain.Subject, id int64) error {
	return s.deleteFn(ctx, caller, id)
}

// newContext builds an echo context for method/target with an optional JSON
// body and path id.
func newContext(method, target, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func withSubject(c echo.Context, s *domain.Subject) echo.Context {
	c.Set(middleware.SubjectKey, s)
	return c
}
