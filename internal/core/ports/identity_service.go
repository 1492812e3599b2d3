package ports

import (
	"context"

	"github.com/99minutos/employee-service/internal/core/domain"
)

// RegisterInput carries a registration request.
type RegisterInput struct {
	Username    string
	Designation string
	Email       string
	Password    string
	// Admin asks for the admin role.
	Admin bool
	// Caller is the authenticated subject making the request, if any. It is
	// required to grant the admin role once an admin exists.
	Caller *domain.Subject
}

// LoginResult is returned by a successful Authenticate.
type LoginResult struct {
	Token   string
	Subject domain.Subject
}

// IdentityService handles registration, login and per-request authorization.
type IdentityService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Employee, error)
	Authenticate(ctx context.Context, email, password string) (*LoginResult, error)
	// Authorize validates the raw Authorization header value and returns the
	// subject encoded in its bearer token.
	Authorize(ctx context.Context, authorizationHeader string) (*domain.Subject, error)
}
