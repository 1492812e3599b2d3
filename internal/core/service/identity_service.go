package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/99minutos/employee-service/internal/core/domain"
	"github.com/99minutos/employee-service/internal/core/ports"
)

// IdentityService implements registration, login and token-based authorization.
type IdentityService struct {
	repo     ports.EmployeeRepository
	sequence ports.EmployeeSequence
	claims   ports.RegistrationClaim
	codec    ports.PasswordCodec
	tokens   ports.TokenService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewIdentityService wires the identity service. claims may be nil, in which
// case registrations rely on the store's unique indexes alone.
func NewIdentityService(
	repo ports.EmployeeRepository,
	sequence ports.EmployeeSequence,
	claims ports.RegistrationClaim,
	codec ports.PasswordCodec,
	tokens ports.TokenService,
	logger zerolog.Logger,
) *IdentityService {
	return &IdentityService{
		repo:     repo,
		sequence: sequence,
		claims:   claims,
		codec:    codec,
		tokens:   tokens,
		validate: newValidator(),
		logger:   logger,
	}
}

// Register validates and stores a new employee. Checks run in order and the
// first failure is returned: email, username, uniqueness, password policy,
// then role elevation.
func (s *IdentityService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Employee, error) {
	if err := validateEmail(s.validate, in.Email); err != nil {
		return nil, err
	}
	if err := validateUsername(s.validate, in.Username); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateUser
	}

	if err := validatePassword(s.validate, in.Password); err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if in.Admin {
		release, err := s.authorizeElevation(ctx, in.Caller)
		if err != nil {
			return nil, err
		}
		defer release(context.WithoutCancel(ctx))
		role = domain.RoleAdmin
	}

	if s.claims != nil {
		release, err := s.claims.Acquire(ctx, in.Email, in.Username)
		switch {
		case errors.Is(err, domain.ErrDuplicateUser):
			return nil, err
		case err != nil:
			s.logger.Warn().Err(err).Str("email", in.Email).Msg("registration claim unavailable, relying on unique indexes")
		default:
			defer release(context.WithoutCancel(ctx))
		}
	}

	hash, err := s.codec.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	id, err := s.sequence.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	employee := &domain.Employee{
		ID:           id,
		Username:     in.Username,
		Designation:  in.Designation,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Int64("employee_id", id).Str("role", role).Msg("employee registered")
	return employee, nil
}

// authorizeElevation allows the admin role when the caller is an admin, or
// when no admin exists yet. A bootstrap grant holds the bootstrap claim until
// the returned release runs, so concurrent first-admin registrations cannot
// both pass the count check.
func (s *IdentityService) authorizeElevation(ctx context.Context, caller *domain.Subject) (func(context.Context), error) {
	release := func(context.Context) {}
	if caller != nil && caller.IsAdmin() {
		return release, nil
	}

	if s.claims != nil {
		r, err := s.claims.AcquireAdminBootstrap(ctx)
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return nil, err
		case err != nil:
			s.logger.Warn().Err(err).Msg("admin bootstrap claim unavailable, checking admin count only")
		default:
			release = r
		}
	}

	admins, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		release(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("register: %w", err)
	}
	if admins > 0 {
		release(context.WithoutCancel(ctx))
		return nil, domain.ErrForbidden
	}

	s.logger.Info().Msg("no admin present, granting admin role to first admin registration")
	return release, nil
}

// Authenticate checks the credentials and issues a token for the employee.
// Unknown email and wrong password both yield domain.ErrInvalidCredentials.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	employee, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			s.logger.Debug().Str("email", email).Msg("login rejected: unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.codec.Verify(password, employee.PasswordHash) {
		s.logger.Debug().Int64("employee_id", employee.ID).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	if !domain.ValidRole(employee.Role) {
		s.logger.Warn().Int64("employee_id", employee.ID).Str("role", employee.Role).Msg("login rejected: unknown role")
		return nil, domain.ErrForbiddenRole
	}

	subject := domain.Subject{ID: employee.ID, Username: employee.Username, Role: employee.Role}
	token, err := s.tokens.Issue(subject)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	return &ports.LoginResult{Token: token, Subject: subject}, nil
}

// Authorize extracts the bearer token from an Authorization header value and
// verifies it.
func (s *IdentityService) Authorize(_ context.Context, authorizationHeader string) (*domain.Subject, error) {
	token, err := bearerToken(authorizationHeader)
	if err != nil {
		return nil, err
	}

	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if !domain.ValidRole(subject.Role) {
		return nil, domain.ErrInvalidRole
	}
	return subject, nil
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.ErrMissingAuth
	}

	scheme, token, _ := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrMissingToken
	}
	if !strings.EqualFold(scheme, "bearer") {
		return "", domain.ErrInvalidToken
	}
	return token, nil
}
