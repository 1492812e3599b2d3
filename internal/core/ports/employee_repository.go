package ports

import (
	"context"

	"github.com/99minutos/employee-service/internal/core/domain"
)

// EmployeeRepository defines persistence operations for employee records.
type EmployeeRepository interface {
	// Create inserts a new employee. A unique index violation is reported as
	// domain.ErrDuplicateUser.
	Create(ctx context.Context, e *domain.Employee) error
	FindByID(ctx context.Context, id int64) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	// ExistsByEmailOrUsername reports whether any record uses email or username.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	// Update overwrites username, designation, email and password of the
	// record with e.ID. Returns domain.ErrEmployeeNotFound when no record matched.
	Update(ctx context.Context, e *domain.Employee) error
	// Delete removes the record with id. A missing record is not an error.
	Delete(ctx context.Context, id int64) error
}

// EmployeeSequence hands out employee ids from a store-side atomic counter.
type EmployeeSequence interface {
	Next(ctx context.Context) (int64, error)
}

// RegistrationClaim reserves an email/username pair while a registration is
// in flight. Acquire returns domain.ErrDuplicateUser when another
// registration holds either value.
type RegistrationClaim interface {
	Acquire(ctx context.Context, email, username string) (release func(context.Context), err error)
	// AcquireAdminBootstrap serializes first-admin registrations. It returns
	// domain.ErrForbidden while another one is in flight.
	AcquireAdminBootstrap(ctx context.Context) (release func(context.Context), err error)
}
