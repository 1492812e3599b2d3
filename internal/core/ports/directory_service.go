package ports

import (
	"context"

	"github.com/99minutos/employee-service/internal/core/domain"
)

// UpdateEmployeeInput carries a full overwrite of an employee record.
type UpdateEmployeeInput struct {
	ID          int64
	Username    string
	Designation string
	Email       string
	Password    string
}

// DirectoryService defines read and write operations on the employee directory.
type DirectoryService interface {
	List(ctx context.Context) ([]*domain.Employee, error)
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	Update(ctx context.Context, input UpdateEmployeeInput) error
	Delete(ctx context.Context, caller domain.Subject, id int64) error
}
