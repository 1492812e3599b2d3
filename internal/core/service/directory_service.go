package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/99minutos/employee-service/internal/core/domain"
	"github.com/99minutos/employee-service/internal/core/ports"
)

// DirectoryService serves reads and writes on existing employee records.
// Callers are expected to have passed authorization already.
type DirectoryService struct {
	repo     ports.EmployeeRepository
	codec    ports.PasswordCodec
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewDirectoryService(repo ports.EmployeeRepository, codec ports.PasswordCodec, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, codec: codec, validate: newValidator(), logger: logger}
}

func (s *DirectoryService) List(ctx context.Context) ([]*domain.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (s *DirectoryService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return employee, nil
}

// Update overwrites username, designation, email and password. The password
// is validated against the same policy as registration and stored hashed.
func (s *DirectoryService) Update(ctx context.Context, in ports.UpdateEmployeeInput) error {
	if err := validateEmail(s.validate, in.Email); err != nil {
		return err
	}
	if err := validateUsername(s.validate, in.Username); err != nil {
		return err
	}
	if err := validatePassword(s.validate, in.Password); err != nil {
		return err
	}

	hash, err := s.codec.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}

	err = s.repo.Update(ctx, &domain.Employee{
		ID:           in.ID,
		Username:     in.Username,
		Designation:  in.Designation,
		Email:        in.Email,
		PasswordHash: hash,
	})
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound), errors.Is(err, domain.ErrDuplicateUser):
		return err
	case err != nil:
		return fmt.Errorf("update employee: %w", err)
	}

	s.logger.Info().Int64("employee_id", in.ID).Msg("employee updated")
	return nil
}

// Delete removes the employee with id. Only admins may delete; deleting an
// id that does not exist succeeds.
func (s *DirectoryService) Delete(ctx context.Context, caller domain.Subject, id int64) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	s.logger.Info().Int64("employee_id", id).Int64("deleted_by", caller.ID).Msg("employee deleted")
	return nil
}
