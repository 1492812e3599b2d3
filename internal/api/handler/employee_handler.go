package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/employee-service/internal/api/metrics"
	"github.com/99minutos/employee-service/internal/core/domain"
	"github.com/99minutos/employee-service/internal/core/ports"
)

const (
	msgEmployeeUpdated = "Employee updated successfully"
	msgEmployeeDeleted = "Employee deleted successfully"
)

type EmployeeHandler struct {
	directory ports.DirectoryService
}

func NewEmployeeHandler(directory ports.DirectoryService) *EmployeeHandler {
	return &EmployeeHandler{directory: directory}
}

// updateRequest is a full overwrite of the mutable fields. ID is optional
// and must match the path id when present.
type updateRequest struct {
	ID          *int64 `json:"id,omitempty"`
	Username    string `json:"username"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// List returns every employee.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Employee
// @Failure      401  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /api/v1/employees/find [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.directory.List(c.Request().Context())
	if err != nil {
		return err
	}
	if employees == nil {
		employees = []*domain.Employee{}
	}
	return c.JSON(http.StatusOK, employees)
}

// Get returns one employee, or null when the id is unknown.
//
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Employee id"
// @Success      200  {object}  domain.Employee
// @Failure      400  {object}  errorBody
// @Failure      401  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /api/v1/employees/find/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	employee, err := h.directory.Get(c.Request().Context(), id)
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return c.JSON(http.StatusOK, nil)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

// Update overwrites username, designation, email and password.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Employee id"
// @Param        body  body      updateRequest  true  "New values"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /api/v1/employees/update/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.ID != nil && *req.ID != id {
		return echo.NewHTTPError(http.StatusBadRequest, "body id does not match path id")
	}

	err = h.directory.Update(c.Request().Context(), ports.UpdateEmployeeInput{
		ID:          id,
		Username:    req.Username,
		Designation: req.Designation,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgEmployeeUpdated})
}

// Delete removes an employee. Admin only.
//
// @Summary      Delete an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Employee id"
// @Success      200  {string}  string
// @Failure      400  {object}  errorBody
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /api/v1/employees/delete/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	caller, err := ctxSubject(c)
	if err != nil {
		return err
	}

	if err := h.directory.Delete(c.Request().Context(), *caller, id); err != nil {
		return err
	}

	metrics.EmployeesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, msgEmployeeDeleted)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid employee id")
	}
	return id, nil
}
