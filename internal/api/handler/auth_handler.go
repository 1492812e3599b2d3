package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/employee-service/internal/api/metrics"
	"github.com/99minutos/employee-service/internal/core/domain"
	"github.com/99minutos/employee-service/internal/core/ports"
)

const (
	msgEmployeeCreated = "Employee created successfully"
	msgAdminLogin      = "Welcome admin, login successful"
	msgUserLogin       = "Login successful"
)

type AuthHandler struct {
	identity ports.IdentityService
}

func NewAuthHandler(identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type registerRequest struct {
	Username    string `json:"username"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Admin       bool   `json:"admin"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register creates a new employee account.
//
// Asking for the admin role requires a bearer token of an existing admin,
// unless no admin has been registered yet.
//
// @Summary      Register an employee
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        Authorization  header    string           false  "Bearer token of an admin (admin elevation only)"
// @Param        body           body      registerRequest  true   "Registration details"
// @Success      201            {object}  messageResponse
// @Failure      400            {object}  errorBody
// @Failure      401            {object}  errorBody
// @Failure      403            {object}  errorBody
// @Failure      500            {object}  errorBody
// @Router       /api/v1/employees/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.RegisterInput{
		Username:    req.Username,
		Designation: req.Designation,
		Email:       req.Email,
		Password:    req.Password,
		Admin:       req.Admin,
	}

	if header := c.Request().Header.Get(echo.HeaderAuthorization); req.Admin && header != "" {
		caller, err := h.identity.Authorize(c.Request().Context(), header)
		if err != nil {
			metrics.RegistrationsTotal.WithLabelValues("unauthorized").Inc()
			return err
		}
		input.Caller = caller
	}

	if _, err := h.identity.Register(c.Request().Context(), input); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationOutcome(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: msgEmployeeCreated})
}

// Login authenticates an employee and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /api/v1/employees/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.identity.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	msg := msgUserLogin
	if result.Subject.IsAdmin() {
		msg = msgAdminLogin
	}
	metrics.LoginsTotal.WithLabelValues(result.Subject.Role).Inc()

	return c.JSON(http.StatusOK, loginResponse{Message: msg, Token: result.Token})
}

func registrationOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateUser):
		return "duplicate"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrWeakPassword):
		return "invalid"
	default:
		return "error"
	}
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrForbiddenRole):
		return "forbidden_role"
	default:
		return "error"
	}
}
