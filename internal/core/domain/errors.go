package domain

import "errors"

// Validation failures (400).
var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidUsername = errors.New("username must contain only letters and digits")
	ErrWeakPassword    = errors.New("password must be 8 characters to 72 bytes long and contain an uppercase letter, a lowercase letter, a digit and one of $ # @ *")
	ErrDuplicateUser   = errors.New("an employee with this email or username already exists")
	ErrInvalidInput    = errors.New("invalid input")
)

// Authentication failures (401).
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenRole      = errors.New("role is not allowed to log in")
	ErrMissingAuth        = errors.New("authorization header is missing")
	ErrMissingToken       = errors.New("no token provided, access denied")
	ErrInvalidToken       = errors.New("invalid token, authorization denied")
	ErrInvalidRole        = errors.New("invalid role")
)

var (
	ErrForbidden        = errors.New("access forbidden")
	ErrEmployeeNotFound = errors.New("employee not found")
)
