package service

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/employee-service/internal/core/domain"
)

const (
	minPasswordLength = 8
	// bcrypt only accepts up to 72 bytes of input.
	maxPasswordBytes = 72
	passwordSpecials = "$#@*"
)

// newValidator returns a validator with the "password" policy tag registered.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	return v
}

// StrongPassword reports whether p is at least 8 characters and at most 72
// bytes long and contains an uppercase letter, a lowercase letter, a digit and
// one of $ # @ *.
func StrongPassword(p string) bool {
	if len([]rune(p)) < minPasswordLength || len(p) > maxPasswordBytes {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

func validateEmail(v *validator.Validate, email string) error {
	if v.Var(email, "required,email") != nil {
		return domain.ErrInvalidEmail
	}
	return nil
}

func validateUsername(v *validator.Validate, username string) error {
	if v.Var(username, "required,alphanum") != nil {
		return domain.ErrInvalidUsername
	}
	return nil
}

func validatePassword(v *validator.Validate, password string) error {
	if v.Var(password, "password") != nil {
		return domain.ErrWeakPassword
	}
	return nil
}
