package ports

import "github.com/99minutos/employee-service/internal/core/domain"

// PasswordCodec hashes and verifies passwords.
type PasswordCodec interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenService issues and verifies signed access tokens.
type TokenService interface {
	Issue(subject domain.Subject) (string, error)
	Verify(token string) (*domain.Subject, error)
}
