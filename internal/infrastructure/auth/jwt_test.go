package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/employee-service/internal/core/domain"
)

func newTestJWT(t *testing.T, secret string) *JWTService {
	t.Helper()
	svc, err := NewJWTService(secret, time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWT(t, "secret")
	subject := domain.Subject{ID: 1000, Username: "alice1", Role: domain.RoleUser}

	token, err := svc.Issue(subject)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, subject, *got)
}

func TestJWTService_PayloadShape(t *testing.T) {
	svc := newTestJWT(t, "secret")
	token, err := svc.Issue(domain.Subject{ID: 1001, Username: "bob", Role: domain.RoleAdmin})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)

	user, ok := claims["user"].(map[string]any)
	require.True(t, ok, "expected nested user claim")
	assert.Equal(t, float64(1001), user["id"])
	assert.Equal(t, "bob", user["username"])
	assert.Equal(t, domain.RoleAdmin, user["role"])
	assert.Contains(t, claims, "exp")
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWT(t, "secret")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Issue(domain.Subject{ID: 1000, Username: "alice1", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_TamperedSignature(t *testing.T) {
	svc := newTestJWT(t, "secret")
	token, err := svc.Issue(domain.Subject{ID: 1000, Username: "alice1", Role: domain.RoleUser})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTService_TamperedPayload(t *testing.T) {
	svc := newTestJWT(t, "secret")
	token, err := svc.Issue(domain.Subject{ID: 1000, Username: "alice1", Role: domain.RoleUser})
	require.NoError(t, err)

	forged, err := newTestJWT(t, "secret").Issue(domain.Subject{ID: 1000, Username: "alice1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	_, err = svc.Verify(parts[0] + "." + forgedParts[1] + "." + parts[2])
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := newTestJWT(t, "secret1").Issue(domain.Subject{ID: 1, Username: "a", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = newTestJWT(t, "secret2").Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	claims := tokenClaims{
		User: domain.Subject{ID: 1, Username: "a", Role: domain.RoleAdmin},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestJWT(t, "secret").Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTService_Malformed(t *testing.T) {
	_, err := newTestJWT(t, "secret").Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
