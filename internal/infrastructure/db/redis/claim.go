package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/employee-service/internal/core/domain"
)

const (
	defaultClaimTTL = 30 * time.Second
	bootstrapKey    = "register:bootstrap-admin"
)

// RegistrationClaim reserves an email and a username for the duration of a
// registration so that two concurrent requests for the same values cannot
// both pass the duplicate check.
// Key format: register:<kind>:<value>. Values are used verbatim so that a
// claim conflicts exactly when the store's unique indexes would.
type RegistrationClaim struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRegistrationClaim creates a RegistrationClaim wrapping the given Redis client.
func NewRegistrationClaim(client *redis.Client, ttl time.Duration) *RegistrationClaim {
	if ttl <= 0 {
		ttl = defaultClaimTTL
	}
	return &RegistrationClaim{client: client, ttl: ttl}
}

// Acquire claims both keys. It returns domain.ErrDuplicateUser when either is
// already held; any key it managed to set is released before returning.
func (r *RegistrationClaim) Acquire(ctx context.Context, email, username string) (func(context.Context), error) {
	keys := []string{r.key("email", email), r.key("username", username)}

	held := make([]string, 0, len(keys))
	release := func(ctx context.Context) {
		if len(held) > 0 {
			_ = r.client.Del(ctx, held...).Err()
		}
	}

	for _, k := range keys {
		ok, err := r.client.SetNX(ctx, k, "1", r.ttl).Result()
		if err != nil {
			release(ctx)
			return nil, fmt.Errorf("registration claim: %w", err)
		}
		if !ok {
			release(ctx)
			return nil, domain.ErrDuplicateUser
		}
		held = append(held, k)
	}

	return release, nil
}

// AcquireAdminBootstrap claims the single first-admin slot. It returns
// domain.ErrForbidden when another bootstrap registration holds it.
func (r *RegistrationClaim) AcquireAdminBootstrap(ctx context.Context) (func(context.Context), error) {
	ok, err := r.client.SetNX(ctx, bootstrapKey, "1", r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("admin bootstrap claim: %w", err)
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	return func(ctx context.Context) {
		_ = r.client.Del(ctx, bootstrapKey).Err()
	}, nil
}

func (r *RegistrationClaim) key(kind, value string) string {
	return fmt.Sprintf("register:%s:%s", kind, value)
}
