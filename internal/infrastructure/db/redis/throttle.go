package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	resetKeyPrefix  = "pwreset:"
	defaultCooldown = 15 * time.Minute
)

// ResetThrottle rate-limits password-reset requests per email address.
// One request is allowed per cooldown window; the window is tracked with
// a TTL key so no cleanup job is needed.
type ResetThrottle struct {
	client   *redis.Client
	cooldown time.Duration
}

func NewResetThrottle(client *redis.Client, cooldown time.Duration) *ResetThrottle {
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &ResetThrottle{client: client, cooldown: cooldown}
}

// Allow reports whether the email is outside its cooldown window.
func (t *ResetThrottle) Allow(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Exists(ctx, resetKeyPrefix+email).Result()
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Mark opens a cooldown window for the email.
func (t *ResetThrottle) Mark(ctx context.Context, email string) error {
	return t.client.Set(ctx, resetKeyPrefix+email, time.Now().UTC().Format(time.RFC3339), t.cooldown).Err()
}
