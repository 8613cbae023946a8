// internal/otp/store.go
// Redis-backed code store. Codes are single-use and expire with the key,
// so no cleanup job is needed.

package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store persists pending verification codes.
type Store interface {
	Save(ctx context.Context, recipient string, purpose Purpose, code string, expiry time.Duration) error
	// Consume atomically checks and deletes the code. It returns
	// ErrCodeInvalid on mismatch and ErrCodeExpired when no code is
	// pending for the recipient/purpose pair.
	Consume(ctx context.Context, recipient string, purpose Purpose, code string) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func codeKey(recipient string, purpose Purpose) string {
	return fmt.Sprintf("otp:%s:%s", purpose, recipient)
}

func (s *redisStore) Save(ctx context.Context, recipient string, purpose Purpose, code string, expiry time.Duration) error {
	if err := s.client.Set(ctx, codeKey(recipient, purpose), code, expiry).Err(); err != nil {
		return fmt.Errorf("save verification code: %w", err)
	}
	return nil
}

// Lua script so check-and-delete is a single round trip with no race
// between two concurrent verification attempts.
var consumeScript = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if not stored then
    return -1
end
if stored ~= ARGV[1] then
    return 0
end
redis.call("DEL", KEYS[1])
return 1
`)

func (s *redisStore) Consume(ctx context.Context, recipient string, purpose Purpose, code string) error {
	result, err := consumeScript.Run(ctx, s.client, []string{codeKey(recipient, purpose)}, code).Int()
	if err != nil {
		return fmt.Errorf("consume verification code: %w", err)
	}
	switch result {
	case -1:
		return ErrCodeExpired
	case 0:
		return ErrCodeInvalid
	}
	return nil
}
