package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrVerifyTokenUnknown is returned for expired, consumed or never
// issued verification tokens. One error covers all three so the
// response cannot be used to probe which addresses are registered.
var ErrVerifyTokenUnknown = errors.New("unknown verification token")

// VerifyStore keeps email-verification tokens in Redis with a TTL, so
// expiry needs no sweeper. With a nil client every token is unknown,
// which fails closed when Redis is down at startup.
type VerifyStore struct {
	RDB *redis.Client
}

func NewVerifyStore(rdb *redis.Client) *VerifyStore { return &VerifyStore{RDB: rdb} }

func verifyKey(token string) string { return "verify:" + token }

// Save stores token -> userID for ttl.
func (s *VerifyStore) Save(ctx context.Context, token string, userID uint64, ttl time.Duration) error {
	if s.RDB == nil {
		return errors.New("verification store unavailable")
	}
	return s.RDB.Set(ctx, verifyKey(token), userID, ttl).Err()
}

// Consume resolves and deletes a token in one step so each token can
// only be used once.
func (s *VerifyStore) Consume(ctx context.Context, token string) (uint64, error) {
	if s.RDB == nil || token == "" {
		return 0, ErrVerifyTokenUnknown
	}
	val, err := s.RDB.GetDel(ctx, verifyKey(token)).Uint64()
	if err == redis.Nil {
		return 0, ErrVerifyTokenUnknown
	}
	if err != nil {
		return 0, fmt.Errorf("verify store: %w", err)
	}
	return val, nil
}
