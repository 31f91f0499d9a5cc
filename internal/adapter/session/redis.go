package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"disaster-intake-api/internal/usecase/auth"
	"disaster-intake-api/pkg/id"
)

const keyPrefix = "session:"

// RedisStore implements auth.SessionStore with opaque hex tokens and a
// sliding TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Issue(ctx context.Context, code int) (string, error) {
	token := id.NewID32()
	if err := s.rdb.Set(ctx, keyPrefix+token, strconv.Itoa(code), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Code(ctx context.Context, token string) (int, error) {
	v, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, auth.ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	code, err := strconv.Atoi(v)
	if err != nil {
		return 0, auth.ErrNoSession
	}
	// touch the TTL so active sessions stay alive
	_ = s.rdb.Expire(ctx, keyPrefix+token, s.ttl).Err()
	return code, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}
