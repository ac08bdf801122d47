package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bookings/entity"
)

const keyPrefix = "admin_session:"

// RedisRepository stores admin sessions as opaque ids with a TTL. The value
// is the username the session was issued for.
type RedisRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRepository(rdb *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisRepository) Create(ctx context.Context, username string) (string, error) {
	sessionID := uuid.NewString()
	if err := r.rdb.Set(ctx, keyPrefix+sessionID, username, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("could not store session: %w", err)
	}
	return sessionID, nil
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (string, error) {
	username, err := r.rdb.Get(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("session: %w", entity.ErrNotFound)
		}
		return "", fmt.Errorf("could not load session: %w", err)
	}
	return username, nil
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}
	return nil
}
