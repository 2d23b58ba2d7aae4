package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// RedisSessionRepository stores identities under session-id keys with a TTL,
// so expiry is handled by the store itself.
type RedisSessionRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisSessionRepository(client *redis.Client) ports.SessionRepository {
	return &RedisSessionRepository{
		client: client,
		prefix: "stockroom:session:",
	}
}

func (r *RedisSessionRepository) sessionKey(sid string) string {
	return r.prefix + sid
}

func (r *RedisSessionRepository) Get(ctx context.Context, sid string) (*domain.Identity, error) {
	data, err := r.client.Get(ctx, r.sessionKey(sid)).Result()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(data), &identity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &identity, nil
}

func (r *RedisSessionRepository) Set(ctx context.Context, sid string, identity *domain.Identity, ttl time.Duration) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, r.sessionKey(sid), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session in Redis: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.sessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}
