package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisInventoryRepository stores item records as JSON blobs under prefixed
// keys, with a set acting as the collection index.
type RedisInventoryRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisInventoryRepository(client *redis.Client) ports.InventoryRepository {
	return &RedisInventoryRepository{
		client: client,
		prefix: "stockroom:inventory:",
	}
}

func (r *RedisInventoryRepository) itemKey(id domain.ItemID) string {
	return r.prefix + string(id)
}

func (r *RedisInventoryRepository) indexKey() string {
	return r.prefix + "ids"
}

func (r *RedisInventoryRepository) Push(ctx context.Context, item *domain.Item) (domain.ItemID, error) {
	item.ID = domain.ItemID(uuid.NewString())

	data, err := json.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("failed to marshal item: %w", err)
	}

	if err := r.client.Set(ctx, r.itemKey(item.ID), data, 0).Err(); err != nil {
		return "", fmt.Errorf("failed to set item in Redis: %w", err)
	}
	if err := r.client.SAdd(ctx, r.indexKey(), string(item.ID)).Err(); err != nil {
		return "", fmt.Errorf("failed to index item: %w", err)
	}

	return item.ID, nil
}

func (r *RedisInventoryRepository) GetByID(ctx context.Context, id domain.ItemID) (*domain.Item, error) {
	data, err := r.client.Get(ctx, r.itemKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item from Redis: %w", err)
	}

	var item domain.Item
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return &item, nil
}

func (r *RedisInventoryRepository) Update(ctx context.Context, item *domain.Item) error {
	if _, err := r.GetByID(ctx, item.ID); err != nil {
		return err
	}

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	if err := r.client.Set(ctx, r.itemKey(item.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to update item in Redis: %w", err)
	}
	return nil
}

func (r *RedisInventoryRepository) Delete(ctx context.Context, id domain.ItemID) error {
	if err := r.client.SRem(ctx, r.indexKey(), string(id)).Err(); err != nil {
		return fmt.Errorf("failed to deindex item: %w", err)
	}
	if err := r.client.Del(ctx, r.itemKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete item from Redis: %w", err)
	}
	return nil
}

func (r *RedisInventoryRepository) List(ctx context.Context) (map[domain.ItemID]*domain.Item, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list item ids from Redis: %w", err)
	}

	items := make(map[domain.ItemID]*domain.Item, len(ids))
	for _, idStr := range ids {
		item, err := r.GetByID(ctx, domain.ItemID(idStr))
		if err != nil {
			// Skip records removed between the index read and the fetch.
			continue
		}
		items[item.ID] = item
	}
	return items, nil
}
