package memory

import (
	"context"
	"sync"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"

	"github.com/google/uuid"
)

type MemoryInventoryRepository struct {
	items map[domain.ItemID]*domain.Item
	mu    sync.RWMutex
}

func NewMemoryInventoryRepository() ports.InventoryRepository {
	return &MemoryInventoryRepository{
		items: make(map[domain.ItemID]*domain.Item),
	}
}

func (r *MemoryInventoryRepository) Push(ctx context.Context, item *domain.Item) (domain.ItemID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = domain.ItemID(uuid.NewString())
	copied := *item
	r.items[item.ID] = &copied
	return item.ID, nil
}

func (r *MemoryInventoryRepository) GetByID(ctx context.Context, id domain.ItemID) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, domain.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *MemoryInventoryRepository) Update(ctx context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return domain.ErrItemNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *MemoryInventoryRepository) Delete(ctx context.Context, id domain.ItemID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *MemoryInventoryRepository) List(ctx context.Context) (map[domain.ItemID]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make(map[domain.ItemID]*domain.Item, len(r.items))
	for id, item := range r.items {
		copied := *item
		items[id] = &copied
	}
	return items, nil
}
