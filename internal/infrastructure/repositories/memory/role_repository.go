package memory

import (
	"context"
	"sync"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"
)

type MemoryRoleRepository struct {
	roles map[domain.UserID]domain.Role
	mu    sync.RWMutex
}

func NewMemoryRoleRepository() ports.RoleRepository {
	return &MemoryRoleRepository{
		roles: make(map[domain.UserID]domain.Role),
	}
}

func (r *MemoryRoleRepository) Get(ctx context.Context, uid domain.UserID) (domain.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, exists := r.roles[uid]
	if !exists {
		return "", domain.ErrRoleNotFound
	}
	return role, nil
}

func (r *MemoryRoleRepository) Set(ctx context.Context, uid domain.UserID, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.roles[uid] = role
	return nil
}
