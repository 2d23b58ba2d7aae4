package ports

import (
	"context"
	"time"

	"stockroom/internal/core/domain"
)

// InventoryRepository is the KV document store holding item records.
// Push generates the record id; Update persists the full record in place.
type InventoryRepository interface {
	Push(ctx context.Context, item *domain.Item) (domain.ItemID, error)
	GetByID(ctx context.Context, id domain.ItemID) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id domain.ItemID) error
	List(ctx context.Context) (map[domain.ItemID]*domain.Item, error)
}

// RoleRepository maps uid -> role. Get returns domain.ErrRoleNotFound for
// unknown uids; the default-viewer policy lives in the service layer.
type RoleRepository interface {
	Get(ctx context.Context, uid domain.UserID) (domain.Role, error)
	Set(ctx context.Context, uid domain.UserID, role domain.Role) error
}

// SessionRepository holds server-side sessions keyed by opaque session id.
type SessionRepository interface {
	Get(ctx context.Context, sid string) (*domain.Identity, error)
	Set(ctx context.Context, sid string, identity *domain.Identity, ttl time.Duration) error
	Delete(ctx context.Context, sid string) error
}
