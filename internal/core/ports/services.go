package ports

import (
	"context"
	"io"

	"stockroom/internal/core/domain"
)

// TokenClaims is what a verified identity token yields.
type TokenClaims struct {
	UID   domain.UserID
	Email string
}

// TokenVerifier validates an opaque identity token issued by the external
// identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*TokenClaims, error)
}

// AssetUploader stores image bytes with an external host and returns the
// public URL. Failures are expected to be non-fatal to callers.
type AssetUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// NewItem carries the raw form fields for item creation. Quantity and Price
// arrive as uncoerced strings per the lenient-input policy.
type NewItem struct {
	Name     string
	Quantity string
	Price    string
	Category string
}

type InventoryService interface {
	List(ctx context.Context) (map[domain.ItemID]*domain.Item, error)
	Add(ctx context.Context, fields NewItem, image io.Reader, imageName string, owner domain.UserID) (domain.ItemID, error)
	Delete(ctx context.Context, id domain.ItemID) error
	AdjustQuantity(ctx context.Context, id domain.ItemID, action domain.QuantityAction) (int, error)
	Aggregates(ctx context.Context) (*domain.AggregateView, error)
}

// SessionService resolves and manages authenticated identities. Login covers
// both the explicit login flow and the silent cookie refresh; callers decide
// whether a failure is fatal.
type SessionService interface {
	// Login verifies an ID token, resolves the role and creates a session.
	Login(ctx context.Context, idToken string) (sid string, identity *domain.Identity, err error)
	// Resolve returns the identity for an existing session id, or
	// domain.ErrSessionNotFound.
	Resolve(ctx context.Context, sid string) (*domain.Identity, error)
	Logout(ctx context.Context, sid string) error
	// ResolveRole applies the first-touch default-viewer policy.
	ResolveRole(ctx context.Context, uid domain.UserID) (domain.Role, error)
}

// EventPublisher broadcasts inventory change events to live subscribers.
type EventPublisher interface {
	PublishChange(event domain.ChangeEvent)
}

// MetricsRecorder receives domain-level measurements.
type MetricsRecorder interface {
	RecordMutation(op string)
	RecordUploadFailure()
	RecordSessionCreated()
}
