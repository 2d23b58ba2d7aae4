package domain

import "time"

type ItemID string

// Item is an inventory record as stored in the KV document store.
// ImageURL is nil when the item has no image or the upload failed.
type Item struct {
	ID       ItemID  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	ImageURL *string `json:"imageURL"`
	OwnerUID UserID  `json:"ownerUID"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// QuantityAction is the verb accepted by the quantity-adjust operation.
type QuantityAction string

const (
	ActionIncrease QuantityAction = "increase"
	ActionDecrease QuantityAction = "decrease"
)

// ChangeEvent describes a committed inventory mutation, as broadcast on the
// live updates feed.
type ChangeEvent struct {
	Type        string  `json:"type"`
	ItemID      ItemID  `json:"item_id"`
	NewQuantity *int    `json:"new_quantity,omitempty"`
}

const (
	EventItemAdded        = "item_added"
	EventItemDeleted      = "item_deleted"
	EventQuantityAdjusted = "quantity_adjusted"
)

// AggregateView is the derived dashboard view, recomputed on every read.
type AggregateView struct {
	TotalValue     float64            `json:"total_value"`
	TotalItems     int                `json:"total_items"`
	CategoryCounts map[string]int     `json:"category_counts"`
	CategoryValues map[string]float64 `json:"category_values"`
}
