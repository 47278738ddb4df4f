package port

import (
	"context"

	"github.com/webmall/storesync/internal/domain"
)

// RemoteStore is the per-collection reconciliation surface of the remote API.
type RemoteStore[T any] interface {
	// Fetch returns the caller's current server-side list.
	Fetch(ctx context.Context) ([]T, error)

	// MergeInto sends locally held items for the server to incorporate into
	// the caller's list and returns the merged, de-duplicated result.
	MergeInto(ctx context.Context, items []T) ([]T, error)

	// Push uploads the given list best-effort, used after an offline
	// fallback. A failed push is not retried.
	Push(ctx context.Context, items []T) error

	// Clear deletes all items for the caller.
	Clear(ctx context.Context) error
}

type MutationAction string

const (
	ActionAdd    MutationAction = "add"
	ActionUpdate MutationAction = "update"
	ActionRemove MutationAction = "remove"
)

// CartMutation is one incremental cart change. Quantity carries the final
// line quantity rather than a delta, so a replayed delivery lands on the same
// state. Variant metadata rides along because the server has no other source
// for display fields.
type CartMutation struct {
	Action            MutationAction    `json:"action"`
	ProductID         string            `json:"productId"`
	Quantity          int               `json:"quantity,omitempty"`
	VariantID         string            `json:"variantId,omitempty"`
	VariantName       string            `json:"variantName,omitempty"`
	VariantAttributes map[string]string `json:"variantAttributes,omitempty"`
}

type CartRemote interface {
	RemoteStore[domain.CartItem]

	// Apply sends one incremental mutation.
	Apply(ctx context.Context, m CartMutation) error
}
