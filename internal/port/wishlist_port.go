package port

import (
	"context"

	"github.com/webmall/storesync/internal/domain"
)

type WishlistRemote interface {
	RemoteStore[domain.WishlistItem]

	Add(ctx context.Context, productID string) error
	Remove(ctx context.Context, productID string) error
}
