package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/webmall/storesync/internal/domain"
	"github.com/webmall/storesync/internal/notify"
	"github.com/webmall/storesync/internal/port"
)

// Wishlist is the membership instantiation of the engine: at most one entry
// per product, no guest merge at login. A guest wishlist stays behind in its
// partition when the user signs in.
type Wishlist struct {
	engine *Engine[domain.WishlistItem]
	remote port.WishlistRemote
	sink   *notify.Sink
	now    func() time.Time
	newID  func() string
}

func NewWishlist(kv port.KeyValueStore, remote port.WishlistRemote, opts ...Option) (*Wishlist, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv store is nil")
	}
	if remote == nil {
		return nil, fmt.Errorf("remote is nil")
	}

	o := applyOptions(opts)
	return &Wishlist{
		engine: newEngine[domain.WishlistItem]("wishlist", kv, remote, false, o.logger),
		remote: remote,
		sink:   o.sink,
		now:    o.now,
		newID:  o.newID,
	}, nil
}

// SetIdentity reconciles the wishlist for a new identity.
func (w *Wishlist) SetIdentity(ctx context.Context, id domain.Identity) {
	w.engine.SetIdentity(ctx, id)
}

// Add records the product once, stamping addedAt at insertion. Adding it
// again is reported to the user but changes nothing and stays off the wire.
func (w *Wishlist) Add(ctx context.Context, item domain.WishlistItem) {
	var duplicate bool
	w.engine.Update(ctx, func(items []domain.WishlistItem) []domain.WishlistItem {
		for _, existing := range items {
			if existing.ProductID == item.ProductID {
				duplicate = true
				return items
			}
		}

		item.ID = w.newID()
		item.AddedAt = w.now().UTC()
		return append(items, item)
	})

	if duplicate {
		w.sink.Info(item.Name + " is already in your wishlist")
		return
	}

	w.sink.Success(item.Name + " added to wishlist")
	productID := item.ProductID
	w.engine.Background(func(ctx context.Context) error {
		return w.remote.Add(ctx, productID)
	})
}

// Remove drops the product's entry, matching by product ID alone. Without a
// match it is a no-op.
func (w *Wishlist) Remove(ctx context.Context, productID string) {
	var removed bool
	w.engine.Update(ctx, func(items []domain.WishlistItem) []domain.WishlistItem {
		for i := range items {
			if items[i].ProductID == productID {
				removed = true
				return append(items[:i], items[i+1:]...)
			}
		}
		return items
	})
	if !removed {
		return
	}

	w.sink.Success("Removed from wishlist")
	w.engine.Background(func(ctx context.Context) error {
		return w.remote.Remove(ctx, productID)
	})
}

// Clear empties the wishlist without waiting for the remote delete.
func (w *Wishlist) Clear(ctx context.Context) {
	w.engine.Update(ctx, func([]domain.WishlistItem) []domain.WishlistItem {
		return []domain.WishlistItem{}
	})

	w.sink.Success("Wishlist cleared")
	w.engine.Background(func(ctx context.Context) error {
		return w.remote.Clear(ctx)
	})
}

// Has reports whether the product is in the wishlist.
func (w *Wishlist) Has(productID string) bool {
	for _, item := range w.engine.Items() {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) Items() []domain.WishlistItem {
	return w.engine.Items()
}

func (w *Wishlist) Loading() bool {
	return w.engine.Loading()
}

// TotalItems is the number of entries.
func (w *Wishlist) TotalItems() int {
	return len(w.engine.Items())
}

// OnChange registers a re-render hook; see Engine.OnChange.
func (w *Wishlist) OnChange(fn func([]domain.WishlistItem)) {
	w.engine.OnChange(fn)
}

// Wait joins all in-flight background remote calls.
func (w *Wishlist) Wait() {
	w.engine.Wait()
}
