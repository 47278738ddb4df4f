package syncer

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/webmall/storesync/internal/domain"
	"github.com/webmall/storesync/internal/notify"
	"github.com/webmall/storesync/internal/port"
)

// Cart is the cart instantiation of the engine: lines keyed by
// (productID, variantID), guest merge at login, quantity arithmetic.
type Cart struct {
	engine *Engine[domain.CartItem]
	remote port.CartRemote
	sink   *notify.Sink
	newID  func() string
}

func NewCart(kv port.KeyValueStore, remote port.CartRemote, opts ...Option) (*Cart, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv store is nil")
	}
	if remote == nil {
		return nil, fmt.Errorf("remote is nil")
	}

	o := applyOptions(opts)
	return &Cart{
		engine: newEngine[domain.CartItem]("cart", kv, remote, true, o.logger),
		remote: remote,
		sink:   o.sink,
		newID:  o.newID,
	}, nil
}

// SetIdentity reconciles the cart for a new identity; call it at startup and
// on every login or logout, and again once a pending identity resolves.
func (c *Cart) SetIdentity(ctx context.Context, id domain.Identity) {
	c.engine.SetIdentity(ctx, id)
}

// Add puts the item in the cart, folding it into an existing line for the
// same product and variant. A non-positive quantity is coerced to 1. The
// remote call carries the resulting line quantity, not the delta.
func (c *Cart) Add(ctx context.Context, item domain.CartItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	key := domain.LineKey(item.ProductID, item.VariantID)
	var (
		merged   bool
		finalQty int
	)
	c.engine.Update(ctx, func(items []domain.CartItem) []domain.CartItem {
		for i := range items {
			if items[i].LineKey() == key {
				items[i].Quantity += quantity
				merged = true
				finalQty = items[i].Quantity
				return items
			}
		}

		item.ID = c.newID()
		item.Quantity = quantity
		finalQty = quantity
		return append(items, item)
	})

	action := port.ActionAdd
	if merged {
		action = port.ActionUpdate
		c.sink.Success("Cart updated")
	} else {
		c.sink.Success(item.Name + " added to cart")
	}

	mutation := port.CartMutation{
		Action:            action,
		ProductID:         item.ProductID,
		Quantity:          finalQty,
		VariantID:         item.VariantID,
		VariantName:       item.VariantName,
		VariantAttributes: item.VariantAttributes,
	}
	c.engine.Background(func(ctx context.Context) error {
		return c.remote.Apply(ctx, mutation)
	})
}

// Remove deletes the line for the product and variant. Without a match it is
// a no-op: no notification, no remote call.
func (c *Cart) Remove(ctx context.Context, productID, variantID string) {
	if !c.removeLine(ctx, productID, variantID) {
		return
	}

	c.sink.Success("Removed from cart")
}

// UpdateQuantity sets the line's quantity. A non-positive quantity removes
// the line instead of storing it, silently.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int, variantID string) {
	if quantity < 1 {
		c.removeLine(ctx, productID, variantID)
		return
	}

	key := domain.LineKey(productID, variantID)
	var (
		found bool
		line  domain.CartItem
	)
	c.engine.Update(ctx, func(items []domain.CartItem) []domain.CartItem {
		for i := range items {
			if items[i].LineKey() == key {
				items[i].Quantity = quantity
				found = true
				line = items[i]
				break
			}
		}
		return items
	})
	if !found {
		return
	}

	mutation := port.CartMutation{
		Action:            port.ActionUpdate,
		ProductID:         productID,
		Quantity:          quantity,
		VariantID:         variantID,
		VariantName:       line.VariantName,
		VariantAttributes: line.VariantAttributes,
	}
	c.engine.Background(func(ctx context.Context) error {
		return c.remote.Apply(ctx, mutation)
	})
}

// Clear empties the cart without waiting for the remote delete.
func (c *Cart) Clear(ctx context.Context) {
	c.engine.Update(ctx, func([]domain.CartItem) []domain.CartItem {
		return []domain.CartItem{}
	})

	c.sink.Success("Cart cleared")
	c.engine.Background(func(ctx context.Context) error {
		return c.remote.Clear(ctx)
	})
}

func (c *Cart) removeLine(ctx context.Context, productID, variantID string) bool {
	key := domain.LineKey(productID, variantID)
	var removed bool
	c.engine.Update(ctx, func(items []domain.CartItem) []domain.CartItem {
		for i := range items {
			if items[i].LineKey() == key {
				removed = true
				return append(items[:i], items[i+1:]...)
			}
		}
		return items
	})
	if !removed {
		return false
	}

	c.engine.Background(func(ctx context.Context) error {
		return c.remote.Apply(ctx, port.CartMutation{
			Action:    port.ActionRemove,
			ProductID: productID,
			VariantID: variantID,
		})
	})
	return true
}

func (c *Cart) Items() []domain.CartItem {
	return c.engine.Items()
}

func (c *Cart) Loading() bool {
	return c.engine.Loading()
}

// TotalItems is the sum of line quantities.
func (c *Cart) TotalItems() int {
	var total int
	for _, item := range c.engine.Items() {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price × quantity per line in exact decimal arithmetic.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.engine.Items() {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OnChange registers a re-render hook; see Engine.OnChange.
func (c *Cart) OnChange(fn func([]domain.CartItem)) {
	c.engine.OnChange(fn)
}

// Wait joins all in-flight background remote calls.
func (c *Cart) Wait() {
	c.engine.Wait()
}
