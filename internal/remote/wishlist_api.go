package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/webmall/storesync/internal/domain"
	"github.com/webmall/storesync/internal/port"
)

const wishlistPath = "/api/wishlist"

type wishlistAPI struct {
	c *client
}

// NewWishlist returns the adapter for the remote wishlist API: GET current
// items, POST one product, DELETE one product by query, DELETE all.
func NewWishlist(cfg Config) (port.WishlistRemote, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("newClient: %w", err)
	}

	return &wishlistAPI{c: c}, nil
}

type wishlistItemsPayload struct {
	Items []domain.WishlistItem `json:"items"`
}

type wishlistAddPayload struct {
	ProductID string `json:"productId"`
}

func (a *wishlistAPI) Fetch(ctx context.Context) ([]domain.WishlistItem, error) {
	var out wishlistItemsPayload
	if err := a.c.do(ctx, http.MethodGet, wishlistPath, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("client.do: %w", err)
	}

	return out.Items, nil
}

// MergeInto is unsupported: the wishlist API has no bulk-merge endpoint and a
// guest wishlist is not incorporated at login.
func (a *wishlistAPI) MergeInto(_ context.Context, _ []domain.WishlistItem) ([]domain.WishlistItem, error) {
	return nil, fmt.Errorf("wishlist API has no bulk merge endpoint")
}

func (a *wishlistAPI) Push(ctx context.Context, items []domain.WishlistItem) error {
	for _, item := range items {
		if err := a.Add(ctx, item.ProductID); err != nil {
			return fmt.Errorf("Add[%s]: %w", item.ProductID, err)
		}
	}

	return nil
}

func (a *wishlistAPI) Add(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("productID is empty")
	}

	if err := a.c.do(ctx, http.MethodPost, wishlistPath, nil, wishlistAddPayload{ProductID: productID}, nil); err != nil {
		return fmt.Errorf("client.do: %w", err)
	}

	return nil
}

func (a *wishlistAPI) Remove(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("productID is empty")
	}

	query := url.Values{"productId": []string{productID}}
	if err := a.c.do(ctx, http.MethodDelete, wishlistPath, query, nil, nil); err != nil {
		return fmt.Errorf("client.do: %w", err)
	}

	return nil
}

func (a *wishlistAPI) Clear(ctx context.Context) error {
	if err := a.c.do(ctx, http.MethodDelete, wishlistPath, nil, nil, nil); err != nil {
		return fmt.Errorf("client.do: %w", err)
	}

	return nil
}
