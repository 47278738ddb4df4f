package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/webmall/storesync/internal/domain"
	"github.com/webmall/storesync/internal/port"
)

const cartPath = "/api/cart"

type cartAPI struct {
	c *client
}

// NewCart returns the adapter for the remote cart API: GET current items,
// POST bulk-merge, PUT one incremental mutation, DELETE all.
func NewCart(cfg Config) (port.CartRemote, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("newClient: %w", err)
	}

	return &cartAPI{c: c}, nil
}

type cartItemsPayload struct {
	Items []domain.CartItem `json:"items"`
}

func (a *cartAPI) Fetch(ctx context.Context) ([]domain.CartItem, error) {
	var out cartItemsPayload
	if err := a.c.do(ctx, http.MethodGet, cartPath, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("client.do: %w", err)
	}

	return out.Items, nil
}

func (a *cartAPI) MergeInto(ctx context.Context, items []domain.CartItem) ([]domain.CartItem, error) {
	var out cartItemsPayload
	if err := a.c.do(ctx, http.MethodPost, cartPath, nil, cartItemsPayload{Items: items}, &out); err != nil {
		return nil, fmt.Errorf("client.do: %w", err)
	}

	return out.Items, nil
}

func (a *cartAPI) Push(ctx context.Context, items []domain.CartItem) error {
	if _, err := a.MergeInto(ctx, items); err != nil {
		return fmt.Errorf("MergeInto: %w", err)
	}

	return nil
}

func (a *cartAPI) Apply(ctx context.Context, m port.CartMutation) error {
	if err := a.c.do(ctx, http.MethodPut, cartPath, nil, m, nil); err != nil {
		return fmt.Errorf("client.do: %w", err)
	}

	return nil
}

func (a *cartAPI) Clear(ctx context.Context) error {
	if err := a.c.do(ctx, http.MethodDelete, cartPath, nil, nil, nil); err != nil {
		return fmt.Errorf("client.do: %w", err)
	}

	return nil
}
