package domain

import "time"

// WishlistItem is a membership record: at most one entry per ProductID in a
// list. AddedAt is set at insertion and never changes afterwards.
type WishlistItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     Money     `json:"price"`
	Image     string    `json:"image,omitempty"`
	Slug      string    `json:"slug"`
	Category  string    `json:"category,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}
