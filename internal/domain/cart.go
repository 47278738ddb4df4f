package domain

import (
	"github.com/shopspring/decimal"
)

// CartItem is one line item in a cart. Two entries are the same line iff both
// ProductID and VariantID match; an empty VariantID matches only other lines
// with an empty VariantID.
type CartItem struct {
	ID                string            `json:"id"`
	ProductID         string            `json:"productId"`
	VariantID         string            `json:"variantId,omitempty"`
	Name              string            `json:"name"`
	Price             decimal.Decimal   `json:"price"`
	Quantity          int               `json:"quantity"`
	Image             string            `json:"image,omitempty"`
	Slug              string            `json:"slug"`
	VariantName       string            `json:"variantName,omitempty"`
	VariantAttributes map[string]string `json:"variantAttributes,omitempty"`
}

// LineKey identifies "the same line item" for merge and lookup purposes.
func LineKey(productID, variantID string) string {
	if variantID == "" {
		return productID
	}
	return productID + "#" + variantID
}

func (i CartItem) LineKey() string {
	return LineKey(i.ProductID, i.VariantID)
}

// Subtotal is price × quantity in exact decimal arithmetic.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
