package pos

import "github.com/tillworks/tillpos/internal/domain"

// CartTotals is the derived money view of a cart. Values are raw
// arithmetic; rounding happens when a figure is persisted or shown.
type CartTotals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// CalculateCartTotals is the single source of truth for tax: both the
// on-screen preview and the checkout transaction are built from it, so
// the two can never drift.
func CalculateCartTotals(items []domain.CartItem, taxRate float64) CartTotals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Subtotal
	}
	tax := subtotal * taxRate
	return CartTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
