package pos

import (
	"github.com/tillworks/tillpos/internal/domain"
	"github.com/tillworks/tillpos/pkg/common"
)

// Cart returns a copy of the active cart lines.
func (s *Service) Cart() []domain.CartItem {
	out := make([]domain.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// AddToCart puts one unit of the product in the cart. If the product
// is already there the quantity is bumped by one, never past the
// product's current stock.
func (s *Service) AddToCart(productID string) error {
	p, err := s.FindProduct(productID)
	if err != nil {
		return err
	}
	if p.Stock == 0 {
		return ErrOutOfStock
	}
	for i := range s.cart {
		if s.cart[i].ID == productID {
			if s.cart[i].Quantity >= p.Stock {
				return ErrOutOfStock
			}
			return s.UpdateCartQuantity(productID, s.cart[i].Quantity+1)
		}
	}
	s.cart = append(s.cart, domain.CartItem{
		Product:  *p,
		Quantity: 1,
		Subtotal: p.Price,
	})
	s.bus.Publish(TopicCartChanged, s.Cart())
	return nil
}

// UpdateCartQuantity sets an item's quantity, clamped to the product's
// current stock. A quantity of zero or less removes the item.
func (s *Service) UpdateCartQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(productID)
	}
	for i := range s.cart {
		if s.cart[i].ID != productID {
			continue
		}
		limit := s.cart[i].Stock
		if p, err := s.FindProduct(productID); err == nil {
			limit = p.Stock
		}
		if quantity > limit {
			quantity = limit
		}
		s.cart[i].Quantity = quantity
		s.cart[i].Subtotal = s.cart[i].Price * float64(quantity)
		s.bus.Publish(TopicCartChanged, s.Cart())
		return nil
	}
	return ErrNotInCart
}

func (s *Service) RemoveFromCart(productID string) error {
	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			s.bus.Publish(TopicCartChanged, s.Cart())
			return nil
		}
	}
	return ErrNotInCart
}

// ClearCart empties the cart and resets the attached customer and
// discount to their defaults.
func (s *Service) ClearCart() {
	s.resetSale()
	s.bus.Publish(TopicCartChanged, s.Cart())
}

// CartTotals derives subtotal, tax and total for the active cart using
// the configured tax rate.
func (s *Service) CartTotals() CartTotals {
	return CalculateCartTotals(s.cart, s.settings.TaxRate)
}

// CheckoutPreview is the on-screen money summary before payment.
type CheckoutPreview struct {
	Subtotal float64
	Tax      float64
	Discount float64
	Total    float64
}

// PreviewCheckout applies the current discount percent to the cart
// totals. The same figures are written to the transaction at checkout.
func (s *Service) PreviewCheckout() CheckoutPreview {
	t := s.CartTotals()
	discount := common.RoundCents(t.Subtotal * s.discountPct / 100)
	return CheckoutPreview{
		Subtotal: common.RoundCents(t.Subtotal),
		Tax:      common.RoundCents(t.Tax),
		Discount: discount,
		Total:    common.RoundCents(t.Total - discount),
	}
}
