package pos

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/tillworks/tillpos/internal/domain"
	"github.com/tillworks/tillpos/pkg/common"
	"github.com/tillworks/tillpos/pkg/validate"
)

// CompleteCheckout turns the active cart into an immutable transaction:
// it fixes the totals, decrements stock for every purchased product,
// accrues loyalty when a customer is attached and the program is
// enabled, prepends the transaction to the history and clears the
// cart. Stock and loyalty are driven by the snapshot, never by state
// mutated afterwards.
//
// For cash payments amountPaid is the cash received and must cover the
// total; for card payments amountPaid is ignored.
func (s *Service) CompleteCheckout(paymentMethod string, amountPaid float64) (*domain.Transaction, error) {
	if len(s.cart) == 0 {
		return nil, ErrEmptyCart
	}

	totals := s.CartTotals()
	discount := common.RoundCents(totals.Subtotal * s.discountPct / 100)
	finalTotal := common.RoundCents(totals.Total - discount)

	if paymentMethod == domain.PayCash && common.RoundCents(amountPaid) < finalTotal {
		return nil, ErrInsufficientCash
	}

	items := make([]domain.CartItem, len(s.cart))
	copy(items, s.cart)

	tx := domain.Transaction{
		ID:            common.NewID(),
		Items:         items,
		Subtotal:      common.RoundCents(totals.Subtotal),
		Tax:           common.RoundCents(totals.Tax),
		Discount:      discount,
		Total:         finalTotal,
		PaymentMethod: paymentMethod,
		Timestamp:     time.Now(),
		Cashier:       s.cashier,
	}
	if paymentMethod == domain.PayCash {
		tx.CashReceived = common.RoundCents(amountPaid)
	}

	customer := s.SelectedCustomer()
	if customer != nil {
		tx.CustomerID = customer.ID
		tx.CustomerName = customer.Name
	}

	// Stock decrements follow the snapshot quantities. They are staged
	// on a copy so a failed save restores the pre-checkout collections
	// and leaves the cart in place for a retry.
	products := make([]domain.Product, len(s.products))
	copy(products, s.products)
	for _, it := range items {
		for i := range products {
			if products[i].ID == it.ID {
				products[i].Stock -= it.Quantity
				break
			}
		}
	}

	customers := s.customers
	customersDirty := false
	if customer != nil && s.settings.EnableLoyaltyProgram {
		points := int(math.Floor(finalTotal * s.settings.LoyaltyPointsRate))
		customers = make([]domain.Customer, len(s.customers))
		copy(customers, s.customers)
		for i := range customers {
			if customers[i].ID == customer.ID {
				customers[i].LoyaltyPoints += points
				customers[i].TotalSpent = common.RoundCents(customers[i].TotalSpent + finalTotal)
				customersDirty = true
				break
			}
		}
	}

	prevProducts, prevCustomers, prevTransactions := s.products, s.customers, s.transactions
	s.products = products
	s.customers = customers
	s.transactions = append([]domain.Transaction{tx}, s.transactions...)
	rollback := func() {
		s.products, s.customers, s.transactions = prevProducts, prevCustomers, prevTransactions
	}

	if err := s.saveProducts(); err != nil {
		rollback()
		return nil, err
	}
	if customersDirty {
		if err := s.saveCustomers(); err != nil {
			rollback()
			return nil, err
		}
	}
	if err := s.saveTransactions(); err != nil {
		rollback()
		return nil, err
	}

	s.ClearCart()

	zap.S().Infow("checkout completed",
		"receipt", tx.ID,
		"items", len(tx.Items),
		"total", tx.Total,
		"method", tx.PaymentMethod,
	)
	s.bus.Publish(TopicCheckoutCompleted, &tx)
	return &tx, nil
}

// ValidateCardNumber is the card check used by the payment flow.
// Payment itself is simulated; only the number format is verified.
func (s *Service) ValidateCardNumber(number string) error {
	if !validate.CreditCard(number) {
		return ErrInvalidCardNumber
	}
	return nil
}
