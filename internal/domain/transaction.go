package domain

import "time"

// Payment methods accepted at the terminal. Payment is simulated;
// the method only affects receipt fields and card-number validation.
const (
	PayCash = "cash"
	PayCard = "card"
)

// Transaction is the immutable record of a completed sale. Items is a
// snapshot of the cart at sale time and never changes afterwards, even
// when the source products do. Discount is the absolute amount taken
// off, not a percentage.
type Transaction struct {
	ID            string     `json:"id"`
	CustomerID    string     `json:"customerId,omitempty"`
	CustomerName  string     `json:"customerName,omitempty"`
	Items         []CartItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Discount      float64    `json:"discount"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"paymentMethod"`
	Timestamp     time.Time  `json:"timestamp"`
	Cashier       string     `json:"cashier"`
	CashReceived  float64    `json:"cashReceived,omitempty"`
}

// ChangeDue is the cash to hand back, zero for non-cash payments.
func (t *Transaction) ChangeDue() float64 {
	if t.PaymentMethod != PayCash {
		return 0
	}
	return t.CashReceived - t.Total
}
