package pos

import (
	"fmt"
	"strings"

	"github.com/tillworks/tillpos/internal/domain"
	"github.com/tillworks/tillpos/pkg/common"
)

// ReceiptLine is one printed item row.
type ReceiptLine struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Total     float64
}

// Receipt is a value object composed from a transaction and the
// business settings at print time. It is not persisted; the
// transaction is the durable record.
type Receipt struct {
	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
	ReceiptNo       string
	Date            string
	Cashier         string
	Customer        string
	PaymentMethod   string
	Lines           []ReceiptLine
	Subtotal        float64
	Tax             float64
	Discount        float64
	Total           float64
	CashReceived    float64
	ChangeDue       float64
	Currency        string
	Footer          string
}

// BuildReceipt composes the printable view of a completed transaction.
func (s *Service) BuildReceipt(tx *domain.Transaction) Receipt {
	r := Receipt{
		BusinessName:    s.settings.BusinessName,
		BusinessAddress: s.settings.BusinessAddress,
		BusinessPhone:   s.settings.BusinessPhone,
		ReceiptNo:       tx.ID,
		Date:            tx.Timestamp.Format("2006-01-02 15:04:05"),
		Cashier:         tx.Cashier,
		Customer:        tx.CustomerName,
		PaymentMethod:   tx.PaymentMethod,
		Subtotal:        tx.Subtotal,
		Tax:             tx.Tax,
		Discount:        tx.Discount,
		Total:           tx.Total,
		Currency:        s.settings.Currency,
		Footer:          s.settings.ReceiptFooter,
	}
	if tx.PaymentMethod == domain.PayCash {
		r.CashReceived = tx.CashReceived
		r.ChangeDue = common.RoundCents(tx.ChangeDue())
	}
	for _, it := range tx.Items {
		r.Lines = append(r.Lines, ReceiptLine{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Total:     it.Subtotal,
		})
	}
	return r
}

const receiptWidth = 40

// Render produces the plain-text receipt for terminal display or
// printing.
func (r Receipt) Render() string {
	var b strings.Builder
	center := func(s string) {
		if pad := (receiptWidth - len(s)) / 2; pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}
	row := func(label, value string) {
		fmt.Fprintf(&b, "%-*s%s\n", receiptWidth-len(value), label, value)
	}
	rule := strings.Repeat("-", receiptWidth) + "\n"

	center(r.BusinessName)
	center(r.BusinessAddress)
	center(r.BusinessPhone)
	b.WriteString(rule)
	row("Receipt "+r.ReceiptNo, "")
	row("Date: "+r.Date, "")
	row("Cashier: "+r.Cashier, "")
	if r.Customer != "" {
		row("Customer: "+r.Customer, "")
	}
	b.WriteString(rule)
	for _, line := range r.Lines {
		row(line.Name, common.FormatMoney(r.Currency, line.Total))
		fmt.Fprintf(&b, "  %d x %s\n", line.Quantity, common.FormatMoney(r.Currency, line.UnitPrice))
	}
	b.WriteString(rule)
	row("Subtotal", common.FormatMoney(r.Currency, r.Subtotal))
	row("Tax", common.FormatMoney(r.Currency, r.Tax))
	if r.Discount > 0 {
		row("Discount", "-"+common.FormatMoney(r.Currency, r.Discount))
	}
	row("TOTAL", common.FormatMoney(r.Currency, r.Total))
	if r.PaymentMethod == domain.PayCash {
		row("Cash", common.FormatMoney(r.Currency, r.CashReceived))
		row("Change", common.FormatMoney(r.Currency, r.ChangeDue))
	} else {
		row("Paid by", r.PaymentMethod)
	}
	b.WriteString(rule)
	center(r.Footer)
	return b.String()
}
