package cli

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/tillworks/tillpos/internal/domain"
	"github.com/tillworks/tillpos/internal/pos"
)

func (ui *UI) handleSale() {
	for !ui.eof {
		fmt.Fprintln(ui.out, "\n--- Sale ---")
		ui.printCartSummary()
		fmt.Fprintln(ui.out, "1) Browse products")
		fmt.Fprintln(ui.out, "2) Search")
		fmt.Fprintln(ui.out, "3) Filter by category")
		fmt.Fprintln(ui.out, "4) Scan barcode")
		fmt.Fprintln(ui.out, "5) View cart")
		fmt.Fprintln(ui.out, "6) Change quantity")
		fmt.Fprintln(ui.out, "7) Remove item")
		fmt.Fprintln(ui.out, "8) Discount")
		fmt.Fprintln(ui.out, "9) Attach customer")
		fmt.Fprintln(ui.out, "10) Checkout")
		fmt.Fprintln(ui.out, "11) Clear cart")
		fmt.Fprintln(ui.out, "0) Back")
		switch ui.prompt("> ") {
		case "1":
			ui.browseProducts()
		case "2":
			ui.svc.SetSearch(ui.prompt("Search: "))
			ui.browseProducts()
		case "3":
			ui.chooseCategory()
		case "4":
			ui.scanBarcode()
		case "5":
			ui.printCart()
		case "6":
			ui.changeQuantity()
		case "7":
			ui.removeItem()
		case "8":
			pct := cast.ToFloat64(ui.prompt("Discount percent: "))
			ui.svc.SetDiscountPercent(pct)
		case "9":
			ui.attachCustomer()
		case "10":
			if ui.checkout() {
				return
			}
		case "11":
			ui.svc.ClearCart()
		case "0":
			return
		}
	}
}

func (ui *UI) printCartSummary() {
	preview := ui.svc.PreviewCheckout()
	line := fmt.Sprintf("Cart: %d items, total %s", len(ui.svc.Cart()), ui.money(preview.Total))
	if c := ui.svc.SelectedCustomer(); c != nil {
		line += " | customer: " + c.Name
	}
	if pct := ui.svc.DiscountPercent(); pct > 0 {
		line += fmt.Sprintf(" | discount: %.0f%%", pct)
	}
	fmt.Fprintln(ui.out, line)
}

func (ui *UI) browseProducts() {
	products := ui.svc.FilteredProducts()
	if len(products) == 0 {
		fmt.Fprintln(ui.out, "No products match.")
		return
	}
	for i, p := range products {
		fmt.Fprintf(ui.out, "%2d) %-24s %-10s %8s  stock %d\n",
			i+1, p.Name, p.Category, ui.money(p.Price), p.Stock)
	}
	choice := ui.prompt("Add # (blank to skip): ")
	if choice == "" {
		return
	}
	idx := cast.ToInt(choice)
	if idx < 1 || idx > len(products) {
		fmt.Fprintln(ui.out, "No such item.")
		return
	}
	if err := ui.svc.AddToCart(products[idx-1].ID); err != nil {
		ui.fail(err)
	}
}

func (ui *UI) chooseCategory() {
	fmt.Fprintln(ui.out, "Categories:", pos.CategoryAll, domain.Categories)
	ui.svc.SetCategory(ui.prompt("Category: "))
}

func (ui *UI) scanBarcode() {
	code := ui.prompt("Barcode: ")
	p, err := ui.svc.FindProductByBarcode(code)
	if err != nil {
		ui.fail(err)
		return
	}
	if err := ui.svc.AddToCart(p.ID); err != nil {
		ui.fail(err)
		return
	}
	fmt.Fprintf(ui.out, "Added %s.\n", p.Name)
}

func (ui *UI) printCart() {
	cart := ui.svc.Cart()
	if len(cart) == 0 {
		fmt.Fprintln(ui.out, "Cart is empty.")
		return
	}
	for i, it := range cart {
		fmt.Fprintf(ui.out, "%2d) %-24s x%-3d %8s\n", i+1, it.Name, it.Quantity, ui.money(it.Subtotal))
	}
	preview := ui.svc.PreviewCheckout()
	fmt.Fprintf(ui.out, "    Subtotal %s  Tax %s  Discount %s  Total %s\n",
		ui.money(preview.Subtotal), ui.money(preview.Tax),
		ui.money(preview.Discount), ui.money(preview.Total))
}

func (ui *UI) cartItemByIndex() (string, bool) {
	cart := ui.svc.Cart()
	if len(cart) == 0 {
		fmt.Fprintln(ui.out, "Cart is empty.")
		return "", false
	}
	ui.printCart()
	idx := cast.ToInt(ui.prompt("Item #: "))
	if idx < 1 || idx > len(cart) {
		fmt.Fprintln(ui.out, "No such item.")
		return "", false
	}
	return cart[idx-1].ID, true
}

func (ui *UI) changeQuantity() {
	id, ok := ui.cartItemByIndex()
	if !ok {
		return
	}
	qty := cast.ToInt(ui.prompt("New quantity: "))
	if err := ui.svc.UpdateCartQuantity(id, qty); err != nil {
		ui.fail(err)
	}
}

func (ui *UI) removeItem() {
	id, ok := ui.cartItemByIndex()
	if !ok {
		return
	}
	if err := ui.svc.RemoveFromCart(id); err != nil {
		ui.fail(err)
	}
}

func (ui *UI) attachCustomer() {
	customers := ui.svc.Customers()
	if len(customers) == 0 {
		fmt.Fprintln(ui.out, "No customers on file.")
		return
	}
	for i, c := range customers {
		fmt.Fprintf(ui.out, "%2d) %-24s %s  (%d pts)\n", i+1, c.Name, c.Email, c.LoyaltyPoints)
	}
	idx := cast.ToInt(ui.prompt("Customer # (0 for none): "))
	if ui.eof {
		return
	}
	if idx == 0 {
		ui.svc.ClearSelectedCustomer()
		return
	}
	if idx < 1 || idx > len(customers) {
		fmt.Fprintln(ui.out, "No such customer.")
		return
	}
	if err := ui.svc.SelectCustomer(customers[idx-1].ID); err != nil {
		ui.fail(err)
	}
}

// checkout runs the payment flow; returns true when a sale completed.
func (ui *UI) checkout() bool {
	if len(ui.svc.Cart()) == 0 {
		fmt.Fprintln(ui.out, "Cart is empty.")
		return false
	}
	ui.printCart()

	var method string
	var amountPaid float64
	switch ui.prompt("Payment (1=cash, 2=card): ") {
	case "1":
		method = domain.PayCash
		amountPaid = cast.ToFloat64(ui.prompt("Cash received: "))
	case "2":
		method = domain.PayCard
		if err := ui.svc.ValidateCardNumber(ui.prompt("Card number: ")); err != nil {
			ui.fail(err)
			return false
		}
	default:
		return false
	}

	tx, err := ui.svc.CompleteCheckout(method, amountPaid)
	if err != nil {
		ui.fail(err)
		return false
	}
	fmt.Fprintln(ui.out)
	fmt.Fprint(ui.out, ui.svc.BuildReceipt(tx).Render())
	return true
}
