package cli

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/tillworks/tillpos/internal/domain"
	"github.com/tillworks/tillpos/pkg/validate"
)

func (ui *UI) handleInventory() {
	for !ui.eof {
		fmt.Fprintln(ui.out, "\n--- Inventory ---")
		fmt.Fprintln(ui.out, "1) List products")
		fmt.Fprintln(ui.out, "2) Low stock")
		fmt.Fprintln(ui.out, "3) Add product")
		fmt.Fprintln(ui.out, "4) Edit product")
		fmt.Fprintln(ui.out, "5) Delete product")
		fmt.Fprintln(ui.out, "0) Back")
		switch ui.prompt("> ") {
		case "1":
			ui.listProducts(ui.svc.Products())
		case "2":
			low := ui.svc.LowStockProducts()
			if len(low) == 0 {
				fmt.Fprintln(ui.out, "Nothing below the threshold.")
				continue
			}
			ui.listProducts(low)
		case "3":
			ui.addProduct()
		case "4":
			ui.editProduct()
		case "5":
			ui.deleteProduct()
		case "0":
			return
		}
	}
}

func (ui *UI) listProducts(products []domain.Product) {
	threshold := ui.svc.Settings().LowStockThreshold
	for i, p := range products {
		mark := ""
		if p.Stock <= threshold {
			mark = " LOW"
		}
		fmt.Fprintf(ui.out, "%2d) %-24s %-10s %8s  stock %d%s  [%s]\n",
			i+1, p.Name, p.Category, ui.money(p.Price), p.Stock, mark, p.Barcode)
	}
}

func (ui *UI) addProduct() {
	var p domain.Product
	p.Name = validate.SanitizeInput(ui.prompt("Name: "))
	p.Description = validate.SanitizeInput(ui.prompt("Description: "))
	p.Category = ui.prompt("Category: ")

	price := ui.prompt("Price: ")
	if !validate.Price(price) {
		fmt.Fprintln(ui.out, "Price must be a non-negative number.")
		return
	}
	p.Price = cast.ToFloat64(price)
	p.Stock = cast.ToInt(ui.prompt("Stock: "))

	barcode := ui.prompt("Barcode: ")
	if !validate.Barcode(barcode) {
		fmt.Fprintln(ui.out, "Barcode must be at least 8 digits.")
		return
	}
	p.Barcode = barcode

	if ui.eof {
		return
	}
	created, err := ui.svc.AddProduct(p)
	if err != nil {
		ui.fail(err)
		return
	}
	fmt.Fprintf(ui.out, "Added %s.\n", created.Name)
}

func (ui *UI) pickProduct() (*domain.Product, bool) {
	products := ui.svc.Products()
	if len(products) == 0 {
		fmt.Fprintln(ui.out, "Catalog is empty.")
		return nil, false
	}
	ui.listProducts(products)
	idx := cast.ToInt(ui.prompt("Product #: "))
	if idx < 1 || idx > len(products) {
		fmt.Fprintln(ui.out, "No such product.")
		return nil, false
	}
	p := products[idx-1]
	return &p, true
}

// editProduct updates fields in place; blank input keeps the current
// value.
func (ui *UI) editProduct() {
	p, ok := ui.pickProduct()
	if !ok {
		return
	}
	if v := ui.prompt(fmt.Sprintf("Name [%s]: ", p.Name)); v != "" {
		p.Name = validate.SanitizeInput(v)
	}
	if v := ui.prompt(fmt.Sprintf("Price [%.2f]: ", p.Price)); v != "" {
		if !validate.Price(v) {
			fmt.Fprintln(ui.out, "Price must be a non-negative number.")
			return
		}
		p.Price = cast.ToFloat64(v)
	}
	if v := ui.prompt(fmt.Sprintf("Stock [%d]: ", p.Stock)); v != "" {
		p.Stock = cast.ToInt(v)
	}
	if ui.eof {
		return
	}
	if err := ui.svc.UpdateProduct(*p); err != nil {
		ui.fail(err)
		return
	}
	fmt.Fprintln(ui.out, "Updated.")
}

func (ui *UI) deleteProduct() {
	p, ok := ui.pickProduct()
	if !ok {
		return
	}
	if ui.prompt(fmt.Sprintf("Delete %s? (yes/no): ", p.Name)) != "yes" {
		return
	}
	if err := ui.svc.DeleteProduct(p.ID); err != nil {
		ui.fail(err)
		return
	}
	fmt.Fprintln(ui.out, "Deleted.")
}

func (ui *UI) handleCustomers() {
	for !ui.eof {
		fmt.Fprintln(ui.out, "\n--- Customers ---")
		fmt.Fprintln(ui.out, "1) List customers")
		fmt.Fprintln(ui.out, "2) Add customer")
		fmt.Fprintln(ui.out, "0) Back")
		switch ui.prompt("> ") {
		case "1":
			for i, c := range ui.svc.Customers() {
				fmt.Fprintf(ui.out, "%2d) %-24s %-28s %s  %d pts, spent %s\n",
					i+1, c.Name, c.Email, c.Phone, c.LoyaltyPoints, ui.money(c.TotalSpent))
			}
		case "2":
			name := ui.prompt("Name: ")
			email := ui.prompt("Email: ")
			phone := ui.prompt("Phone: ")
			c, err := ui.svc.AddCustomer(name, email, phone)
			if err != nil {
				ui.fail(err)
				continue
			}
			fmt.Fprintf(ui.out, "Added %s.\n", c.Name)
		case "0":
			return
		}
	}
}
