package pos

import (
	"path/filepath"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"

	"github.com/tillworks/tillpos/internal/domain"
	"github.com/tillworks/tillpos/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tillpos.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })
	svc, err := NewService(st, EventBus.New(), "Test Cashier")
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func addProduct(t *testing.T, svc *Service, name string, price float64, stock int) *domain.Product {
	t.Helper()
	p, err := svc.AddProduct(domain.Product{
		Name: name, Category: "Test", Price: price, Stock: stock, Barcode: "99900011",
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestAddToCartStockLimit(t *testing.T) {
	svc := newTestService(t)
	p := addProduct(t, svc, "Coffee", 2.5, 2)

	if err := svc.AddToCart(p.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddToCart(p.ID); err != nil {
		t.Fatal(err)
	}
	// third add must not push past stock
	if err := svc.AddToCart(p.ID); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("expected ErrOutOfStock, got %v", err)
	}
	cart := svc.Cart()
	if len(cart) != 1 || cart[0].Quantity != 2 {
		t.Errorf("cart = %+v, want one line with quantity 2", cart)
	}
}

func TestAddToCartOutOfStock(t *testing.T) {
	svc := newTestService(t)
	p := addProduct(t, svc, "Gone", 1, 0)

	if err := svc.AddToCart(p.ID); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("expected ErrOutOfStock, got %v", err)
	}
	if len(svc.Cart()) != 0 {
		t.Error("out-of-stock add changed the cart")
	}
}

func TestUpdateCartQuantityClamp(t *testing.T) {
	svc := newTestService(t)
	p := addProduct(t, svc, "Chips", 3, 5)

	if err := svc.AddToCart(p.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateCartQuantity(p.ID, 50); err != nil {
		t.Fatal(err)
	}
	cart := svc.Cart()
	if cart[0].Quantity != 5 {
		t.Errorf("quantity = %d, want clamp to stock 5", cart[0].Quantity)
	}
	if cart[0].Subtotal != 15 {
		t.Errorf("subtotal = %v, want 15", cart[0].Subtotal)
	}
}

func TestUpdateCartQuantityZeroRemoves(t *testing.T) {
	svc := newTestService(t)
	p := addProduct(t, svc, "Chips", 3, 5)

	if err := svc.AddToCart(p.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateCartQuantity(p.ID, 0); err != nil {
		t.Fatal(err)
	}
	if len(svc.Cart()) != 0 {
		t.Error("quantity 0 did not remove the item")
	}

	// and behaves exactly like RemoveFromCart
	if err := svc.AddToCart(p.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.RemoveFromCart(p.ID); err != nil {
		t.Fatal(err)
	}
	if len(svc.Cart()) != 0 {
		t.Error("RemoveFromCart left the item")
	}
}

func TestClearCartResetsSaleState(t *testing.T) {
	svc := newTestService(t)
	p := addProduct(t, svc, "Chips", 3, 5)
	c, err := svc.AddCustomer("Alice", "alice@example.com", "5551234567")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.AddToCart(p.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.SelectCustomer(c.ID); err != nil {
		t.Fatal(err)
	}
	svc.SetDiscountPercent(15)

	svc.ClearCart()
	if len(svc.Cart()) != 0 {
		t.Error("cart not cleared")
	}
	if svc.SelectedCustomer() != nil {
		t.Error("customer still selected after clear")
	}
	if svc.DiscountPercent() != 0 {
		t.Error("discount not reset after clear")
	}
}

func TestAddCustomerValidation(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.AddCustomer("Bob", "not-an-email", "5551234567"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.AddCustomer("Bob", "bob@example.com", "12"); !errors.Is(err, ErrInvalidPhone) {
		t.Errorf("expected ErrInvalidPhone, got %v", err)
	}
	if len(svc.Customers()) != 0 {
		t.Error("failed validation still appended a customer")
	}

	c, err := svc.AddCustomer("  <Bob>  ", "bob@example.com", "(555) 123-4567")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Bob" {
		t.Errorf("name not sanitized: %q", c.Name)
	}
	if c.ID == "" {
		t.Error("customer id not assigned")
	}
	if c.LoyaltyPoints != 0 || c.TotalSpent != 0 {
		t.Error("new customer must start with zero balances")
	}
}

func TestDiscountClamp(t *testing.T) {
	svc := newTestService(t)
	svc.SetDiscountPercent(-10)
	if svc.DiscountPercent() != 0 {
		t.Errorf("negative discount not clamped: %v", svc.DiscountPercent())
	}
	svc.SetDiscountPercent(250)
	if svc.DiscountPercent() != 100 {
		t.Errorf("discount above 100 not clamped: %v", svc.DiscountPercent())
	}
}

func TestFilteredProducts(t *testing.T) {
	svc := newTestService(t)
	addProduct(t, svc, "Drip Coffee", 2.5, 10)
	p2, err := svc.AddProduct(domain.Product{Name: "Green Tea", Category: "Tea", Price: 2, Stock: 8, Barcode: "40112399"})
	if err != nil {
		t.Fatal(err)
	}

	svc.SetSearch("coffee")
	got := svc.FilteredProducts()
	if len(got) != 1 || got[0].Name != "Drip Coffee" {
		t.Errorf("search filter: %+v", got)
	}

	svc.SetSearch("40112399")
	got = svc.FilteredProducts()
	if len(got) != 1 || got[0].ID != p2.ID {
		t.Errorf("barcode search: %+v", got)
	}

	svc.SetSearch("")
	svc.SetCategory("Tea")
	got = svc.FilteredProducts()
	if len(got) != 1 || got[0].ID != p2.ID {
		t.Errorf("category filter: %+v", got)
	}

	svc.SetCategory(CategoryAll)
	if len(svc.FilteredProducts()) != 2 {
		t.Error("All category must match everything")
	}
}

func TestLowStockProducts(t *testing.T) {
	svc := newTestService(t)
	addProduct(t, svc, "Plenty", 1, 50)
	low := addProduct(t, svc, "Scarce", 1, 3)

	settings := svc.Settings()
	settings.LowStockThreshold = 10
	if err := svc.UpdateSettings(settings); err != nil {
		t.Fatal(err)
	}

	got := svc.LowStockProducts()
	if len(got) != 1 || got[0].ID != low.ID {
		t.Errorf("low stock = %+v", got)
	}
}

func TestUpdateSettingsPersists(t *testing.T) {
	svc := newTestService(t)
	settings := svc.Settings()
	settings.TaxRate = 0.1
	settings.EnableLoyaltyProgram = false
	if err := svc.UpdateSettings(settings); err != nil {
		t.Fatal(err)
	}
	if svc.Settings().TaxRate != 0.1 {
		t.Error("settings not replaced in memory")
	}
}

func TestServiceImportExportRoundTrip(t *testing.T) {
	svc := newTestService(t)
	addProduct(t, svc, "Coffee", 2.5, 10)
	if _, err := svc.AddCustomer("Alice", "alice@example.com", "5551234567"); err != nil {
		t.Fatal(err)
	}

	exported, err := svc.ExportAll()
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.ClearAllData(); err != nil {
		t.Fatal(err)
	}
	if len(svc.Products()) != 0 || len(svc.Customers()) != 0 {
		t.Fatal("clear did not empty collections")
	}

	if err := svc.ImportAll(exported); err != nil {
		t.Fatal(err)
	}
	if len(svc.Products()) != 1 || svc.Products()[0].Name != "Coffee" {
		t.Errorf("products not restored: %+v", svc.Products())
	}
	if len(svc.Customers()) != 1 || svc.Customers()[0].Name != "Alice" {
		t.Errorf("customers not restored: %+v", svc.Customers())
	}
}

func TestImportRejectsMalformed(t *testing.T) {
	svc := newTestService(t)
	addProduct(t, svc, "Coffee", 2.5, 10)

	if err := svc.ImportAll([]byte("not json at all")); err == nil {
		t.Fatal("malformed import accepted")
	}
	if len(svc.Products()) != 1 {
		t.Error("failed import changed in-memory products")
	}
}

func TestAddProductSaveFailureRollsBack(t *testing.T) {
	svc := newTestService(t)
	addProduct(t, svc, "Coffee", 2.5, 5)
	if err := svc.store.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddProduct(domain.Product{
		Name: "Ghost", Category: "Test", Price: 1, Stock: 1, Barcode: "99900099",
	}); err == nil {
		t.Fatal("expected save failure on a closed store")
	}
	products := svc.Products()
	if len(products) != 1 || products[0].Name != "Coffee" {
		t.Errorf("products = %+v after failed add, want the original one", products)
	}
}

func TestAddCustomerSaveFailureRollsBack(t *testing.T) {
	svc := newTestService(t)
	if err := svc.store.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddCustomer("Ghost", "ghost@example.com", "5550000000"); err == nil {
		t.Fatal("expected save failure on a closed store")
	}
	if n := len(svc.Customers()); n != 0 {
		t.Errorf("customers = %d after failed add, want 0", n)
	}
}
