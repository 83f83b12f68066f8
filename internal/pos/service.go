// Package pos holds the application state controller: the in-memory
// collections, the cart, selection state, and every mutation the
// terminal can perform. Mutations save the affected collection through
// the store synchronously and announce themselves on the event bus.
package pos

import (
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tillworks/tillpos/internal/domain"
	"github.com/tillworks/tillpos/internal/store"
	"github.com/tillworks/tillpos/pkg/common"
	"github.com/tillworks/tillpos/pkg/validate"
)

// Bus topics published on state changes. Payloads are documented per
// topic; subscribers must not mutate them.
const (
	TopicProductsChanged     = "pos.products.changed"     // []domain.Product
	TopicCustomersChanged    = "pos.customers.changed"    // []domain.Customer
	TopicTransactionsChanged = "pos.transactions.changed" // []domain.Transaction
	TopicSettingsChanged     = "pos.settings.changed"     // domain.Settings
	TopicCartChanged         = "pos.cart.changed"         // []domain.CartItem
	TopicCheckoutCompleted   = "pos.checkout.completed"   // *domain.Transaction
)

// CategoryAll is the virtual catalog filter matching every category.
const CategoryAll = "All"

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrNotInCart         = errors.New("item is not in the cart")
	ErrProductNotFound   = errors.New("product not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrInsufficientCash  = errors.New("cash received is less than the total")
	ErrInvalidCardNumber = errors.New("invalid card number")
)

// Service owns the five collections and the derived selection state.
// All mutations run synchronously on the caller's goroutine; a till
// terminal handles one event at a time.
type Service struct {
	store *store.Store
	bus   EventBus.Bus

	cashier string

	products     []domain.Product
	cart         []domain.CartItem
	customers    []domain.Customer
	transactions []domain.Transaction
	settings     domain.Settings

	category           string
	search             string
	selectedCustomerID string
	discountPct        float64
}

func NewService(st *store.Store, bus EventBus.Bus, cashier string) (*Service, error) {
	s := &Service{
		store:    st,
		bus:      bus,
		cashier:  cashier,
		category: CategoryAll,
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// reload replaces all in-memory collections from the store.
func (s *Service) reload() error {
	var err error
	if s.products, err = s.store.LoadProducts(); err != nil {
		return err
	}
	if s.customers, err = s.store.LoadCustomers(); err != nil {
		return err
	}
	if s.transactions, err = s.store.LoadTransactions(); err != nil {
		return err
	}
	if s.settings, err = s.store.LoadSettings(); err != nil {
		return err
	}
	return nil
}

func (s *Service) Cashier() string { return s.cashier }

// ---- catalog ----

func (s *Service) Products() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Service) FindProduct(id string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *Service) FindProductByBarcode(barcode string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].Barcode == barcode {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// FilteredProducts applies the selected category and the search query.
// The query matches name and description case-insensitively and the
// barcode as a substring.
func (s *Service) FilteredProducts() []domain.Product {
	q := strings.ToLower(strings.TrimSpace(s.search))
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if s.category != CategoryAll && p.Category != s.category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(p.Barcode, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LowStockProducts flags products at or below the configured
// threshold.
func (s *Service) LowStockProducts() []domain.Product {
	var out []domain.Product
	for _, p := range s.products {
		if p.Stock <= s.settings.LowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

// AddProduct assigns a fresh id and appends. A failed save leaves the
// collection as it was.
func (s *Service) AddProduct(p domain.Product) (*domain.Product, error) {
	p.ID = common.NewID()
	p.Price = common.RoundCents(p.Price)
	prev := s.products
	s.products = append(s.Products(), p)
	if err := s.saveProducts(); err != nil {
		s.products = prev
		return nil, err
	}
	zap.S().Infow("product added", "id", p.ID, "name", p.Name)
	return &p, nil
}

// UpdateProduct replaces the stored product with the same id.
func (s *Service) UpdateProduct(p domain.Product) error {
	for i := range s.products {
		if s.products[i].ID == p.ID {
			p.Price = common.RoundCents(p.Price)
			prev := s.products[i]
			s.products[i] = p
			if err := s.saveProducts(); err != nil {
				s.products[i] = prev
				return err
			}
			return nil
		}
	}
	return ErrProductNotFound
}

func (s *Service) DeleteProduct(id string) error {
	for i := range s.products {
		if s.products[i].ID == id {
			prev := s.products
			s.products = append(s.Products()[:i], s.products[i+1:]...)
			if err := s.saveProducts(); err != nil {
				s.products = prev
				return err
			}
			return nil
		}
	}
	return ErrProductNotFound
}

func (s *Service) saveProducts() error {
	if err := s.store.SaveProducts(s.products); err != nil {
		zap.L().Error("failed to save products", zap.Error(err))
		return err
	}
	s.bus.Publish(TopicProductsChanged, s.Products())
	return nil
}

// ---- customers ----

func (s *Service) Customers() []domain.Customer {
	out := make([]domain.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Service) FindCustomer(id string) (*domain.Customer, error) {
	for i := range s.customers {
		if s.customers[i].ID == id {
			c := s.customers[i]
			return &c, nil
		}
	}
	return nil, ErrCustomerNotFound
}

// AddCustomer validates and sanitizes the contact fields, assigns a
// fresh id and appends. A validation failure aborts with no state
// change.
func (s *Service) AddCustomer(name, email, phone string) (*domain.Customer, error) {
	if !validate.Email(email) {
		return nil, ErrInvalidEmail
	}
	if !validate.Phone(phone) {
		return nil, ErrInvalidPhone
	}
	c := domain.Customer{
		ID:    common.NewID(),
		Name:  validate.SanitizeInput(name),
		Email: validate.SanitizeInput(email),
		Phone: validate.SanitizeInput(phone),
	}
	prev := s.customers
	s.customers = append(s.Customers(), c)
	if err := s.saveCustomers(); err != nil {
		s.customers = prev
		return nil, err
	}
	zap.S().Infow("customer added", "id", c.ID, "name", c.Name)
	return &c, nil
}

func (s *Service) saveCustomers() error {
	if err := s.store.SaveCustomers(s.customers); err != nil {
		zap.L().Error("failed to save customers", zap.Error(err))
		return err
	}
	s.bus.Publish(TopicCustomersChanged, s.Customers())
	return nil
}

// ---- transactions ----

func (s *Service) Transactions() []domain.Transaction {
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *Service) saveTransactions() error {
	if err := s.store.SaveTransactions(s.transactions); err != nil {
		zap.L().Error("failed to save transactions", zap.Error(err))
		return err
	}
	s.bus.Publish(TopicTransactionsChanged, s.Transactions())
	return nil
}

// ---- settings ----

func (s *Service) Settings() domain.Settings { return s.settings }

// UpdateSettings replaces the record wholesale and persists it
// immediately.
func (s *Service) UpdateSettings(settings domain.Settings) error {
	prev := s.settings
	s.settings = settings
	if err := s.store.SaveSettings(s.settings); err != nil {
		s.settings = prev
		zap.L().Error("failed to save settings", zap.Error(err))
		return err
	}
	s.bus.Publish(TopicSettingsChanged, s.settings)
	return nil
}

// ---- selection state ----

func (s *Service) SelectCustomer(id string) error {
	if _, err := s.FindCustomer(id); err != nil {
		return err
	}
	s.selectedCustomerID = id
	return nil
}

func (s *Service) ClearSelectedCustomer() { s.selectedCustomerID = "" }

// SelectedCustomer returns a copy of the attached customer, or nil
// when the sale is anonymous.
func (s *Service) SelectedCustomer() *domain.Customer {
	if s.selectedCustomerID == "" {
		return nil
	}
	c, err := s.FindCustomer(s.selectedCustomerID)
	if err != nil {
		return nil
	}
	return c
}

// SetDiscountPercent clamps the sale discount to [0,100].
func (s *Service) SetDiscountPercent(pct float64) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	s.discountPct = pct
}

func (s *Service) DiscountPercent() float64 { return s.discountPct }

func (s *Service) SetCategory(category string) {
	if category == "" {
		category = CategoryAll
	}
	s.category = category
}

func (s *Service) Category() string { return s.category }

func (s *Service) SetSearch(query string) { s.search = query }

func (s *Service) Search() string { return s.search }

// ---- backup passthrough ----

func (s *Service) ExportAll() ([]byte, error) {
	return s.store.ExportAll()
}

// ImportAll applies a backup document to the store and reloads the
// in-memory collections from it. The active cart and selection state
// are reset since they may reference replaced records.
func (s *Service) ImportAll(data []byte) error {
	if err := s.store.ImportAll(data); err != nil {
		return err
	}
	s.resetSale()
	if err := s.reload(); err != nil {
		return err
	}
	zap.L().Info("data import applied")
	s.bus.Publish(TopicProductsChanged, s.Products())
	s.bus.Publish(TopicCustomersChanged, s.Customers())
	s.bus.Publish(TopicTransactionsChanged, s.Transactions())
	s.bus.Publish(TopicSettingsChanged, s.settings)
	return nil
}

// ClearAllData removes every stored collection and resets memory to
// first-run state.
func (s *Service) ClearAllData() error {
	if err := s.store.ClearAll(); err != nil {
		return err
	}
	s.resetSale()
	if err := s.reload(); err != nil {
		return err
	}
	zap.L().Warn("all POS data cleared")
	return nil
}

func (s *Service) resetSale() {
	s.cart = nil
	s.selectedCustomerID = ""
	s.discountPct = 0
}
