package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tillworks/tillpos/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tillpos.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadEmptyCollections(t *testing.T) {
	s := newTestStore(t)

	products, err := s.LoadProducts()
	if err != nil {
		t.Fatal(err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("expected empty non-nil product list, got %#v", products)
	}

	customers, err := s.LoadCustomers()
	if err != nil {
		t.Fatal(err)
	}
	if customers == nil || len(customers) != 0 {
		t.Errorf("expected empty non-nil customer list, got %#v", customers)
	}
}

func TestSettingsDefaultFallback(t *testing.T) {
	s := newTestStore(t)

	settings, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(settings, domain.DefaultSettings()) {
		t.Errorf("expected defaults, got %+v", settings)
	}

	settings.TaxRate = 0.2
	settings.BusinessName = "Corner Shop"
	if err := s.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.TaxRate != 0.2 || loaded.BusinessName != "Corner Shop" {
		t.Errorf("settings not persisted: %+v", loaded)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	products := []domain.Product{
		{ID: "p1", Name: "Coffee", Category: "Beverages", Price: 2.5, Stock: 10, Barcode: "40112358"},
		{ID: "p2", Name: "Chips", Category: "Snacks", Price: 2.99, Stock: 5, Barcode: "40220411"},
	}
	if err := s.SaveProducts(products); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadProducts()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(products, loaded) {
		t.Errorf("products round trip mismatch:\n%+v\n%+v", products, loaded)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveProducts([]domain.Product{{ID: "p1", Name: "Coffee", Price: 2.5, Stock: 3, Barcode: "40112358"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveCustomers([]domain.Customer{{ID: "c1", Name: "Alice", Email: "a@example.com", Phone: "5551234567"}}); err != nil {
		t.Fatal(err)
	}
	settings := domain.DefaultSettings()
	settings.BusinessName = "Corner Shop"
	if err := s.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	exported, err := s.ExportAll()
	if err != nil {
		t.Fatal(err)
	}

	if err := s.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if products, _ := s.LoadProducts(); len(products) != 0 {
		t.Fatal("clear did not remove products")
	}

	if err := s.ImportAll(exported); err != nil {
		t.Fatal(err)
	}
	reExported, err := s.ExportAll()
	if err != nil {
		t.Fatal(err)
	}

	var before, after domain.BackupDocument
	if err := json.Unmarshal(exported, &before); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(reExported, &after); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before.Products, after.Products) {
		t.Error("products differ after round trip")
	}
	if !reflect.DeepEqual(before.Customers, after.Customers) {
		t.Error("customers differ after round trip")
	}
	if !reflect.DeepEqual(before.Transactions, after.Transactions) {
		t.Error("transactions differ after round trip")
	}
	if !reflect.DeepEqual(before.Settings, after.Settings) {
		t.Error("settings differ after round trip")
	}
}

func TestImportMalformed(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveProducts([]domain.Product{{ID: "p1", Name: "Coffee"}}); err != nil {
		t.Fatal(err)
	}

	if err := s.ImportAll([]byte("{not json")); err == nil {
		t.Fatal("malformed document accepted")
	}

	products, err := s.LoadProducts()
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Errorf("parse failure corrupted stored products: %+v", products)
	}
}

func TestImportPartialDocument(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveCustomers([]domain.Customer{{ID: "c1", Name: "Alice"}}); err != nil {
		t.Fatal(err)
	}

	doc := `{"products":[{"id":"p9","name":"Tea","description":"","category":"Beverages","price":1.5,"stock":7,"barcode":"40112399"}]}`
	if err := s.ImportAll([]byte(doc)); err != nil {
		t.Fatal(err)
	}

	products, _ := s.LoadProducts()
	if len(products) != 1 || products[0].ID != "p9" {
		t.Errorf("present key not applied: %+v", products)
	}
	customers, _ := s.LoadCustomers()
	if len(customers) != 1 || customers[0].ID != "c1" {
		t.Errorf("absent key overwrote customers: %+v", customers)
	}
}

func TestClearAll(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveProducts([]domain.Product{{ID: "p1"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSettings(domain.DefaultSettings()); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearAll(); err != nil {
		t.Fatal(err)
	}
	settings, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(settings, domain.DefaultSettings()) {
		t.Error("settings not reset to defaults after clear")
	}
}

func TestHasSettings(t *testing.T) {
	st := newTestStore(t)

	if ok, err := st.HasSettings(); err != nil || ok {
		t.Errorf("HasSettings on fresh store = %v, %v; want false", ok, err)
	}
	if err := st.SaveSettings(domain.DefaultSettings()); err != nil {
		t.Fatal(err)
	}
	if ok, err := st.HasSettings(); err != nil || !ok {
		t.Errorf("HasSettings after save = %v, %v; want true", ok, err)
	}
	if err := st.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if ok, err := st.HasSettings(); err != nil || ok {
		t.Errorf("HasSettings after clear = %v, %v; want false", ok, err)
	}
}
