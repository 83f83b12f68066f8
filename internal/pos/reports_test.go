package pos

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tillworks/tillpos/internal/domain"
)

func salesFixture(t *testing.T) *Service {
	t.Helper()
	svc := newTestService(t)
	a := addProduct(t, svc, "Widget", 10, 100)
	b := addProduct(t, svc, "Gadget", 5, 100)

	// first sale: 2 widgets
	if err := svc.AddToCart(a.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateCartQuantity(a.ID, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CompleteCheckout(domain.PayCash, 100); err != nil {
		t.Fatal(err)
	}

	// second sale: 1 gadget
	if err := svc.AddToCart(b.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CompleteCheckout(domain.PayCard, 0); err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestSummarize(t *testing.T) {
	svc := salesFixture(t)

	sum := svc.Summarize(time.Time{}, time.Time{})
	if sum.Count != 2 {
		t.Fatalf("count = %d, want 2", sum.Count)
	}
	// 2x10 * 1.08 = 21.60 and 1x5 * 1.08 = 5.40
	if sum.Gross != 27 {
		t.Errorf("gross = %v, want 27.00", sum.Gross)
	}
	if sum.LargestSale != 21.6 {
		t.Errorf("largest = %v, want 21.60", sum.LargestSale)
	}
	if sum.AverageSale != 13.5 {
		t.Errorf("average = %v, want 13.50", sum.AverageSale)
	}
	if len(sum.TopProducts) != 2 || sum.TopProducts[0].Name != "Widget" {
		t.Errorf("top products = %+v", sum.TopProducts)
	}
}

func TestSummarizePeriodBounds(t *testing.T) {
	svc := salesFixture(t)

	past := svc.Summarize(time.Time{}, time.Now().Add(-time.Hour))
	if past.Count != 0 {
		t.Errorf("sales counted before the period: %+v", past)
	}
	future := svc.Summarize(time.Now().Add(time.Hour), time.Time{})
	if future.Count != 0 {
		t.Errorf("sales counted after the period: %+v", future)
	}
}

func TestExportTransactionsCSV(t *testing.T) {
	svc := salesFixture(t)
	path := filepath.Join(t.TempDir(), "transactions.csv")
	if err := svc.ExportTransactionsCSV(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	if !strings.Contains(body, "receipt_id") {
		t.Error("csv missing header")
	}
	if got := strings.Count(body, "\n"); got < 3 {
		t.Errorf("csv has %d lines, want header plus 2 rows", got)
	}
}

func TestExportSalesXLSX(t *testing.T) {
	svc := salesFixture(t)
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	if err := svc.ExportSalesXLSX(path, time.Time{}, time.Time{}); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("xlsx file is empty")
	}
}

func TestParseReportDate(t *testing.T) {
	for _, in := range []string{"2026-08-31", "8/31/2026", "Aug 31, 2026"} {
		ts, err := ParseReportDate(in)
		if err != nil {
			t.Errorf("ParseReportDate(%q): %v", in, err)
			continue
		}
		if ts.Year() != 2026 || ts.Month() != time.August || ts.Day() != 31 {
			t.Errorf("ParseReportDate(%q) = %v", in, ts)
		}
	}
	if _, err := ParseReportDate("not a date"); err == nil {
		t.Error("garbage date accepted")
	}
}
