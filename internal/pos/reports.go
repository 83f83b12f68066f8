package pos

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/tillworks/tillpos/pkg/common"
)

// ProductSales is one row of the top-sellers table.
type ProductSales struct {
	Name     string
	Quantity int
	Revenue  float64
}

// SalesSummary aggregates the transaction history between two points
// in time (inclusive, zero times mean unbounded).
type SalesSummary struct {
	From        time.Time
	To          time.Time
	Count       int
	Gross       float64
	Tax         float64
	Discounts   float64
	AverageSale float64
	LargestSale float64
	TopProducts []ProductSales
}

// ParseReportDate accepts the loose date formats operators type at the
// prompt (2026-08-31, 8/31/2026, "Aug 31 2026", ...).
func ParseReportDate(s string) (time.Time, error) {
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unrecognized date %q", s)
	}
	return t, nil
}

// Summarize computes the sales summary for the given period.
func (s *Service) Summarize(from, to time.Time) SalesSummary {
	sum := SalesSummary{From: from, To: to}
	var totals []float64
	byProduct := map[string]*ProductSales{}

	for _, tx := range s.transactions {
		if !from.IsZero() && tx.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && tx.Timestamp.After(to) {
			continue
		}
		sum.Count++
		sum.Gross += tx.Total
		sum.Tax += tx.Tax
		sum.Discounts += tx.Discount
		totals = append(totals, tx.Total)
		for _, it := range tx.Items {
			ps, ok := byProduct[it.Name]
			if !ok {
				ps = &ProductSales{Name: it.Name}
				byProduct[it.Name] = ps
			}
			ps.Quantity += it.Quantity
			ps.Revenue += it.Subtotal
		}
	}

	sum.Gross = common.RoundCents(sum.Gross)
	sum.Tax = common.RoundCents(sum.Tax)
	sum.Discounts = common.RoundCents(sum.Discounts)

	if len(totals) > 0 {
		if mean, err := stats.Mean(totals); err == nil {
			sum.AverageSale = common.RoundCents(mean)
		}
		if max, err := stats.Max(totals); err == nil {
			sum.LargestSale = common.RoundCents(max)
		}
	}

	for _, ps := range byProduct {
		ps.Revenue = common.RoundCents(ps.Revenue)
		sum.TopProducts = append(sum.TopProducts, *ps)
	}
	sort.Slice(sum.TopProducts, func(i, j int) bool {
		if sum.TopProducts[i].Quantity != sum.TopProducts[j].Quantity {
			return sum.TopProducts[i].Quantity > sum.TopProducts[j].Quantity
		}
		return sum.TopProducts[i].Name < sum.TopProducts[j].Name
	})
	if len(sum.TopProducts) > 5 {
		sum.TopProducts = sum.TopProducts[:5]
	}
	return sum
}

type transactionRow struct {
	ID            string  `csv:"receipt_id"`
	Timestamp     string  `csv:"timestamp"`
	Customer      string  `csv:"customer"`
	Items         int     `csv:"items"`
	Subtotal      float64 `csv:"subtotal"`
	Tax           float64 `csv:"tax"`
	Discount      float64 `csv:"discount"`
	Total         float64 `csv:"total"`
	PaymentMethod string  `csv:"payment_method"`
	Cashier       string  `csv:"cashier"`
}

// ExportTransactionsCSV writes the full transaction log as CSV.
func (s *Service) ExportTransactionsCSV(path string) error {
	rows := make([]transactionRow, 0, len(s.transactions))
	for _, tx := range s.transactions {
		rows = append(rows, transactionRow{
			ID:            tx.ID,
			Timestamp:     tx.Timestamp.Format(time.RFC3339),
			Customer:      tx.CustomerName,
			Items:         len(tx.Items),
			Subtotal:      tx.Subtotal,
			Tax:           tx.Tax,
			Discount:      tx.Discount,
			Total:         tx.Total,
			PaymentMethod: tx.PaymentMethod,
			Cashier:       tx.Cashier,
		})
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return errors.Wrap(err, "marshal transactions csv")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write %s", path)
}

// ExportSalesXLSX writes the period summary and the transaction list
// as a spreadsheet.
func (s *Service) ExportSalesXLSX(path string, from, to time.Time) error {
	sum := s.Summarize(from, to)
	xlsx := excelize.NewFile()

	headers := []string{"Receipt", "Date", "Customer", "Subtotal", "Tax", "Discount", "Total", "Method", "Cashier"}
	cols := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	for i, h := range headers {
		xlsx.SetCellValue("Sheet1", cols[i]+"1", h)
	}
	row := 2
	for _, tx := range s.transactions {
		if !from.IsZero() && tx.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && tx.Timestamp.After(to) {
			continue
		}
		values := []interface{}{
			tx.ID,
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.CustomerName,
			tx.Subtotal,
			tx.Tax,
			tx.Discount,
			tx.Total,
			tx.PaymentMethod,
			tx.Cashier,
		}
		for i, v := range values {
			xlsx.SetCellValue("Sheet1", fmt.Sprintf("%s%d", cols[i], row), v)
		}
		row++
	}

	row++
	xlsx.SetCellValue("Sheet1", fmt.Sprintf("A%d", row), "Sales")
	xlsx.SetCellValue("Sheet1", fmt.Sprintf("B%d", row), sum.Count)
	row++
	xlsx.SetCellValue("Sheet1", fmt.Sprintf("A%d", row), "Gross")
	xlsx.SetCellValue("Sheet1", fmt.Sprintf("B%d", row), sum.Gross)
	row++
	xlsx.SetCellValue("Sheet1", fmt.Sprintf("A%d", row), "Average sale")
	xlsx.SetCellValue("Sheet1", fmt.Sprintf("B%d", row), sum.AverageSale)

	return errors.Wrapf(xlsx.SaveAs(path), "write %s", path)
}
