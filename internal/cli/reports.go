package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cast"

	"github.com/tillworks/tillpos/internal/pos"
)

func (ui *UI) handleReports() {
	for !ui.eof {
		fmt.Fprintln(ui.out, "\n--- Reports ---")
		fmt.Fprintln(ui.out, "1) Sales summary")
		fmt.Fprintln(ui.out, "2) Transaction history")
		fmt.Fprintln(ui.out, "3) Export transactions (CSV)")
		fmt.Fprintln(ui.out, "4) Export sales report (XLSX)")
		fmt.Fprintln(ui.out, "0) Back")
		switch ui.prompt("> ") {
		case "1":
			ui.salesSummary()
		case "2":
			ui.transactionHistory()
		case "3":
			path := ui.exportPath("transactions", "csv")
			if err := ui.svc.ExportTransactionsCSV(path); err != nil {
				ui.fail(err)
				continue
			}
			fmt.Fprintln(ui.out, "Written to", path)
		case "4":
			from, to, ok := ui.readPeriod()
			if !ok {
				continue
			}
			path := ui.exportPath("sales", "xlsx")
			if err := ui.svc.ExportSalesXLSX(path, from, to); err != nil {
				ui.fail(err)
				continue
			}
			fmt.Fprintln(ui.out, "Written to", path)
		case "0":
			return
		}
	}
}

// readPeriod reads optional from/to bounds; blank means unbounded.
func (ui *UI) readPeriod() (time.Time, time.Time, bool) {
	var from, to time.Time
	if v := ui.prompt("From date (blank for all): "); v != "" {
		t, err := pos.ParseReportDate(v)
		if err != nil {
			ui.fail(err)
			return from, to, false
		}
		from = t
	}
	if v := ui.prompt("To date (blank for all): "); v != "" {
		t, err := pos.ParseReportDate(v)
		if err != nil {
			ui.fail(err)
			return from, to, false
		}
		// make the bound inclusive through the end of that day
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, true
}

func (ui *UI) salesSummary() {
	from, to, ok := ui.readPeriod()
	if !ok {
		return
	}
	sum := ui.svc.Summarize(from, to)
	fmt.Fprintf(ui.out, "Sales: %d  Gross: %s  Tax: %s  Discounts: %s\n",
		sum.Count, ui.money(sum.Gross), ui.money(sum.Tax), ui.money(sum.Discounts))
	fmt.Fprintf(ui.out, "Average sale: %s  Largest sale: %s\n",
		ui.money(sum.AverageSale), ui.money(sum.LargestSale))
	if len(sum.TopProducts) > 0 {
		fmt.Fprintln(ui.out, "Top sellers:")
		for _, p := range sum.TopProducts {
			fmt.Fprintf(ui.out, "  %-24s x%-4d %s\n", p.Name, p.Quantity, ui.money(p.Revenue))
		}
	}
}

func (ui *UI) transactionHistory() {
	txs := ui.svc.Transactions()
	if len(txs) == 0 {
		fmt.Fprintln(ui.out, "No sales yet.")
		return
	}
	limit := len(txs)
	if limit > 20 {
		limit = 20
	}
	for _, tx := range txs[:limit] {
		who := tx.CustomerName
		if who == "" {
			who = "walk-in"
		}
		fmt.Fprintf(ui.out, "%s  %s  %-8s %-16s %s\n",
			tx.ID, tx.Timestamp.Format("2006-01-02 15:04"), tx.PaymentMethod, who, ui.money(tx.Total))
	}
	idx := ui.prompt("Reprint receipt # id (blank to skip): ")
	if idx == "" {
		return
	}
	for i := range txs {
		if txs[i].ID == idx {
			fmt.Fprint(ui.out, ui.svc.BuildReceipt(&txs[i]).Render())
			return
		}
	}
	fmt.Fprintln(ui.out, "No such receipt.")
}

func (ui *UI) exportPath(kind, ext string) string {
	dir := filepath.Join(ui.app.Config().System.Workdir, "export")
	_ = os.MkdirAll(dir, 0o755)
	name := fmt.Sprintf("%s-%s.%s", kind, time.Now().Format("2006-01-02"), ext)
	return filepath.Join(dir, name)
}

// handleSettings prints the record and edits it field by field; blank
// input keeps the current value. The record is replaced wholesale.
func (ui *UI) handleSettings() {
	s := ui.svc.Settings()
	fmt.Fprintln(ui.out, "\n--- Settings ---")
	fmt.Fprintf(ui.out, "Business: %s / %s / %s\n", s.BusinessName, s.BusinessAddress, s.BusinessPhone)
	fmt.Fprintf(ui.out, "Tax rate: %.2f  Currency: %s  Low-stock threshold: %d\n",
		s.TaxRate, s.Currency, s.LowStockThreshold)
	fmt.Fprintf(ui.out, "Loyalty: enabled=%t rate=%.1f  Auto backup: %t\n",
		s.EnableLoyaltyProgram, s.LoyaltyPointsRate, s.AutoBackup)
	if ui.prompt("Edit? (yes/no): ") != "yes" {
		return
	}

	set := func(label, current string) string {
		if v := ui.prompt(fmt.Sprintf("%s [%s]: ", label, current)); v != "" {
			return v
		}
		return current
	}
	s.BusinessName = set("Business name", s.BusinessName)
	s.BusinessAddress = set("Address", s.BusinessAddress)
	s.BusinessPhone = set("Phone", s.BusinessPhone)
	if v := ui.prompt(fmt.Sprintf("Tax rate (0..1) [%.2f]: ", s.TaxRate)); v != "" {
		s.TaxRate = cast.ToFloat64(v)
	}
	s.Currency = set("Currency", s.Currency)
	s.ReceiptFooter = set("Receipt footer", s.ReceiptFooter)
	if v := ui.prompt(fmt.Sprintf("Low-stock threshold [%d]: ", s.LowStockThreshold)); v != "" {
		s.LowStockThreshold = cast.ToInt(v)
	}
	if v := ui.prompt(fmt.Sprintf("Loyalty program [%t]: ", s.EnableLoyaltyProgram)); v != "" {
		s.EnableLoyaltyProgram = cast.ToBool(v)
	}
	if v := ui.prompt(fmt.Sprintf("Loyalty points rate [%.1f]: ", s.LoyaltyPointsRate)); v != "" {
		s.LoyaltyPointsRate = cast.ToFloat64(v)
	}
	if v := ui.prompt(fmt.Sprintf("Auto backup [%t]: ", s.AutoBackup)); v != "" {
		s.AutoBackup = cast.ToBool(v)
	}
	if ui.eof {
		return
	}
	if err := ui.svc.UpdateSettings(s); err != nil {
		ui.fail(err)
		return
	}
	fmt.Fprintln(ui.out, "Saved.")
}

func (ui *UI) handleBackup() {
	for !ui.eof {
		fmt.Fprintln(ui.out, "\n--- Backup & data ---")
		fmt.Fprintln(ui.out, "1) Backup now")
		fmt.Fprintln(ui.out, "2) Export to file")
		fmt.Fprintln(ui.out, "3) Import from file")
		fmt.Fprintln(ui.out, "4) Clear all data")
		fmt.Fprintln(ui.out, "0) Back")
		switch ui.prompt("> ") {
		case "1":
			path, err := ui.app.BackupNow()
			if err != nil {
				ui.fail(err)
				continue
			}
			fmt.Fprintln(ui.out, "Backup written to", path)
		case "2":
			path := ui.prompt("Export to path: ")
			if path == "" {
				continue
			}
			data, err := ui.svc.ExportAll()
			if err != nil {
				ui.fail(err)
				continue
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				ui.fail(err)
				continue
			}
			fmt.Fprintln(ui.out, "Exported to", path)
		case "3":
			path := ui.prompt("Import from path: ")
			data, err := os.ReadFile(path)
			if err != nil {
				ui.fail(err)
				continue
			}
			if err := ui.svc.ImportAll(data); err != nil {
				ui.fail(err)
				continue
			}
			fmt.Fprintln(ui.out, "Import complete.")
		case "4":
			if ui.prompt("This wipes everything. Type yes to confirm: ") != "yes" {
				continue
			}
			if err := ui.svc.ClearAllData(); err != nil {
				ui.fail(err)
				continue
			}
			fmt.Fprintln(ui.out, "All data cleared. Defaults apply on next start.")
		case "0":
			return
		}
	}
}
