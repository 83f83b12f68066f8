// Package cli is the terminal front-end: numbered menus over the POS
// service. It holds presentation state only; every mutation goes
// through the service.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tillworks/tillpos/internal/app"
	"github.com/tillworks/tillpos/internal/pos"
	"github.com/tillworks/tillpos/pkg/common"
)

type UI struct {
	app *app.Application
	svc *pos.Service
	in  *bufio.Reader
	out io.Writer
	eof bool
}

func NewUI(application *app.Application, in io.Reader, out io.Writer) *UI {
	return &UI{
		app: application,
		svc: application.Service(),
		in:  bufio.NewReader(in),
		out: out,
	}
}

// readLine raises ui.eof when input is exhausted. The menu loops
// unwind on it; the forms must not treat it as a submission.
func (ui *UI) readLine() string {
	line, err := ui.in.ReadString('\n')
	if err != nil && line == "" {
		ui.eof = true
		return ""
	}
	return strings.TrimSpace(line)
}

func (ui *UI) prompt(label string) string {
	fmt.Fprint(ui.out, label)
	return ui.readLine()
}

func (ui *UI) money(v float64) string {
	return common.FormatMoney(ui.svc.Settings().Currency, v)
}

// Run drives the main menu until the operator exits or input ends.
func (ui *UI) Run() {
	for !ui.eof {
		settings := ui.svc.Settings()
		fmt.Fprintf(ui.out, "\n=== %s ===\n", settings.BusinessName)
		fmt.Fprintln(ui.out, "1) New sale")
		fmt.Fprintln(ui.out, "2) Inventory")
		fmt.Fprintln(ui.out, "3) Customers")
		fmt.Fprintln(ui.out, "4) Reports")
		fmt.Fprintln(ui.out, "5) Settings")
		fmt.Fprintln(ui.out, "6) Backup & data")
		fmt.Fprintln(ui.out, "0) Exit")
		switch ui.prompt("> ") {
		case "1":
			ui.handleSale()
		case "2":
			ui.handleInventory()
		case "3":
			ui.handleCustomers()
		case "4":
			ui.handleReports()
		case "5":
			ui.handleSettings()
		case "6":
			ui.handleBackup()
		case "0":
			return
		}
	}
}

func (ui *UI) fail(err error) {
	fmt.Fprintln(ui.out, "Error:", err)
}
