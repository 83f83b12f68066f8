package common

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idNode *snowflake.Node

func init() {
	snowflake.Epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).UnixNano() / 1e6
	var err error
	idNode, err = snowflake.NewNode(int64(os.Getpid() % 1024))
	if err != nil {
		idNode, _ = snowflake.NewNode(1)
	}
}

// NewID returns a process-unique, time-ordered identifier string.
func NewID() string {
	return idNode.Generate().String()
}

// RoundCents rounds a money value to 2 decimal places.
// Applied when a value is persisted or displayed, never inside raw
// totals arithmetic.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatMoney renders an amount with the symbol of the given ISO 4217
// currency code, falling back to "<amount> <code>" for unknown codes.
func FormatMoney(code string, amount float64) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%.2f %s", RoundCents(amount), code)
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", currency.NarrowSymbol(unit.Amount(RoundCents(amount))))
}
