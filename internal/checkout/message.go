// Package checkout turns a cart into the order text handed off to the
// messaging channel and builds the deep link that carries it.
package checkout

import (
	"fmt"
	"strings"

	"github.com/nikolayk812/beer-catalog/internal/domain"
)

const DefaultGreeting = "Hola! Pedido: "

type MessageOptions struct {
	Greeting       string
	CurrencySymbol string
	WithSubtotals  bool
}

// Message renders the order as a greeting line, one "<quantity>x <name>"
// line per item and a closing "Total: <amount>" line. CurrencySymbol only
// prefixes the optional item subtotals.
func Message(items []domain.CartItem, total domain.Money, opts MessageOptions) string {
	greeting := opts.Greeting
	if greeting == "" {
		greeting = DefaultGreeting
	}

	lines := make([]string, 0, len(items)+2)
	lines = append(lines, greeting)

	for _, item := range items {
		line := fmt.Sprintf("%dx %s", item.Quantity, item.Name)
		if opts.WithSubtotals {
			line += " - " + opts.CurrencySymbol + item.Subtotal().Amount.String()
		}
		lines = append(lines, line)
	}

	lines = append(lines, "Total: "+total.Amount.String())

	return strings.Join(lines, "\n")
}

// Summary backs the floating cart bar.
type Summary struct {
	TotalUnits int
	Total      domain.Money
}

func (s Summary) Label() string {
	if s.TotalUnits == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", s.TotalUnits)
}
