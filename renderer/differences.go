package renderer

import (
	"fmt"

	"github.com/etnz/happyhood"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Differences renders one line per difference, in order.
//
//	Maple Grove went up $1,500.00 (+2.31%), from $65,000.00 on 2025-10-17 to $66,500.00 on 2025-10-18
func Differences(diffs []happyhood.Difference) []string {
	lines := make([]string, 0, len(diffs))
	for _, d := range diffs {
		lines = append(lines, Difference(d))
	}
	return lines
}

// Difference renders a single difference.
func Difference(d happyhood.Difference) string {
	direction := "up"
	if d.Delta.IsNegative() {
		direction = "down"
	}
	change := d.Delta.Abs().String()
	if p, ok := d.Percent(); ok {
		change += fmt.Sprintf(" (%s%%)", signed(p.Mul(hundred)))
	}
	return fmt.Sprintf("%s went %s %s, from %s on %s to %s on %s",
		hoodName(d.Hood), direction, change, d.Before, d.From, d.After, d.To)
}

// Snapshot renders the valuation of a hood as of a day.
func Snapshot(hood *happyhood.Hood, s happyhood.Snapshot) string {
	if !s.Valued() {
		return fmt.Sprintf("%s has no valuation", hoodName(hood))
	}
	return fmt.Sprintf("%s was valued %s on %s", hoodName(hood), s.Valuation, s.On)
}

func signed(p decimal.Decimal) string {
	s := p.StringFixed(2)
	if p.IsPositive() {
		return "+" + s
	}
	return s
}

func hoodName(h *happyhood.Hood) string {
	if h == nil {
		return "Unknown hood"
	}
	if h.Name == "" {
		return fmt.Sprintf("Hood %s", h.ID)
	}
	return h.Name
}
