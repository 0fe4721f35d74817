package happyhood

import (
	"log"

	"github.com/etnz/happyhood/date"
	"github.com/shopspring/decimal"
)

// Difference is the change of a hood's total valuation between two days.
type Difference struct {
	Hood   *Hood
	From   date.Date // day the Before valuation was actually taken
	Before Money
	To     date.Date // day the After valuation was actually taken
	After  Money
	Delta  Money // After - Before
}

// Percent returns the relative change (0.05 for +5%), or false when Before is zero.
func (d Difference) Percent() (decimal.Decimal, bool) {
	return d.Delta.Ratio(d.Before)
}

// Differences computes, for each hood, the valuation on or before each end of the range.
//
// Hoods without a valuation at either end, whose valuation did not change, or
// whose ends are in different currencies are left out. The result follows the order of hoods.
func Differences(hoods []*Hood, r date.Range) []Difference {
	diffs := make([]Difference, 0, len(hoods))
	for _, hood := range hoods {
		before := hood.ValuationOnOrBefore(r.From)
		after := hood.ValuationOnOrBefore(r.To)
		if !before.Valued() || !after.Valued() || after.Valuation.Equal(before.Valuation) {
			continue
		}
		if !compatible(before.Valuation, after.Valuation) {
			log.Printf("warning: hood %q changed currency from %s to %s, skipped", hood.Name, before.Valuation.Currency(), after.Valuation.Currency())
			continue
		}
		diffs = append(diffs, Difference{
			Hood:   hood,
			From:   before.On,
			Before: before.Valuation,
			To:     after.On,
			After:  after.Valuation,
			Delta:  after.Valuation.Sub(before.Valuation),
		})
	}
	return diffs
}
