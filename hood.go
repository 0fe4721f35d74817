package happyhood

import (
	"log"
	"slices"

	"github.com/etnz/happyhood/date"
	"github.com/google/uuid"
)

// Hood is a neighborhood: a named group of houses whose valuations are summed together.
type Hood struct {
	ID     uuid.UUID
	Name   string
	Houses []*House
}

// NewHood returns an empty hood with a fresh ID.
func NewHood(name string) *Hood {
	return &Hood{ID: uuid.New(), Name: name}
}

// AddHouse makes the house a member of the hood and returns it.
func (h *Hood) AddHouse(house *House) *House {
	house.HoodID = h.ID
	h.Houses = append(h.Houses, house)
	return house
}

// Snapshot is the total valuation of a hood as of a day.
//
// The zero Snapshot means that no valuation is known.
type Snapshot struct {
	On        date.Date `json:"date"`
	Valuation Money     `json:"valuation"`
}

// Valued reports whether the snapshot carries a valuation.
func (s Snapshot) Valued() bool { return !s.On.IsZero() }

// ValuationOnOrBefore returns the total valuation of the hood as of a given day.
//
// Houses are not all valuated on the same days, so the latest valuation of
// each house cannot be summed directly. Instead, among the days the houses
// were last valuated on or before 'on', it selects the one on which the most
// houses have a valuation, the most recent one in case of a tie, and sums the
// valuations recorded that day.
//
// Houses without any valuation on or before 'on' are ignored, and so are the
// days on which houses are valued in different currencies.
func (h *Hood) ValuationOnOrBefore(on date.Date) Snapshot {
	candidates := make([]date.Date, 0, len(h.Houses))
	for _, house := range h.Houses {
		if day, _, ok := house.ValuationOnOrBefore(on); ok && !slices.Contains(candidates, day) {
			candidates = append(candidates, day)
		}
	}

	var best Snapshot
	bestCoverage := 0
	for _, day := range candidates {
		coverage, total, ok := h.valuationOn(day)
		if !ok {
			log.Printf("warning: hood %q mixes currencies on %s, day ignored", h.Name, day)
			continue
		}
		if coverage > bestCoverage || (coverage == bestCoverage && day.After(best.On)) {
			best, bestCoverage = Snapshot{On: day, Valuation: total}, coverage
		}
	}
	return best
}

// ValuationBefore returns the total valuation of the hood strictly before a given day.
func (h *Hood) ValuationBefore(on date.Date) Snapshot {
	return h.ValuationOnOrBefore(on.Add(-1))
}

// valuationOn returns the number of houses valuated exactly on day, and their total.
// It returns false if those valuations cannot be summed.
func (h *Hood) valuationOn(day date.Date) (coverage int, total Money, ok bool) {
	for _, house := range h.Houses {
		v, found := house.prices.Get(day)
		if !found {
			continue
		}
		if !compatible(total, v) {
			return 0, Money{}, false
		}
		coverage++
		total = total.Add(v)
	}
	return coverage, total, true
}
