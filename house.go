package happyhood

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/etnz/happyhood/date"
	"github.com/google/uuid"
)

// Address locates a house. Every field is optional.
type Address struct {
	StreetAddress string `json:"street_address,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	ZipCode       string `json:"zip_code,omitempty"`
}

// IsZero returns true if no field of the address is set.
func (a Address) IsZero() bool { return a == Address{} }

// CityStateZip returns the locality part of the address, like "Salt Lake City, UT 84044".
func (a Address) CityStateZip() string {
	locality := strings.TrimSpace(a.State + " " + a.ZipCode)
	switch {
	case a.City == "":
		return locality
	case locality == "":
		return a.City
	default:
		return a.City + ", " + locality
	}
}

func (a Address) String() string {
	switch csz := a.CityStateZip(); {
	case a.StreetAddress == "":
		return csz
	case csz == "":
		return a.StreetAddress
	default:
		return a.StreetAddress + ", " + csz
	}
}

// ErrCurrencyMismatch is returned when valuations in different currencies would be summed together.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// House is a single property of a Hood, with its valuation history.
type House struct {
	ID     uuid.UUID
	HoodID uuid.UUID
	Address

	zpid   *string // external identifier, nil until resolved
	prices date.History[Money]
}

// NewHouse returns a new house at the given address, with a fresh ID and no valuation.
func NewHouse(addr Address) *House {
	return &House{ID: uuid.New(), Address: addr}
}

// ExternalID returns the Zillow property ID (zpid) of the house, if known.
func (h *House) ExternalID() (string, bool) {
	if h.zpid == nil {
		return "", false
	}
	return *h.zpid, true
}

// SetExternalID sets the Zillow property ID (zpid) of the house.
func (h *House) SetExternalID(zpid string) { h.zpid = &zpid }

// AddValuation records the valuation of the house on a given day.
//
// A valuation already recorded that day is replaced. Negative amounts are
// accepted as-is. It returns the house itself so that calls can be chained.
func (h *House) AddValuation(on date.Date, amount Money) *House {
	h.prices.Append(on, amount)
	return h
}

// ValuationOn returns the valuation recorded exactly on that day, or zero.
func (h *House) ValuationOn(on date.Date) Money {
	v, _ := h.prices.Get(on)
	return v
}

// ValuationOnOrBefore returns the latest valuation recorded on or before a given day,
// along with the day it was recorded. It returns false if there is none.
func (h *House) ValuationOnOrBefore(on date.Date) (date.Date, Money, bool) {
	return h.prices.AsOf(on)
}

// Valuations returns an iterator over all valuations of the house, in chronological order.
func (h *House) Valuations() iter.Seq2[date.Date, Money] { return h.prices.Values() }

// Currency returns the currency of the house valuations, "" if none has one.
// It fails if the valuations are not all in the same currency.
func (h *House) Currency() (string, error) {
	found := ""
	for on, amount := range h.prices.Values() {
		switch c := amount.Currency(); {
		case c == "" || c == found:
		case found == "":
			found = c
		default:
			return "", fmt.Errorf("%s valued in %s on %s after %s: %w", h, c, on, found, ErrCurrencyMismatch)
		}
	}
	return found, nil
}

// LatestValuation returns the most recent valuation, zero values if there is none.
func (h *House) LatestValuation() (date.Date, Money) { return h.prices.Latest() }

func (h *House) String() string {
	if h.Address.IsZero() {
		return fmt.Sprintf("house %s", h.ID)
	}
	return h.Address.String()
}
