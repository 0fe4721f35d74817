package happyhood

import (
	"errors"
	"slices"
	"testing"

	"github.com/etnz/happyhood/date"
)

// usd is a short hand for amounts in tests.
func usd(v int) Money { return M(v, "USD") }

func TestHouseAddress(t *testing.T) {
	house := NewHouse(Address{
		StreetAddress: "123 fake st",
		City:          "Chicago",
		State:         "IL",
		ZipCode:       "60601",
	})

	if house.StreetAddress != "123 fake st" || house.City != "Chicago" || house.State != "IL" || house.ZipCode != "60601" {
		t.Errorf("NewHouse() address = %+v", house.Address)
	}
	if got, want := house.String(), "123 fake st, Chicago, IL 60601"; got != want {
		t.Errorf("house.String() = %q want %q", got, want)
	}
}

func TestHouseExternalID(t *testing.T) {
	house := NewHouse(Address{})
	if id, ok := house.ExternalID(); ok {
		t.Errorf("new house ExternalID() = %q, true want none", id)
	}

	house.SetExternalID("1")
	if id, ok := house.ExternalID(); !ok || id != "1" {
		t.Errorf("ExternalID() = %q, %v want %q, true", id, ok, "1")
	}
}

func TestHouseCurrency(t *testing.T) {
	today := date.Today()
	house := NewHouse(Address{StreetAddress: "1 Elm St"})
	if c, err := house.Currency(); err != nil || c != "" {
		t.Errorf("Currency() without valuation = %q, %v want none", c, err)
	}

	house.AddValuation(today.Add(-2), M(10, "")).AddValuation(today.Add(-1), usd(20))
	if c, err := house.Currency(); err != nil || c != "USD" {
		t.Errorf("Currency() = %q, %v want USD", c, err)
	}

	house.AddValuation(today, M(30, "EUR"))
	if _, err := house.Currency(); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Currency() with USD and EUR error = %v want %v", err, ErrCurrencyMismatch)
	}
}

func TestValuationOn(t *testing.T) {
	today := date.Today()
	house := NewHouse(Address{}).AddValuation(today, usd(20))

	if got := house.ValuationOn(today.Add(-1)); !got.IsZero() {
		t.Errorf("ValuationOn(yesterday) = %v want 0", got)
	}
	if got := house.ValuationOn(today); !got.Equal(usd(20)) {
		t.Errorf("ValuationOn(today) = %v want %v", got, usd(20))
	}
}

func TestNoValuation(t *testing.T) {
	house := NewHouse(Address{})
	for _, day := range []date.Date{date.Today(), date.Today().Add(-1000), date.Today().Add(1000)} {
		if got := house.ValuationOn(day); !got.IsZero() {
			t.Errorf("ValuationOn(%v) = %v want 0", day, got)
		}
		if on, v, ok := house.ValuationOnOrBefore(day); ok {
			t.Errorf("ValuationOnOrBefore(%v) = %v, %v want none", day, on, v)
		}
	}
}

func TestAddValuationIsChainable(t *testing.T) {
	day := date.Today().Add(-1)

	house := NewHouse(Address{})
	house.AddValuation(day, usd(20))
	house.AddValuation(day, usd(10))
	house.AddValuation(day, usd(42))

	house2 := NewHouse(Address{}).
		AddValuation(day, usd(20)).
		AddValuation(day, usd(10)).
		AddValuation(day, usd(42))

	if !slices.EqualFunc(valuations(house), valuations(house2), Money.Equal) {
		t.Errorf("chained valuations = %v want %v", valuations(house2), valuations(house))
	}
}

func TestAddValuationKeepsLastUpdate(t *testing.T) {
	today := date.Today()

	house := NewHouse(Address{}).
		AddValuation(today, usd(20)).
		AddValuation(today, usd(10)).
		AddValuation(today, usd(42))

	if got := house.ValuationOn(today); !got.Equal(usd(42)) {
		t.Errorf("ValuationOn(today) = %v want %v", got, usd(42))
	}
	if got := len(valuations(house)); got != 1 {
		t.Errorf("len(valuations) = %v want 1", got)
	}

	// Same value twice is idempotent.
	once := NewHouse(Address{}).AddValuation(today, usd(7))
	twice := NewHouse(Address{}).AddValuation(today, usd(7)).AddValuation(today, usd(7))
	if !slices.EqualFunc(valuations(once), valuations(twice), Money.Equal) {
		t.Errorf("valuations = %v want %v", valuations(twice), valuations(once))
	}
}

func TestValuationOnOrBefore(t *testing.T) {
	today := date.Today()
	house := NewHouse(Address{}).
		AddValuation(today.Add(-3), usd(5)).
		AddValuation(today.Add(-1), usd(20))

	tests := []struct {
		day    date.Date
		wantOn date.Date
		want   Money
		ok     bool
	}{
		{today.Add(-4), date.Date{}, Money{}, false},
		{today.Add(-3), today.Add(-3), usd(5), true},
		{today.Add(-2), today.Add(-3), usd(5), true},
		{today, today.Add(-1), usd(20), true},
	}
	for _, tt := range tests {
		on, v, ok := house.ValuationOnOrBefore(tt.day)
		if on != tt.wantOn || !v.Equal(tt.want) || ok != tt.ok {
			t.Errorf("ValuationOnOrBefore(%v) = %v, %v, %v want %v, %v, %v", tt.day, on, v, ok, tt.wantOn, tt.want, tt.ok)
		}
	}
}

// valuations collects the valuation amounts of a house in chronological order.
func valuations(h *House) []Money {
	var list []Money
	for _, v := range h.Valuations() {
		list = append(list, v)
	}
	return list
}
