package happyhood

import (
	"testing"

	"github.com/etnz/happyhood/date"
	"github.com/shopspring/decimal"
)

func TestDifferences(t *testing.T) {
	today := date.Today()
	yesterday := today.Add(-1)

	rising := NewHood("rising")
	rising.AddHouse(NewHouse(Address{})).AddValuation(yesterday, usd(100)).AddValuation(today, usd(110))
	rising.AddHouse(NewHouse(Address{})).AddValuation(yesterday, usd(100)).AddValuation(today, usd(100))

	flat := NewHood("flat")
	flat.AddHouse(NewHouse(Address{})).AddValuation(yesterday, usd(50)).AddValuation(today, usd(50))

	empty := NewHood("empty")

	fresh := NewHood("fresh") // no valuation at the start of the range
	fresh.AddHouse(NewHouse(Address{})).AddValuation(today, usd(70))

	falling := NewHood("falling")
	falling.AddHouse(NewHouse(Address{})).AddValuation(today.Add(-5), usd(80)).AddValuation(today, usd(60))

	diffs := Differences([]*Hood{rising, flat, empty, fresh, falling}, date.Daily(today))

	if len(diffs) != 2 {
		t.Fatalf("len(Differences()) = %v want 2: %v", len(diffs), diffs)
	}

	tests := []struct {
		got                Difference
		hood               *Hood
		from, to           date.Date
		before, after, dlt Money
	}{
		{diffs[0], rising, yesterday, today, usd(200), usd(210), usd(10)},
		{diffs[1], falling, today.Add(-5), today, usd(80), usd(60), usd(-20)},
	}
	for _, tt := range tests {
		d := tt.got
		if d.Hood != tt.hood {
			t.Errorf("Difference.Hood = %v want %v", d.Hood.Name, tt.hood.Name)
		}
		if d.From != tt.from || d.To != tt.to {
			t.Errorf("%s: Difference dates = %v..%v want %v..%v", tt.hood.Name, d.From, d.To, tt.from, tt.to)
		}
		if !d.Before.Equal(tt.before) || !d.After.Equal(tt.after) || !d.Delta.Equal(tt.dlt) {
			t.Errorf("%s: Difference = %v -> %v (%v) want %v -> %v (%v)", tt.hood.Name, d.Before, d.After, d.Delta, tt.before, tt.after, tt.dlt)
		}
	}

	if p, ok := diffs[1].Percent(); !ok || !p.Equal(decimal.NewFromFloat(-0.25)) {
		t.Errorf("Percent() = %v, %v want -0.25, true", p, ok)
	}
}

func TestDifferencesEmpty(t *testing.T) {
	if diffs := Differences(nil, date.Daily(date.Today())); len(diffs) != 0 {
		t.Errorf("Differences(nil) = %v want none", diffs)
	}
}

func TestDifferencesMixedCurrencies(t *testing.T) {
	today := date.Today()
	yesterday := today.Add(-1)

	mixed := NewHood("mixed")
	mixed.AddHouse(NewHouse(Address{})).AddValuation(yesterday, usd(100)).AddValuation(today, usd(120))
	mixed.AddHouse(NewHouse(Address{})).AddValuation(yesterday, M(100, "EUR")).AddValuation(today, M(90, "EUR"))

	switched := NewHood("switched")
	switched.AddHouse(NewHouse(Address{})).AddValuation(yesterday, usd(100))
	switched.AddHouse(NewHouse(Address{})).AddValuation(today, M(90, "EUR"))

	rising := NewHood("rising")
	rising.AddHouse(NewHouse(Address{})).AddValuation(yesterday, usd(100)).AddValuation(today, usd(110))

	diffs := Differences([]*Hood{mixed, switched, rising}, date.Daily(today))
	if len(diffs) != 1 || diffs[0].Hood != rising {
		t.Fatalf("Differences() = %v want only the rising hood", diffs)
	}
	if !diffs[0].Delta.Equal(usd(10)) {
		t.Errorf("Delta = %v want $10.00", diffs[0].Delta)
	}
}
