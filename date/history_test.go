package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}
}

func TestAppendOverwrites(t *testing.T) {
	day := New(2025, 07, 01)
	h := new(History[int]).Append(day, 20).Append(day, 10).Append(day, 42)

	if h.Len() != 1 {
		t.Errorf("History.Len() = %v want 1", h.Len())
	}
	if v, ok := h.Get(day); !ok || v != 42 {
		t.Errorf("Get(%v) = %v, %v want 42, true", day, v, ok)
	}
}

func TestAsOf(t *testing.T) {
	h := new(History[int]).
		Append(New(2025, 1, 10), 10).
		Append(New(2025, 1, 20), 20).
		Append(New(2025, 1, 5), 5)

	tests := []struct {
		day    Date
		wantOn Date
		want   int
		ok     bool
	}{
		{New(2025, 1, 1), Date{}, 0, false},
		{New(2025, 1, 5), New(2025, 1, 5), 5, true},
		{New(2025, 1, 9), New(2025, 1, 5), 5, true},
		{New(2025, 1, 10), New(2025, 1, 10), 10, true},
		{New(2025, 1, 19), New(2025, 1, 10), 10, true},
		{New(2025, 2, 1), New(2025, 1, 20), 20, true},
	}
	for _, tt := range tests {
		on, v, ok := h.AsOf(tt.day)
		if on != tt.wantOn || v != tt.want || ok != tt.ok {
			t.Errorf("AsOf(%v) = %v, %v, %v want %v, %v, %v", tt.day, on, v, ok, tt.wantOn, tt.want, tt.ok)
		}
		if v, ok := h.ValueAsOf(tt.day); v != tt.want || ok != tt.ok {
			t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tt.day, v, ok, tt.want, tt.ok)
		}
	}

	if _, ok := h.Get(New(2025, 1, 9)); ok {
		t.Errorf("Get(2025-01-09) found a value, want none")
	}
}

func TestEmptyHistory(t *testing.T) {
	var h History[float64]
	if _, _, ok := h.AsOf(Today()); ok {
		t.Errorf("AsOf() on empty history found a value")
	}
	if day, v := h.Latest(); !day.IsZero() || v != 0 {
		t.Errorf("Latest() = %v, %v want zero values", day, v)
	}
}
