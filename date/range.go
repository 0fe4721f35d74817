package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Daily returns the range from the day before 'to' up to 'to'.
func Daily(to Date) Range { return Range{From: to.Add(-1), To: to} }

// Monthly returns the range from one month before 'to' up to 'to'.
func Monthly(to Date) Range { return Range{From: to.AddMonth(-1), To: to} }

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
