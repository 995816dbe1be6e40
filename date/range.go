package date

import "iter"

// Range represents a range of dates.
type Range struct{ From, To Date }

// ContainsOpen returns true if the date is in (From, To], the usual window for flows
// received after a start date.
func (r Range) ContainsOpen(date Date) bool { return date.After(r.From) && !date.After(r.To) }

// Ends returns an iterator over the end of every period that intersects the range.
// The last end is clamped to r.To.
func (r Range) Ends(period Period) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if r.To.Before(r.From) {
			return
		}
		for on := r.From.EndOf(period); ; on = on.Add(1).EndOf(period) {
			if !on.Before(r.To) {
				yield(r.To)
				return
			}
			if !yield(on) {
				return
			}
		}
	}
}
