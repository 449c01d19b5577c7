package date

import "fmt"

// Range represents a closed range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange returns the range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains reports whether the date is included in the range.
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// IsValid reports whether the range boundaries are set and ordered.
func (r Range) IsValid() bool {
	return !r.From.IsZero() && !r.To.IsZero() && !r.To.Before(r.From)
}

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
