package trackprep

import "github.com/tracklab/trackprep/date"

// Series is a single instrument's price history. Dates are unique and
// sorted ascending; a date absent from the history is a missing
// observation.
type Series struct {
	Symbol string
	Prices date.History
}

// Cell is one observation slot in a panel column. A cell with Valid false
// is an undefined observation; Value is meaningful only when Valid is true.
// Missing data is never encoded as a sentinel number.
type Cell struct {
	Value float64
	Valid bool
}

// cell is shorthand for a defined observation.
func cell(v float64) Cell { return Cell{Value: v, Valid: true} }
