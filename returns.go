package trackprep

// SimpleReturns converts a price panel to simple period-over-period returns:
// r = P/Pprev - 1, where Pprev is the column's most recent defined value on
// an earlier row of the panel's axis. A return is defined only where both
// prices are defined; when gap-filling has bridged a missing day the return
// spans the filled value, not the raw market move (see docs/returns.md).
//
// Rows left with no defined cell in any column, typically the first row, are
// dropped from the result.
func (p *Panel) SimpleReturns() *Panel {
	return p.mapColumns(simpleReturns).dropUndefinedRows()
}

// simpleReturns is the pure, single-column conversion over an ordered
// sequence of optional prices.
func simpleReturns(col []Cell) []Cell {
	out := make([]Cell, len(col))
	var prev Cell
	for i, c := range col {
		if c.Valid && prev.Valid {
			out[i] = cell(c.Value/prev.Value - 1)
		}
		if c.Valid {
			prev = c
		}
	}
	return out
}
