package trackprep

import (
	"slices"

	"github.com/tracklab/trackprep/date"
)

// ForwardFill returns a copy of the panel where undefined cells are filled
// with the most recent prior defined value in the same column, for at most
// limit consecutive undefined cells. Cells deeper into a gap than limit stay
// undefined, and leading undefined cells are never filled. A limit of 0 is
// the identity.
func (p *Panel) ForwardFill(limit int) *Panel {
	return p.mapColumns(func(col []Cell) []Cell { return forwardFill(col, limit) })
}

// forwardFill is the pure, single-column fill. Columns are independent;
// filling never looks across columns.
func forwardFill(col []Cell, limit int) []Cell {
	out := slices.Clone(col)
	var last Cell
	run := 0
	for i, c := range out {
		if c.Valid {
			last, run = c, 0
			continue
		}
		run++
		if last.Valid && run <= limit {
			out[i] = last
		}
	}
	return out
}

// Resample reindexes a daily panel to period boundaries: contiguous weekly
// (ending Friday) or monthly (ending on the last calendar day) buckets
// spanning the input axis, each holding the column's last defined
// observation within the period. Daily is the identity. A bucket with no
// observation for a column yields an undefined cell.
func (p *Panel) Resample(period date.Period) *Panel {
	if period == date.Daily || p.Rows() == 0 {
		return p.clone()
	}

	first := p.dates[0].EndOf(period)
	last := p.dates[len(p.dates)-1].EndOf(period)
	var ends []date.Date
	index := make(map[date.Date]int)
	for end := first; !end.After(last); end = end.Add(1).EndOf(period) {
		index[end] = len(ends)
		ends = append(ends, end)
	}

	cols := make([][]Cell, len(p.cols))
	for j, col := range p.cols {
		out := make([]Cell, len(ends))
		for i, c := range col {
			if !c.Valid {
				continue
			}
			// Rows are ascending, so the last write per bucket wins.
			out[index[p.dates[i].EndOf(period)]] = c
		}
		cols[j] = out
	}
	return &Panel{dates: ends, symbols: slices.Clone(p.symbols), cols: cols}
}
