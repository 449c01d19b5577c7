package trackprep

import (
	"fmt"
	"slices"

	"github.com/tracklab/trackprep/date"
)

// Panel is a date-indexed table of instrument columns sharing one axis.
// The axis is the union of the constituent series' dates, sorted ascending;
// cells for dates an instrument lacks are undefined. Panels are treated as
// immutable: every transformation returns a new Panel.
type Panel struct {
	dates   []date.Date
	symbols []string
	cols    [][]Cell // column-major, len(cols[i]) == len(dates)
}

// NewPanel builds a panel from one series per instrument, outer-joined on
// date. Column order follows the input order.
func NewPanel(series ...Series) *Panel {
	histories := make([]*date.History, len(series))
	symbols := make([]string, len(series))
	for i := range series {
		histories[i] = &series[i].Prices
		symbols[i] = series[i].Symbol
	}

	var dates []date.Date
	for d := range date.Iterate(histories...) {
		dates = append(dates, d)
	}

	cols := make([][]Cell, len(series))
	for i, h := range histories {
		col := make([]Cell, len(dates))
		for r, d := range dates {
			if v, ok := h.Get(d); ok {
				col[r] = cell(v)
			}
		}
		cols[i] = col
	}
	return &Panel{dates: dates, symbols: symbols, cols: cols}
}

// BuildPanel fetches every instrument in order and outer-joins the results.
// Any failed fetch fails the whole build; there is no retry and no skip.
func BuildPanel(f Fetcher, symbols []string, r date.Range) (*Panel, error) {
	series := make([]Series, 0, len(symbols))
	for _, sym := range symbols {
		s, err := f.Fetch(sym, r)
		if err != nil {
			return nil, fmt.Errorf("fetch %s from %s: %w", sym, f.Name(), err)
		}
		series = append(series, s)
	}
	return NewPanel(series...), nil
}

// Rows returns the number of dates on the panel's axis.
func (p *Panel) Rows() int { return len(p.dates) }

// Cols returns the number of instrument columns.
func (p *Panel) Cols() int { return len(p.symbols) }

// Dates returns a copy of the panel's date axis, ascending.
func (p *Panel) Dates() []date.Date { return slices.Clone(p.dates) }

// Symbols returns a copy of the panel's column names, in column order.
func (p *Panel) Symbols() []string { return slices.Clone(p.symbols) }

// Date returns the date of row i.
func (p *Panel) Date(i int) date.Date { return p.dates[i] }

// At returns the cell at row i of column j.
func (p *Panel) At(i, j int) Cell { return p.cols[j][i] }

// Column returns a copy of the named column, or nil when the panel has no
// such instrument.
func (p *Panel) Column(symbol string) []Cell {
	j := slices.Index(p.symbols, symbol)
	if j < 0 {
		return nil
	}
	return slices.Clone(p.cols[j])
}

// clone returns a deep copy of the panel.
func (p *Panel) clone() *Panel {
	cols := make([][]Cell, len(p.cols))
	for i, col := range p.cols {
		cols[i] = slices.Clone(col)
	}
	return &Panel{dates: slices.Clone(p.dates), symbols: slices.Clone(p.symbols), cols: cols}
}

// mapColumns applies a pure column transformation to every column,
// preserving the axis.
func (p *Panel) mapColumns(fn func([]Cell) []Cell) *Panel {
	cols := make([][]Cell, len(p.cols))
	for i, col := range p.cols {
		cols[i] = fn(col)
	}
	return &Panel{dates: slices.Clone(p.dates), symbols: slices.Clone(p.symbols), cols: cols}
}

// selectRows returns a new panel keeping only the rows where keep is true.
func (p *Panel) selectRows(keep []bool) *Panel {
	var dates []date.Date
	for i, d := range p.dates {
		if keep[i] {
			dates = append(dates, d)
		}
	}
	cols := make([][]Cell, len(p.cols))
	for j, col := range p.cols {
		out := make([]Cell, 0, len(dates))
		for i, c := range col {
			if keep[i] {
				out = append(out, c)
			}
		}
		cols[j] = out
	}
	return &Panel{dates: dates, symbols: slices.Clone(p.symbols), cols: cols}
}

// selectDates returns a new panel restricted to the given ascending dates.
// Dates not on the panel's axis are ignored.
func (p *Panel) selectDates(ds []date.Date) *Panel {
	rows := make(map[date.Date]int, len(p.dates))
	for i, d := range p.dates {
		rows[d] = i
	}
	keep := make([]bool, len(p.dates))
	for _, d := range ds {
		if i, ok := rows[d]; ok {
			keep[i] = true
		}
	}
	return p.selectRows(keep)
}

// dropUndefinedColumns returns a new panel without the columns that hold no
// defined cell at all.
func (p *Panel) dropUndefinedColumns() *Panel {
	var symbols []string
	var cols [][]Cell
	for j, col := range p.cols {
		if slices.ContainsFunc(col, func(c Cell) bool { return c.Valid }) {
			symbols = append(symbols, p.symbols[j])
			cols = append(cols, slices.Clone(col))
		}
	}
	return &Panel{dates: slices.Clone(p.dates), symbols: symbols, cols: cols}
}

// dropUndefinedRows returns a new panel without the rows where every column
// is undefined. Rows with at least one defined cell are kept.
func (p *Panel) dropUndefinedRows() *Panel {
	keep := make([]bool, len(p.dates))
	for i := range p.dates {
		for _, col := range p.cols {
			if col[i].Valid {
				keep[i] = true
				break
			}
		}
	}
	return p.selectRows(keep)
}

// FullyDefined reports whether every cell in the panel is defined.
func (p *Panel) FullyDefined() bool {
	for _, col := range p.cols {
		for _, c := range col {
			if !c.Valid {
				return false
			}
		}
	}
	return true
}
