package trackprep

import (
	"math"

	"github.com/tracklab/trackprep/date"
)

// test helpers shared across the package tests.

const tolerance = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) <= tolerance }

// history builds a History from alternating "date", value pairs given as a
// date slice and a value slice of equal length.
func history(days []string, values []float64) *date.History {
	h := new(date.History)
	for i, d := range days {
		h.Append(date.MustParse(d), values[i])
	}
	return h
}

// panelOf builds a panel column by column from explicit cells. All columns
// must share the axis length.
func panelOf(days []string, symbols []string, cols [][]Cell) *Panel {
	dates := make([]date.Date, len(days))
	for i, d := range days {
		dates[i] = date.MustParse(d)
	}
	return &Panel{dates: dates, symbols: symbols, cols: cols}
}

// undef is an undefined observation.
var undef = Cell{}

func cells(values ...Cell) []Cell { return values }
