package trackprep

import "math"

// Standardize returns transformed copies of an aligned dataset's index and
// asset return panels. With demean, every asset column and the index series
// lose their own mean (per column, not cross-sectional). With scale, each
// asset column is divided by its own sample standard deviation; a column
// whose deviation is exactly zero is divided by 1 so constant columns stay
// finite. Demeaning happens before scaling when both are requested. Inputs
// are never mutated.
func Standardize(index, assets *Panel, demean, scale bool) (*Panel, *Panel) {
	idx, ast := index.clone(), assets.clone()
	if demean {
		idx = idx.mapColumns(demeanColumn)
		ast = ast.mapColumns(demeanColumn)
	}
	if scale {
		ast = ast.mapColumns(scaleColumn)
	}
	return idx, ast
}

func demeanColumn(col []Cell) []Cell {
	m := mean(col)
	out := make([]Cell, len(col))
	for i, c := range col {
		if c.Valid {
			out[i] = cell(c.Value - m)
		}
	}
	return out
}

func scaleColumn(col []Cell) []Cell {
	sd := stddev(col)
	if sd == 0 {
		sd = 1
	}
	out := make([]Cell, len(col))
	for i, c := range col {
		if c.Valid {
			out[i] = cell(c.Value / sd)
		}
	}
	return out
}

// mean averages the defined cells of a column.
func mean(col []Cell) float64 {
	sum, n := 0.0, 0
	for _, c := range col {
		if c.Valid {
			sum += c.Value
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// stddev is the sample (n-1) standard deviation of the defined cells.
func stddev(col []Cell) float64 {
	m := mean(col)
	sum, n := 0.0, 0
	for _, c := range col {
		if c.Valid {
			d := c.Value - m
			sum += d * d
			n++
		}
	}
	if n < 2 {
		return 0
	}
	return math.Sqrt(sum / float64(n-1))
}
