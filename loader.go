package trackprep

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tracklab/trackprep/date"
)

// Standalone loader for previously written return tables, for consumers
// that standardize or model without re-running the fetch pipeline.

// LoadReturns reads an index return table and an asset return table,
// inner-joins them on their shared date column, drops asset columns with no
// defined cell at all, then drops every row still containing an undefined
// cell. The returned panels share an identical, fully defined date axis.
func LoadReturns(indexPath, assetsPath string) (index, assets *Panel, err error) {
	index, err = LoadPanel(indexPath)
	if err != nil {
		return nil, nil, err
	}
	assets, err = LoadPanel(assetsPath)
	if err != nil {
		return nil, nil, err
	}

	index, assets = Intersect(index, assets)
	assets = assets.dropUndefinedColumns()

	// Keep only rows defined across both tables.
	keep := make([]bool, index.Rows())
	for i := range keep {
		keep[i] = true
		for j := 0; j < index.Cols(); j++ {
			keep[i] = keep[i] && index.At(i, j).Valid
		}
		for j := 0; j < assets.Cols(); j++ {
			keep[i] = keep[i] && assets.At(i, j).Valid
		}
	}
	return index.selectRows(keep), assets.selectRows(keep), nil
}

// LoadPanel reads a CSV table whose first column is the date label and
// whose remaining columns are instruments. Empty and NaN cells load as
// undefined. Rows are re-sorted ascending regardless of file order.
func LoadPanel(path string) (*Panel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p, nil
}

// ReadCSV parses a date-labelled CSV table into a panel.
func ReadCSV(r io.Reader) (*Panel, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table")
	}
	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("table has no instrument columns: %v", header)
	}
	symbols := header[1:]

	// Collect one sparse history per column, plus the full row axis: a row
	// that is undefined in every column still belongs to the axis when the
	// file carries it.
	histories := make([]date.History, len(symbols))
	var axis date.History
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		d, err := date.Parse(rec[0])
		if err != nil {
			return nil, err
		}
		axis.Append(d, 0)
		for j := range symbols {
			if j+1 >= len(rec) {
				continue
			}
			text := rec[j+1]
			if text == "" || text == "NaN" || text == "nan" {
				continue
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("row %s column %s: %w", d, symbols[j], err)
			}
			histories[j].Append(d, v)
		}
	}

	dates := make([]date.Date, 0, axis.Len())
	for d := range axis.Values() {
		dates = append(dates, d)
	}
	cols := make([][]Cell, len(symbols))
	for j := range symbols {
		col := make([]Cell, len(dates))
		for i, d := range dates {
			if v, ok := histories[j].Get(d); ok {
				col[i] = cell(v)
			}
		}
		cols[j] = col
	}
	return &Panel{dates: dates, symbols: symbols, cols: cols}, nil
}
