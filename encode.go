package trackprep

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Output file names inside the dataset directory.
const (
	AssetPricesFile  = "prices_assets.csv"
	IndexPricesFile  = "prices_index.csv"
	AssetReturnsFile = "returns_assets.csv"
	IndexReturnsFile = "returns_index.csv"
	MetadataFile     = "metadata.json"
)

// dateHeader labels the row-index column of every table.
const dateHeader = "Date"

// WriteCSV writes a panel as CSV: a Date column followed by one column per
// instrument, rows in ascending date order. Undefined cells are written
// empty.
func WriteCSV(w io.Writer, p *Panel) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{dateHeader}, p.symbols...)); err != nil {
		return err
	}
	record := make([]string, 1+len(p.symbols))
	for i, d := range p.dates {
		record[0] = d.String()
		for j := range p.symbols {
			c := p.cols[j][i]
			if c.Valid {
				record[j+1] = strconv.FormatFloat(c.Value, 'g', -1, 64)
			} else {
				record[j+1] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SavePanel writes a panel as a CSV file.
func SavePanel(path string, p *Panel) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, p); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Save persists the dataset under dir: the four price/return tables and the
// metadata record. It returns the written paths in order.
func (ds *Dataset) Save(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	tables := []struct {
		name  string
		panel *Panel
	}{
		{AssetPricesFile, ds.AssetPrices},
		{IndexPricesFile, ds.IndexPrices},
		{AssetReturnsFile, ds.AssetReturns},
		{IndexReturnsFile, ds.IndexReturns},
	}

	var written []string
	for _, t := range tables {
		path := filepath.Join(dir, t.name)
		if err := SavePanel(path, t.panel); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	metaPath := filepath.Join(dir, MetadataFile)
	data, err := json.MarshalIndent(ds.Meta, "", "  ")
	if err != nil {
		return written, err
	}
	if err := os.WriteFile(metaPath, data, 0644); err != nil {
		return written, fmt.Errorf("write %s: %w", metaPath, err)
	}
	return append(written, metaPath), nil
}
