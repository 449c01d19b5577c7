package trackprep

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tracklab/trackprep/date"
)

// This file accesses the stooq.com historical quotes endpoint.
//
// Stooq serves one CSV per instrument:
//
//	Date,Open,High,Low,Close,Volume
//	2024-01-02,185.64,186.95,183.89,185.64,82488700
//	...
//
// US listings carry the ".US" suffix (e.g. AAPL.US). When an instrument is
// unknown the endpoint answers with a body that has no data rows.

// priceFields is the canonical price field priority: adjusted close when the
// source provides it, plain close otherwise. First available column wins.
var priceFields = []string{"Adj Close", "AdjClose", "Close"}

// StooqFetcher retrieves daily historical prices from stooq.com.
type StooqFetcher struct {
	Client *http.Client
}

// NewStooqFetcher returns a fetcher backed by the daily-expiring disk cache.
func NewStooqFetcher() *StooqFetcher {
	return &StooqFetcher{Client: daily()}
}

func (f *StooqFetcher) Name() string { return "stooq" }

// Fetch downloads the instrument's daily candles over the range and returns
// the canonical price series, sorted ascending.
func (f *StooqFetcher) Fetch(symbol string, r date.Range) (Series, error) {
	// d1/d2 bound the range, i=d selects the daily interval.
	addr := fmt.Sprintf("https://stooq.com/q/d/l/?s=%s&d1=%s&d2=%s&i=d",
		url.QueryEscape(strings.ToLower(symbol)), r.From.Fmt("20060102"), r.To.Fmt("20060102"))

	body, err := wget(f.Client, addr)
	if err != nil {
		return Series{}, fmt.Errorf("stooq fetch %s: %w", symbol, err)
	}
	return parseQuoteCSV(symbol, bytes.NewReader(body))
}

// parseQuoteCSV reads a quote CSV into a Series, selecting the canonical
// price field and sorting ascending regardless of the source row order.
func parseQuoteCSV(symbol string, r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return Series{}, fmt.Errorf("stooq parse %s: %w", symbol, err)
	}
	if len(records) < 2 {
		// "No data" answers have no header/rows worth the name.
		return Series{}, &NoDataError{Symbol: symbol}
	}

	header := records[0]
	dateCol := slices.Index(header, "Date")
	if dateCol < 0 {
		return Series{}, fmt.Errorf("stooq parse %s: no Date column in %v", symbol, header)
	}
	priceCol := -1
	for _, name := range priceFields {
		if i := slices.Index(header, name); i >= 0 {
			priceCol = i
			break
		}
	}
	if priceCol < 0 {
		return Series{}, fmt.Errorf("stooq parse %s: no price column in %v", symbol, header)
	}

	s := Series{Symbol: symbol}
	for _, rec := range records[1:] {
		if len(rec) <= dateCol || len(rec) <= priceCol {
			continue
		}
		d, err := date.Parse(rec[dateCol])
		if err != nil {
			return Series{}, fmt.Errorf("stooq parse %s: %w", symbol, err)
		}
		text := strings.TrimSpace(rec[priceCol])
		if text == "" || text == "N/D" {
			continue // quoted but not traded that day
		}
		// Parse through decimal so price text like "50.50" survives exactly
		// before entering float arithmetic.
		dec, err := decimal.NewFromString(text)
		if err != nil {
			return Series{}, fmt.Errorf("stooq parse %s at %s: %w", symbol, d, err)
		}
		price, _ := dec.Float64()
		s.Prices.Append(d, price)
	}
	if s.Prices.Len() == 0 {
		return Series{}, &NoDataError{Symbol: symbol}
	}
	return s, nil
}
