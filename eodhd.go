package trackprep

import (
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/tracklab/trackprep/date"
)

// This file accesses the EODHD end-of-day API.
//
//	https://eodhd.com/api/eod/AAPL.US?fmt=json&from=...&to=...&api_token=...
//
//	[
//	  {
//	    "date": "2024-02-13",
//	    "open": 675.066,
//	    "close": 668.445,
//	    "adjusted_close": 67.705,
//	    ...
//	  },

const eodhdAPIKeyEnv = "EODHD_API_KEY"

// eodhdPriceFields is the price field priority on the EODHD payload,
// mirroring priceFields for the CSV sources.
var eodhdPriceFields = []string{"$[*].adjusted_close", "$[*].adjClose", "$[*].close"}

// EODHDFetcher retrieves daily historical prices from eodhd.com.
type EODHDFetcher struct {
	APIKey string
	Client *http.Client
}

// NewEODHDFetcher returns a fetcher for the given API key. An empty key
// falls back to the EODHD_API_KEY environment variable.
func NewEODHDFetcher(apiKey string) *EODHDFetcher {
	if apiKey == "" {
		apiKey = os.Getenv(eodhdAPIKeyEnv)
	}
	return &EODHDFetcher{APIKey: apiKey, Client: daily()}
}

func (f *EODHDFetcher) Name() string { return "eodhd" }

// Fetch downloads the instrument's end-of-day rows over the range and
// returns the canonical price series, sorted ascending.
func (f *EODHDFetcher) Fetch(symbol string, r date.Range) (Series, error) {
	if f.APIKey == "" {
		return Series{}, fmt.Errorf("eodhd fetch %s: missing API key (flag or %s)", symbol, eodhdAPIKeyEnv)
	}
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&from=%s&to=%s&api_token=%s",
		url.PathEscape(symbol), r.From, r.To, f.APIKey)

	var payload any
	if err := jwget(f.Client, addr, &payload); err != nil {
		return Series{}, fmt.Errorf("eodhd fetch %s: %w", symbol, err)
	}
	return eodhdSeries(symbol, payload)
}

// eodhdSeries extracts the canonical price series from a decoded EODHD
// payload. The payload schema is not pinned down by the vendor, so fields
// are pulled by jsonpath and the first available price field wins.
func eodhdSeries(symbol string, payload any) (Series, error) {
	days, err := jsonpath.Get("$[*].date", payload)
	if err != nil {
		return Series{}, fmt.Errorf("eodhd parse %s: %q: %w", symbol, "$[*].date", err)
	}
	jdays, ok := days.([]any)
	if !ok || len(jdays) == 0 {
		return Series{}, &NoDataError{Symbol: symbol}
	}

	var jprices []any
	for _, path := range eodhdPriceFields {
		v, err := jsonpath.Get(path, payload)
		if err != nil {
			continue
		}
		if list, ok := v.([]any); ok && len(list) == len(jdays) {
			jprices = list
			break
		}
	}
	if jprices == nil {
		return Series{}, fmt.Errorf("eodhd parse %s: no price field among %v", symbol, eodhdPriceFields)
	}

	s := Series{Symbol: symbol}
	for i, jd := range jdays {
		str, ok := jd.(string)
		if !ok {
			return Series{}, fmt.Errorf("eodhd parse %s: date %v is not a string", symbol, jd)
		}
		d, err := date.Parse(str)
		if err != nil {
			return Series{}, fmt.Errorf("eodhd parse %s: %w", symbol, err)
		}
		price, ok := jprices[i].(float64)
		if !ok {
			continue // null price rows happen around listing gaps
		}
		s.Prices.Append(d, price)
	}
	if s.Prices.Len() == 0 {
		return Series{}, &NoDataError{Symbol: symbol}
	}
	return s, nil
}
