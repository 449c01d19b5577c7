package trackprep

import "github.com/tracklab/trackprep/date"

// Fetcher is the capability to retrieve one instrument's historical prices
// over a closed date range. Implementations return the series sorted
// ascending and fail with NoDataError when the source has nothing for the
// instrument.
type Fetcher interface {
	Fetch(symbol string, r date.Range) (Series, error)
	Name() string
}

// StaticFetcher serves prices from fixed in-memory histories. It is used in
// tests and for offline replays of previously captured data.
type StaticFetcher struct {
	Series map[string]*date.History
}

func (f *StaticFetcher) Name() string { return "static" }

// Fetch returns the instrument's observations restricted to the range.
func (f *StaticFetcher) Fetch(symbol string, r date.Range) (Series, error) {
	h, ok := f.Series[symbol]
	if !ok {
		return Series{}, &NoDataError{Symbol: symbol}
	}
	s := Series{Symbol: symbol}
	for d, v := range h.Values() {
		if r.Contains(d) {
			s.Prices.Append(d, v)
		}
	}
	if s.Prices.Len() == 0 {
		return Series{}, &NoDataError{Symbol: symbol}
	}
	return s, nil
}
