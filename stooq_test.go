package trackprep

import (
	"errors"
	"strings"
	"testing"

	"github.com/tracklab/trackprep/date"
)

func TestParseQuoteCSV(t *testing.T) {
	// Stooq serves descending order for some endpoints; the series must come
	// out ascending regardless.
	in := strings.Join([]string{
		"Date,Open,High,Low,Close,Volume",
		"2024-01-03,101,102,100,101.5,1200",
		"2024-01-02,100,101,99,100.5,1000",
	}, "\n")

	s, err := parseQuoteCSV("AAPL.US", strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseQuoteCSV() error = %v", err)
	}
	if s.Symbol != "AAPL.US" {
		t.Errorf("symbol = %q, want AAPL.US", s.Symbol)
	}
	first, v := s.Prices.First()
	if first != date.MustParse("2024-01-02") || v != 100.5 {
		t.Errorf("first observation = %v %v, want 2024-01-02 100.5", first, v)
	}
	last, v := s.Prices.Latest()
	if last != date.MustParse("2024-01-03") || v != 101.5 {
		t.Errorf("latest observation = %v %v, want 2024-01-03 101.5", last, v)
	}
}

func TestParseQuoteCSVFieldPriority(t *testing.T) {
	testCases := []struct {
		name   string
		header string
		row    string
		want   float64
	}{
		{"adjusted close wins", "Date,Close,Adj Close", "2024-01-02,100,99.5", 99.5},
		{"secondary adjusted naming", "Date,AdjClose,Close", "2024-01-02,99.25,100", 99.25},
		{"plain close fallback", "Date,Open,Close", "2024-01-02,101,100", 100},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := parseQuoteCSV("X", strings.NewReader(tc.header+"\n"+tc.row))
			if err != nil {
				t.Fatalf("parseQuoteCSV() error = %v", err)
			}
			if _, v := s.Prices.Latest(); v != tc.want {
				t.Errorf("price = %v, want %v", v, tc.want)
			}
		})
	}
}

func TestParseQuoteCSVNoData(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"stooq no data answer", "No data"},
		{"header only", "Date,Open,High,Low,Close,Volume"},
		{"empty body", ""},
		{"only untraded days", "Date,Close\n2024-01-02,N/D"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseQuoteCSV("GHOST.US", strings.NewReader(tc.in))
			var noData *NoDataError
			if !errors.As(err, &noData) {
				t.Fatalf("parseQuoteCSV() error = %v, want NoDataError", err)
			}
			if noData.Symbol != "GHOST.US" {
				t.Errorf("NoDataError.Symbol = %q, want GHOST.US", noData.Symbol)
			}
		})
	}
}

func TestParseQuoteCSVBadPrice(t *testing.T) {
	in := "Date,Close\n2024-01-02,abc"
	if _, err := parseQuoteCSV("X", strings.NewReader(in)); err == nil {
		t.Errorf("parseQuoteCSV() error = nil, want parse error")
	}
}
