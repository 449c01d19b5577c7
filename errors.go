package trackprep

import (
	"fmt"

	"github.com/tracklab/trackprep/date"
)

// NoDataError reports that the external source returned nothing for a
// requested instrument. It is fatal to the run.
type NoDataError struct {
	Symbol string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data returned for symbol %q", e.Symbol)
}

// UnsupportedFrequencyError reports a resampling frequency outside D, W, M.
type UnsupportedFrequencyError struct {
	Freq string
}

func (e *UnsupportedFrequencyError) Error() string {
	return fmt.Sprintf("unsupported frequency %q, want one of D, W, M", e.Freq)
}

// InsufficientDataError reports that the aligned panel holds fewer
// observations than the configured minimum. It carries both counts so the
// caller can adjust the date range, instrument list, or frequency.
type InsufficientDataError struct {
	Actual   int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("too few common observations after alignment: %d < %d; adjust date range, tickers, or frequency", e.Actual, e.Required)
}

// ParseFrequency maps a frequency tag (D, W, M, or a spelled-out period
// name) to a resampling period. It is the single gate for
// UnsupportedFrequencyError, applied before any fetch happens.
func ParseFrequency(tag string) (date.Period, error) {
	p, err := date.ParsePeriod(tag)
	if err != nil {
		return date.Daily, &UnsupportedFrequencyError{Freq: tag}
	}
	return p, nil
}
