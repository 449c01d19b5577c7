package date

import (
	"fmt"
	"time"
)

// Period is a sampling frequency for a price panel.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Tag returns the single-letter frequency tag (D, W, M).
func (p Period) Tag() string {
	switch p {
	case Daily:
		return "D"
	case Weekly:
		return "W"
	case Monthly:
		return "M"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod parses a frequency tag or name into a Period.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "D", "d", "daily", "day":
		return Daily, nil
	case "W", "w", "weekly", "week":
		return Weekly, nil
	case "M", "m", "monthly", "month":
		return Monthly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", s)
	}
}

// EndOf returns the last day of the period containing d.
//
// Weekly periods settle on Friday: Saturday and Sunday belong to the week
// ending the following Friday, so every date maps to the Friday on or after
// it. Monthly periods end on the last calendar day of the month.
func (d Date) EndOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		offset := (int(time.Friday) - int(d.Weekday()) + 7) % 7
		return d.Add(offset)
	case Monthly:
		return New(d.Year(), d.Month()+1, 0) // day 0 of next month
	default:
		panic("unknown period")
	}
}

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		return d.EndOf(Weekly).Add(-6) // Saturday before the settling Friday
	case Monthly:
		return New(d.Year(), d.Month(), 1)
	default:
		panic("unknown period")
	}
}
