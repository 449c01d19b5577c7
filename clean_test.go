package trackprep

import (
	"errors"
	"slices"
	"testing"

	"github.com/tracklab/trackprep/date"
)

func TestForwardFill(t *testing.T) {
	testCases := []struct {
		name  string
		in    []Cell
		limit int
		want  []Cell
	}{
		{
			name:  "fills small gap",
			in:    cells(cell(1), undef, undef, cell(2)),
			limit: 3,
			want:  cells(cell(1), cell(1), cell(1), cell(2)),
		},
		{
			name:  "fills only limit cells of a long gap",
			in:    cells(cell(1), undef, undef, undef, undef, cell(2)),
			limit: 2,
			want:  cells(cell(1), cell(1), cell(1), undef, undef, cell(2)),
		},
		{
			name:  "limit zero is the identity",
			in:    cells(cell(1), undef, cell(2)),
			limit: 0,
			want:  cells(cell(1), undef, cell(2)),
		},
		{
			name:  "leading gap stays unfilled",
			in:    cells(undef, undef, cell(1), undef),
			limit: 5,
			want:  cells(undef, undef, cell(1), cell(1)),
		},
		{
			name:  "run resets after a defined value",
			in:    cells(cell(1), undef, cell(2), undef),
			limit: 1,
			want:  cells(cell(1), cell(1), cell(2), cell(2)),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := forwardFill(tc.in, tc.limit); !slices.Equal(got, tc.want) {
				t.Errorf("forwardFill(%v, %d) = %v, want %v", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestForwardFillIsColumnIndependent(t *testing.T) {
	p := panelOf(
		[]string{"2024-01-02", "2024-01-03"},
		[]string{"A", "B"},
		[][]Cell{
			cells(cell(1), undef),
			cells(undef, cell(2)),
		},
	)
	got := p.ForwardFill(1)
	if c := got.At(1, 0); !c.Valid || c.Value != 1 {
		t.Errorf("A filled = %+v, want 1", c)
	}
	// B's leading gap has no prior value in its own column, whatever A holds.
	if c := got.At(0, 1); c.Valid {
		t.Errorf("B leading cell = %+v, want undefined", c)
	}
	// Input panel untouched.
	if c := p.At(1, 0); c.Valid {
		t.Errorf("ForwardFill mutated its input: %+v", c)
	}
}

func TestResampleWeekly(t *testing.T) {
	// Daily observations spanning three ISO weeks (Mon 2024-01-08 through
	// Wed 2024-01-24). Expect exactly 3 rows, labelled on Fridays, each the
	// last defined daily value on or before that Friday.
	days := []string{
		"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12",
		"2024-01-15", "2024-01-16", "2024-01-17", "2024-01-18",
		"2024-01-22", "2024-01-23", "2024-01-24",
	}
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	p := NewPanel(Series{Symbol: "A", Prices: *history(days, values)})

	got := p.Resample(date.Weekly)

	wantDates := []date.Date{
		date.MustParse("2024-01-12"),
		date.MustParse("2024-01-19"),
		date.MustParse("2024-01-26"),
	}
	if !slices.Equal(got.Dates(), wantDates) {
		t.Fatalf("Resample(W) axis = %v, want %v", got.Dates(), wantDates)
	}
	wantValues := []float64{5, 9, 12}
	for i, want := range wantValues {
		if c := got.At(i, 0); !c.Valid || c.Value != want {
			t.Errorf("week %d = %+v, want %v", i, c, want)
		}
	}
}

func TestResampleWeeklyThursdayStillFriday(t *testing.T) {
	// A week whose last observation is Thursday still settles on Friday.
	p := NewPanel(Series{Symbol: "A", Prices: *history(
		[]string{"2024-01-08", "2024-01-11"}, []float64{1, 4})})

	got := p.Resample(date.Weekly)
	if got.Rows() != 1 {
		t.Fatalf("Resample(W) rows = %d, want 1", got.Rows())
	}
	if d := got.Date(0); d != date.MustParse("2024-01-12") {
		t.Errorf("Resample(W) label = %v, want 2024-01-12", d)
	}
	if c := got.At(0, 0); !c.Valid || c.Value != 4 {
		t.Errorf("Resample(W) value = %+v, want 4", c)
	}
}

func TestResampleMonthly(t *testing.T) {
	p := NewPanel(Series{Symbol: "A", Prices: *history(
		[]string{"2024-01-15", "2024-01-31", "2024-02-01", "2024-02-29", "2024-03-04"},
		[]float64{1, 2, 3, 4, 5})})

	got := p.Resample(date.Monthly)

	wantDates := []date.Date{
		date.MustParse("2024-01-31"),
		date.MustParse("2024-02-29"),
		date.MustParse("2024-03-31"),
	}
	if !slices.Equal(got.Dates(), wantDates) {
		t.Fatalf("Resample(M) axis = %v, want %v", got.Dates(), wantDates)
	}
	for i, want := range []float64{2, 4, 5} {
		if c := got.At(i, 0); !c.Valid || c.Value != want {
			t.Errorf("month %d = %+v, want %v", i, c, want)
		}
	}
}

func TestResampleDailyIsIdentity(t *testing.T) {
	p := NewPanel(Series{Symbol: "A", Prices: *history(
		[]string{"2024-01-02", "2024-01-03"}, []float64{1, 2})})
	got := p.Resample(date.Daily)
	if !slices.Equal(got.Dates(), p.Dates()) {
		t.Errorf("Resample(D) axis = %v, want unchanged %v", got.Dates(), p.Dates())
	}
}

func TestResampleEmptyPeriodStaysUndefined(t *testing.T) {
	// Two observations three weeks apart leave the middle week with no
	// observation: the bucket exists but holds an undefined cell.
	p := NewPanel(Series{Symbol: "A", Prices: *history(
		[]string{"2024-01-08", "2024-01-22"}, []float64{1, 2})})

	got := p.Resample(date.Weekly)
	if got.Rows() != 3 {
		t.Fatalf("Resample(W) rows = %d, want 3", got.Rows())
	}
	if c := got.At(1, 0); c.Valid {
		t.Errorf("empty week = %+v, want undefined", c)
	}
}

func TestParseFrequency(t *testing.T) {
	if _, err := ParseFrequency("W"); err != nil {
		t.Errorf("ParseFrequency(W) error = %v", err)
	}
	_, err := ParseFrequency("Q")
	var unsupported *UnsupportedFrequencyError
	if !errors.As(err, &unsupported) {
		t.Fatalf("ParseFrequency(Q) error = %v, want UnsupportedFrequencyError", err)
	}
	if unsupported.Freq != "Q" {
		t.Errorf("UnsupportedFrequencyError.Freq = %q, want Q", unsupported.Freq)
	}
}
