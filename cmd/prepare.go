package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	trackprep "github.com/tracklab/trackprep"
	"github.com/tracklab/trackprep/date"
)

type prepareCmd struct {
	configFile string
	source     string
	index      string
	tickers    string
	start      string
	end        string
	freq       string
	outdir     string
	minDays    int
	maxGap     int
	apiKey     string
}

func (*prepareCmd) Name() string { return "prepare" }
func (*prepareCmd) Synopsis() string {
	return "fetches prices and writes aligned price and return tables"
}
func (*prepareCmd) Usage() string {
	return `tep prepare -index <symbol> -tickers <sym,sym,...> -start <date> -end <date> [options]

Fetches daily prices for the index and the assets, forward-fills small gaps,
optionally resamples to weekly or monthly frequency, intersects the calendars,
and writes four CSV tables plus a metadata record into the output directory.

Stooq symbols usually carry the ".US" suffix for US listings (e.g. AAPL.US).

Usage Examples:
$ tep prepare -index SPY.US -tickers AAPL.US,MSFT.US,GOOGL.US \
      -start 2018-01-01 -end 2024-12-31 -outdir data

# The same run described in a file:
$ tep prepare -config run.yaml
`
}

func (c *prepareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "YAML run file; explicit flags override its values")
	f.StringVar(&c.source, "source", "stooq", "Price source: stooq or eodhd")
	f.StringVar(&c.index, "index", "", "Index/benchmark symbol (e.g. SPY.US)")
	f.StringVar(&c.tickers, "tickers", "", "Comma-separated asset symbols")
	f.StringVar(&c.start, "start", "", "Start date YYYY-MM-DD")
	f.StringVar(&c.end, "end", "", "End date YYYY-MM-DD")
	f.StringVar(&c.freq, "freq", "D", "Sampling frequency: D, W or M")
	f.StringVar(&c.outdir, "outdir", "data", "Output directory")
	f.IntVar(&c.minDays, "min-days", trackprep.DefaultMinObs, "Minimum common observations required after alignment")
	f.IntVar(&c.maxGap, "max-gap", trackprep.DefaultMaxGap, "Forward-fill at most this many consecutive missing rows")
	f.StringVar(&c.apiKey, "eodhd-api-key", "", "EODHD API key; falls back to the EODHD_API_KEY environment variable")
}

// applyRunFile fills every field the command line left untouched from the
// run file.
func (c *prepareCmd) applyRunFile(f *flag.FlagSet, rf *trackprep.RunFile) {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if !set["source"] && rf.Source != "" {
		c.source = rf.Source
	}
	if !set["index"] && rf.Index != "" {
		c.index = rf.Index
	}
	if !set["tickers"] && len(rf.Tickers) > 0 {
		c.tickers = strings.Join(rf.Tickers, ",")
	}
	if !set["start"] && rf.Start != "" {
		c.start = rf.Start
	}
	if !set["end"] && rf.End != "" {
		c.end = rf.End
	}
	if !set["freq"] && rf.Freq != "" {
		c.freq = rf.Freq
	}
	if !set["outdir"] && rf.Outdir != "" {
		c.outdir = rf.Outdir
	}
	if !set["min-days"] && rf.MinDays > 0 {
		c.minDays = rf.MinDays
	}
	if !set["max-gap"] && rf.MaxGap > 0 {
		c.maxGap = rf.MaxGap
	}
	if !set["eodhd-api-key"] && rf.EODHDAPIKey != "" {
		c.apiKey = rf.EODHDAPIKey
	}
}

func (c *prepareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.configFile != "" {
		rf, err := trackprep.LoadRunFile(c.configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		c.applyRunFile(f, rf)
	}

	// Reject a bad frequency before anything is fetched.
	freq, err := trackprep.ParseFrequency(c.freq)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	start, err := date.Parse(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -start: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := date.Parse(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -end: %v\n", err)
		return subcommands.ExitUsageError
	}

	var tickers []string
	for _, t := range strings.Split(c.tickers, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}

	fetcher, err := newFetcher(c.source, c.apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ds, err := trackprep.Prepare(fetcher, trackprep.Config{
		Index:   c.index,
		Symbols: tickers,
		Range:   date.NewRange(start, end),
		Freq:    freq,
		MinObs:  c.minDays,
		MaxGap:  c.maxGap,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	written, err := ds.Save(c.outdir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Wrote %d observations:\n", ds.Meta.Observations)
	for _, path := range written {
		fmt.Printf("  %s\n", path)
	}
	return subcommands.ExitSuccess
}
