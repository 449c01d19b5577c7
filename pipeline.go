package trackprep

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tracklab/trackprep/date"
)

// Defaults for the prepare pipeline, matching the tool's flag defaults.
const (
	DefaultMinObs = 250
	DefaultMaxGap = 3
)

// metadataNotes phrases the provenance note written with every dataset,
// recording the gap-fill limit the run actually used.
func metadataNotes(maxGap int) string {
	return fmt.Sprintf("Simple returns; forward-filled small gaps (limit=%d); dates intersected.", maxGap)
}

// Config drives one pipeline run.
type Config struct {
	Index   string     // benchmark symbol
	Symbols []string   // asset symbols, panel column order
	Range   date.Range // closed fetch range
	Freq    date.Period
	MinObs  int // minimum common observations after price alignment
	MaxGap  int // forward-fill horizon, in rows
}

// validate fills defaults and rejects impossible runs before any fetch.
func (cfg *Config) validate() error {
	if cfg.Index == "" {
		return fmt.Errorf("no index symbol")
	}
	if len(cfg.Symbols) == 0 {
		return fmt.Errorf("no asset symbols")
	}
	if !cfg.Range.IsValid() {
		return fmt.Errorf("invalid date range %s", cfg.Range)
	}
	if cfg.MinObs <= 0 {
		cfg.MinObs = DefaultMinObs
	}
	if cfg.MaxGap < 0 {
		cfg.MaxGap = DefaultMaxGap
	}
	return nil
}

// Metadata describes the provenance of a prepared dataset. It is written
// once per run and never mutated afterwards.
type Metadata struct {
	Source       string    `json:"source"`
	IndexSymbol  string    `json:"index_symbol"`
	AssetSymbols []string  `json:"asset_symbols"`
	Start        date.Date `json:"start"`
	End          date.Date `json:"end"`
	Frequency    string    `json:"frequency"`
	Observations int       `json:"n_observations"`
	GeneratedAt  string    `json:"generated_at"`
	Notes        string    `json:"notes"`
}

// Dataset is the terminal output of a pipeline run: the aligned price and
// return tables plus the provenance record. Both return members share the
// same ordered date axis with no undefined cell.
type Dataset struct {
	AssetPrices  *Panel
	IndexPrices  *Panel
	AssetReturns *Panel
	IndexReturns *Panel
	Meta         Metadata
}

// Prepare runs the whole pipeline: fetch, bounded forward-fill, optional
// resampling, alignment, sample-size gate, return computation, and
// post-return re-alignment. Every stage failure is fatal; nothing is
// retried and nothing partial is returned.
func Prepare(f Fetcher, cfg Config) (*Dataset, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Printf("fetching index %s", cfg.Index)
	indexPrices, err := BuildPanel(f, []string{cfg.Index}, cfg.Range)
	if err != nil {
		return nil, err
	}

	log.Printf("fetching assets %s", strings.Join(cfg.Symbols, ", "))
	assetPrices, err := BuildPanel(f, cfg.Symbols, cfg.Range)
	if err != nil {
		return nil, err
	}

	assetPrices = assetPrices.ForwardFill(cfg.MaxGap)
	indexPrices = indexPrices.ForwardFill(cfg.MaxGap)

	if cfg.Freq != date.Daily {
		log.Printf("resampling to %s", cfg.Freq)
		assetPrices = assetPrices.Resample(cfg.Freq)
		indexPrices = indexPrices.Resample(cfg.Freq)
	}

	assetPrices, indexPrices = Intersect(assetPrices, indexPrices)

	if n := assetPrices.Rows(); n < cfg.MinObs {
		return nil, &InsufficientDataError{Actual: n, Required: cfg.MinObs}
	}

	assetReturns := assetPrices.SimpleReturns()
	indexReturns := indexPrices.SimpleReturns()

	// Each panel dropped its own first row; re-sync the axes.
	assetReturns, indexReturns = Intersect(assetReturns, indexReturns)

	return &Dataset{
		AssetPrices:  assetPrices,
		IndexPrices:  indexPrices,
		AssetReturns: assetReturns,
		IndexReturns: indexReturns,
		Meta: Metadata{
			Source:       f.Name(),
			IndexSymbol:  cfg.Index,
			AssetSymbols: cfg.Symbols,
			Start:        cfg.Range.From,
			End:          cfg.Range.To,
			Frequency:    cfg.Freq.Tag(),
			Observations: assetReturns.Rows(),
			GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
			Notes:        metadataNotes(cfg.MaxGap),
		},
	}, nil
}
