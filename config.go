package trackprep

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunFile is a YAML description of a prepare run, the file-based alternative
// to spelling every flag on the command line.
//
//	source: stooq
//	index: SPY.US
//	tickers: [AAPL.US, MSFT.US, GOOGL.US]
//	start: 2018-01-01
//	end: 2024-12-31
//	freq: D
//	outdir: data
//	min_days: 250
//	max_gap: 3
type RunFile struct {
	Source      string   `yaml:"source"`
	Index       string   `yaml:"index"`
	Tickers     []string `yaml:"tickers"`
	Start       string   `yaml:"start"`
	End         string   `yaml:"end"`
	Freq        string   `yaml:"freq"`
	Outdir      string   `yaml:"outdir"`
	MinDays     int      `yaml:"min_days"`
	MaxGap      int      `yaml:"max_gap"`
	EODHDAPIKey string   `yaml:"eodhd_api_key"`
}

// LoadRunFile reads a run file, then applies environment overrides for the
// secrets that do not belong in a file under version control.
func LoadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run file: %w", err)
	}
	rf := &RunFile{}
	if err := yaml.Unmarshal(data, rf); err != nil {
		return nil, fmt.Errorf("parse run file %s: %w", path, err)
	}
	if v := os.Getenv(eodhdAPIKeyEnv); v != "" {
		rf.EODHDAPIKey = v
	}
	return rf, nil
}
