// Package cmd implements the CLI application that prepares index-tracking
// datasets.
package cmd

import (
	"fmt"

	"github.com/google/subcommands"
	trackprep "github.com/tracklab/trackprep"
)

// Register the subcommands.
// A main package calls Register(), then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&prepareCmd{}, "dataset")
	c.Register(&standardizeCmd{}, "dataset")
	c.Register(&topicCmd{}, "documentation")
}

// newFetcher maps a source tag to a price fetcher.
func newFetcher(source, apiKey string) (trackprep.Fetcher, error) {
	switch source {
	case "stooq":
		return trackprep.NewStooqFetcher(), nil
	case "eodhd":
		return trackprep.NewEODHDFetcher(apiKey), nil
	default:
		return nil, fmt.Errorf("unknown source %q, want stooq or eodhd", source)
	}
}
