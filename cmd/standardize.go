package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	trackprep "github.com/tracklab/trackprep"
)

type standardizeCmd struct {
	indexFile  string
	assetsFile string
	demean     bool
	scale      bool
	outIndex   string
	outAssets  string
}

func (*standardizeCmd) Name() string { return "standardize" }
func (*standardizeCmd) Synopsis() string {
	return "demeans and/or scales previously prepared return tables"
}
func (*standardizeCmd) Usage() string {
	return `tep standardize -index <returns_index.csv> -assets <returns_assets.csv> [options]

Loads the two return tables, inner-joins them on their date column, drops
empty columns and incomplete rows, then applies the requested transforms:
-demean subtracts each column's own mean (recommended for tracking error),
-scale divides each asset column by its own standard deviation. Constant
columns are left unscaled.

By default the transformed tables are written next to the inputs with a
"_std" suffix.
`
}

func (c *standardizeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.indexFile, "index", "", "Index return table (CSV)")
	f.StringVar(&c.assetsFile, "assets", "", "Asset return table (CSV)")
	f.BoolVar(&c.demean, "demean", true, "Subtract each column's own mean")
	f.BoolVar(&c.scale, "scale", false, "Divide each asset column by its own standard deviation")
	f.StringVar(&c.outIndex, "out-index", "", "Output path for the index table (default: input with _std suffix)")
	f.StringVar(&c.outAssets, "out-assets", "", "Output path for the asset table (default: input with _std suffix)")
}

// stdPath inserts a _std suffix before the file extension.
func stdPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_std" + ext
}

func (c *standardizeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.indexFile == "" || c.assetsFile == "" {
		fmt.Fprintln(os.Stderr, "Error: both -index and -assets are required.")
		f.Usage()
		return subcommands.ExitUsageError
	}

	index, assets, err := trackprep.LoadReturns(c.indexFile, c.assetsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load returns: %v\n", err)
		return subcommands.ExitFailure
	}

	index, assets = trackprep.Standardize(index, assets, c.demean, c.scale)

	outIndex, outAssets := c.outIndex, c.outAssets
	if outIndex == "" {
		outIndex = stdPath(c.indexFile)
	}
	if outAssets == "" {
		outAssets = stdPath(c.assetsFile)
	}
	if err := trackprep.SavePanel(outIndex, index); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := trackprep.SavePanel(outAssets, assets); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Wrote %d observations:\n  %s\n  %s\n", index.Rows(), outIndex, outAssets)
	return subcommands.ExitSuccess
}
