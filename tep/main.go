package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/tracklab/trackprep/cmd"
)

// completion describes the CLI for shell completion. Install it with
// COMP_INSTALL=1 tep.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"prepare": {
			Flags: map[string]complete.Predictor{
				"config":        predict.Files("*.yaml"),
				"source":        predict.Set{"stooq", "eodhd"},
				"index":         predict.Something,
				"tickers":       predict.Something,
				"start":         predict.Something,
				"end":           predict.Something,
				"freq":          predict.Set{"D", "W", "M"},
				"outdir":        predict.Dirs("*"),
				"min-days":      predict.Something,
				"max-gap":       predict.Something,
				"eodhd-api-key": predict.Nothing,
			},
		},
		"standardize": {
			Flags: map[string]complete.Predictor{
				"index":      predict.Files("*.csv"),
				"assets":     predict.Files("*.csv"),
				"demean":     predict.Set{"true", "false"},
				"scale":      predict.Set{"true", "false"},
				"out-index":  predict.Files("*.csv"),
				"out-assets": predict.Files("*.csv"),
			},
		},
		"topic": {},
	},
}

func main() {
	completion.Complete("tep")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
