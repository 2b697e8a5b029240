// Command alchemy runs the lambda-calculus chemistry reactor: it seeds a
// soup of lambda terms, reacts them against a fixed rule set, and either
// dumps the final population, streams an entropy series, or runs one of
// the named multi-soup experiments.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "alchemy",
		Short:         "Run an artificial-chemistry lambda-calculus reactor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlchemy(o)
		},
	}

	flags := root.Flags()
	flags.IntVar(&o.reductionCutoff, "reduction-cutoff", 0, "override reactor_config.reduction_cutoff")
	flags.IntVar(&o.pollingInterval, "polling-interval", 0, "override polling_interval (0 leaves the config value)")
	flags.IntVar(&o.runLimit, "run-limit", 0, "override run_limit")
	flags.StringVar(&o.configFile, "config-file", "", "load reactor configuration from this JSON file")
	flags.BoolVar(&o.dumpConfig, "dump-config", false, "print the effective configuration as JSON and exit")
	flags.BoolVar(&o.makeDefaultConfig, "make-default-config", false, "print the default configuration as JSON and exit")
	flags.StringVar(&o.experiment, "experiment", "", "run a named experiment: xorset-stability, xorset-search, sync-entropy-test, entropy-test, entropy-series")
	flags.IntVar(&o.generate, "generate", 0, "generate N terms with the configured generator and print them, instead of reacting")
	flags.BoolVar(&o.readStdin, "read-stdin", false, "read seed expressions, one per line, from standard input")
	flags.BoolVar(&o.log, "log", false, "enable per-reaction logging (verbose_logging)")

	return root
}

// options collects the CLI surface before it is reconciled against a
// loaded or default Config.
type options struct {
	reductionCutoff   int
	pollingInterval   int
	runLimit          int
	configFile        string
	dumpConfig        bool
	makeDefaultConfig bool
	experiment        string
	generate          int
	readStdin         bool
	log               bool
}
