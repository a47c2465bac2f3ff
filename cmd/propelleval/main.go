// Command propelleval is a thin CLI front-end over libpropelleval: it
// owns all I/O (database loading, run-description parsing, report
// printing) and calls straight into the library's exported Compute*
// entry points.
package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/impulse-rocketry/libpropelleval/internal/rlog"
)

var (
	runFile string
	verbose bool
	log     *logrus.Entry
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	root := &cobra.Command{
		Use:           "propelleval",
		Short:         "Chemical-equilibrium and rocket-performance evaluator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logrus.InfoLevel
			if verbose {
				level = logrus.DebugLevel
			}
			log = rlog.New(level)
		},
	}
	root.PersistentFlags().StringVar(&runFile, "run", "", "path to the run-description JSON file")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug-level solver trace logging")
	if err := viper.BindPFlag("run", root.PersistentFlags().Lookup("run")); err != nil {
		chk.Panic("propelleval: %v", err)
	}
	if err := viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose")); err != nil {
		chk.Panic("propelleval: %v", err)
	}

	root.AddCommand(newEquilibriumCmd())
	root.AddCommand(newFrozenCmd())
	root.AddCommand(newShiftingCmd())

	if err := root.Execute(); err != nil {
		io.PfRed("\nERROR: %v\n", err)
		os.Exit(1)
	}
}

func requireRunFile() string {
	path := viper.GetString("run")
	if path == "" {
		chk.Panic("propelleval: --run is required")
	}
	return path
}
