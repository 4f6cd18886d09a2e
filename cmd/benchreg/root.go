package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "benchreg",
	Short:   "Benchmark asset coordination client",
	Long:    `benchreg coordinates benchmarks, mlcubes, datasets and results between a central registry and the local machine.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	SilenceUsage: true,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
