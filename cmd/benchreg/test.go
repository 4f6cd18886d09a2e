package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"benchreg/internal/core/services"
)

var testOpts services.TestOptions

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run a compatibility test",
	Long: `Dry-runs the full evaluation workflow against a disposable benchmark,
dataset and cube tuple. Cube flags accept a registry UID or a local mlcube
directory. Nothing a test produces can be registered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		compat, err := a.compatTest()
		if err != nil {
			return err
		}
		result, err := compat.Run(cmd.Context(), testOpts)
		if err != nil {
			return err
		}
		fmt.Printf("compatibility test passed, result UID %s\n", result.UID())
		return printYAML(result.Metrics)
	},
}

func init() {
	f := testCmd.Flags()
	f.StringVarP(&testOpts.Benchmark, "benchmark", "b", "", "benchmark UID to test against")
	f.StringVarP(&testOpts.Dataset, "dataset", "d", "", "prepared dataset UID (defaults to the demo dataset)")
	f.StringVarP(&testOpts.DataPrep, "data-preparation-mlcube", "p", "", "data preparation cube UID or local path")
	f.StringVarP(&testOpts.Model, "model", "m", "", "model cube UID or local path")
	f.StringVarP(&testOpts.Evaluator, "evaluator-mlcube", "e", "", "evaluator cube UID or local path")
	f.StringVar(&testOpts.DemoURL, "demo-url", "", "demo dataset tarball URL override")
	f.StringVar(&testOpts.DemoHash, "demo-hash", "", "expected demo tarball hash")

	rootCmd.AddCommand(testCmd)
}
