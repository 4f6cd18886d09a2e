package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"benchreg/internal/core/domain"
	"benchreg/internal/core/services"
)

var (
	runBenchmark string
	runDataset   string
	runModel     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a benchmark model over a prepared dataset",
	Long: `Runs the model's inference task over the dataset, then the benchmark's
evaluator over the predictions. The produced result is cached locally;
register it with "benchreg result submit".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		bmk, err := a.benchmarks.Get(cmd.Context(), runBenchmark, services.ScopeAll)
		if err != nil {
			return err
		}
		dset, err := a.datasets.Get(cmd.Context(), runDataset, services.ScopeAll)
		if err != nil {
			return err
		}

		model := runModel
		if model == "" {
			model = bmk.ReferenceModelCube
		}

		exec, err := a.execution()
		if err != nil {
			return err
		}
		result, err := exec.Run(cmd.Context(), bmk, dset, model, false)
		if err != nil {
			return err
		}
		record, err := yaml.Marshal(result)
		if err != nil {
			return err
		}
		if err := a.store.WriteRecord(domain.KindResult, result.UID(), record); err != nil {
			return fmt.Errorf("cache result record: %w", err)
		}
		fmt.Printf("run finished, result UID %s\n", result.UID())
		return printYAML(result.Metrics)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runBenchmark, "benchmark", "b", "", "benchmark UID")
	runCmd.Flags().StringVarP(&runDataset, "dataset", "d", "", "dataset UID")
	runCmd.Flags().StringVarP(&runModel, "model", "m", "", "model mlcube UID (defaults to the reference model)")
	for _, name := range []string{"benchmark", "dataset"} {
		_ = runCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(runCmd)
}
