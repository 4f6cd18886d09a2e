package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	ports "benchreg/internal/core/ports/output"
	"benchreg/internal/core/services"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage datasets",
}

var (
	datasetMine  bool
	datasetLocal bool
)

var datasetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List datasets known to the registry and the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		datasets, err := a.datasets.ListAll(cmd.Context(), scope(datasetLocal), ports.ListFilter{Mine: datasetMine})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UID\tNAME\tPREP CUBE\tSTATE")
		for _, d := range datasets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.UID(), d.Name, d.DataPreparationCube, d.State)
		}
		return w.Flush()
	},
}

var datasetViewCmd = &cobra.Command{
	Use:   "view <uid>",
	Short: "Show one dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		d, err := a.datasets.Get(cmd.Context(), args[0], scope(datasetLocal))
		if err != nil {
			return err
		}
		return printYAML(d)
	},
}

var (
	prepBenchmark string
	prepData      string
	prepLabels    string
	prepName      string
)

var datasetPrepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Prepare raw data with a benchmark's preparation cube",
	Long: `Runs the benchmark's data preparation cube over local raw data, producing a
fingerprinted dataset record eligible for registration and association.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		bmk, err := a.benchmarks.Get(cmd.Context(), prepBenchmark, services.ScopeAll)
		if err != nil {
			return err
		}
		prep, _, err := a.preparation()
		if err != nil {
			return err
		}

		labels := prepLabels
		if labels == "" {
			labels = prepData
		}
		dset, err := prep.Run(cmd.Context(), bmk, prepData, labels, prepName, false)
		if err != nil {
			return err
		}
		fmt.Printf("dataset prepared with UID %s\n", dset.UID())
		return nil
	},
}

var datasetSubmitCmd = &cobra.Command{
	Use:   "submit <uid>",
	Short: "Register a locally prepared dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		dset, err := a.datasets.Get(cmd.Context(), args[0], services.ScopeLocalOnly)
		if err != nil {
			return err
		}
		created, err := a.datasets.Upload(cmd.Context(), dset)
		if err != nil {
			return err
		}
		fmt.Printf("dataset registered with UID %s\n", created.UID())
		return nil
	},
}

func init() {
	datasetLsCmd.Flags().BoolVar(&datasetMine, "mine", false, "only datasets I own")
	datasetLsCmd.Flags().BoolVar(&datasetLocal, "local", false, "only the local cache, no network")
	datasetViewCmd.Flags().BoolVar(&datasetLocal, "local", false, "only the local cache, no network")

	f := datasetPrepareCmd.Flags()
	f.StringVar(&prepBenchmark, "benchmark", "", "benchmark UID")
	f.StringVar(&prepData, "data", "", "path to raw data")
	f.StringVar(&prepLabels, "labels", "", "path to labels (defaults to the data path)")
	f.StringVar(&prepName, "name", "", "dataset name")
	for _, name := range []string{"benchmark", "data", "name"} {
		_ = datasetPrepareCmd.MarkFlagRequired(name)
	}

	datasetCmd.AddCommand(datasetLsCmd, datasetViewCmd, datasetPrepareCmd, datasetSubmitCmd)
	rootCmd.AddCommand(datasetCmd)
}
