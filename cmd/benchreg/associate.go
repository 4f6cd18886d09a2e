package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	assocBenchmark string
	assocDataset   string
	assocCube      string
)

var associateCmd = &cobra.Command{
	Use:   "associate",
	Short: "Request association of a dataset or mlcube with a benchmark",
	Long: `Requests that a benchmark accept a dataset or a model mlcube. Exactly one of
--dataset and --mlcube must be given. The request stays pending until the
benchmark owner approves or rejects it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (assocDataset == "") == (assocCube == "") {
			return fmt.Errorf("pass exactly one of --dataset and --mlcube")
		}
		a, err := newApp()
		if err != nil {
			return err
		}

		if assocDataset != "" {
			assoc, err := a.associations.RequestDatasetAssociation(cmd.Context(), assocDataset, assocBenchmark)
			if err != nil {
				return err
			}
			fmt.Printf("association requested, status %s\n", assoc.ApprovalStatus)
			return nil
		}

		assoc, err := a.associations.RequestModelAssociation(cmd.Context(), assocCube, assocBenchmark)
		if err != nil {
			return err
		}
		fmt.Printf("association requested, status %s\n", assoc.ApprovalStatus)
		return nil
	},
}

func init() {
	associateCmd.Flags().StringVarP(&assocBenchmark, "benchmark", "b", "", "benchmark UID")
	associateCmd.Flags().StringVarP(&assocDataset, "dataset", "d", "", "dataset UID")
	associateCmd.Flags().StringVarP(&assocCube, "mlcube", "m", "", "model mlcube UID")
	_ = associateCmd.MarkFlagRequired("benchmark")

	rootCmd.AddCommand(associateCmd)
}
