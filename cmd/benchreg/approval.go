package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

var approvalCmd = &cobra.Command{
	Use:   "approval",
	Short: "Inspect and decide association requests",
}

var (
	approvalBenchmark int64
	approvalDataset   int64
	approvalCube      int64
	approvalLocal     bool
)

var approvalLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List my association requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		associations, err := a.associations.List(cmd.Context(), scope(approvalLocal), ports.ListFilter{Mine: true, Benchmark: approvalBenchmark})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BENCHMARK\tDATASET\tMLCUBE\tSTATUS\tREQUESTED")
		for _, assoc := range associations {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				assoc.Benchmark, orDash(assoc.Dataset), orDash(assoc.ModelCube),
				assoc.ApprovalStatus, assoc.RequestedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var approvalApproveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve a pending association",
	RunE: func(cmd *cobra.Command, args []string) error {
		return decide(cmd, domain.StatusApproved)
	},
}

var approvalRejectCmd = &cobra.Command{
	Use:   "reject",
	Short: "Reject a pending association",
	RunE: func(cmd *cobra.Command, args []string) error {
		return decide(cmd, domain.StatusRejected)
	},
}

func decide(cmd *cobra.Command, status domain.ApprovalStatus) error {
	if (approvalDataset == 0) == (approvalCube == 0) {
		return fmt.Errorf("pass exactly one of --dataset and --mlcube")
	}
	a, err := newApp()
	if err != nil {
		return err
	}

	var assoc *domain.Association
	switch {
	case approvalDataset != 0 && status == domain.StatusApproved:
		assoc, err = a.associations.ApproveDataset(cmd.Context(), approvalBenchmark, approvalDataset)
	case approvalDataset != 0:
		assoc, err = a.associations.RejectDataset(cmd.Context(), approvalBenchmark, approvalDataset)
	case status == domain.StatusApproved:
		assoc, err = a.associations.ApproveModel(cmd.Context(), approvalBenchmark, approvalCube)
	default:
		assoc, err = a.associations.RejectModel(cmd.Context(), approvalBenchmark, approvalCube)
	}
	if err != nil {
		return err
	}
	fmt.Printf("association is now %s\n", assoc.ApprovalStatus)
	return nil
}

func orDash(id int64) string {
	if id == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", id)
}

func init() {
	approvalLsCmd.Flags().Int64VarP(&approvalBenchmark, "benchmark", "b", 0, "restrict to one benchmark")
	approvalLsCmd.Flags().BoolVar(&approvalLocal, "local", false, "only the local cache, no network")

	for _, c := range []*cobra.Command{approvalApproveCmd, approvalRejectCmd} {
		c.Flags().Int64VarP(&approvalBenchmark, "benchmark", "b", 0, "benchmark ID")
		c.Flags().Int64VarP(&approvalDataset, "dataset", "d", 0, "dataset ID")
		c.Flags().Int64VarP(&approvalCube, "mlcube", "m", 0, "model mlcube ID")
		_ = c.MarkFlagRequired("benchmark")
	}

	approvalCmd.AddCommand(approvalLsCmd, approvalApproveCmd, approvalRejectCmd)
	rootCmd.AddCommand(approvalCmd)
}
