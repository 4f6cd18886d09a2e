package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	ports "benchreg/internal/core/ports/output"
	"benchreg/internal/core/services"
)

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Manage benchmark results",
}

var (
	resultMine  bool
	resultLocal bool
)

var resultLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List results known to the registry and the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		results, err := a.results.ListAll(cmd.Context(), scope(resultLocal), ports.ListFilter{Mine: resultMine})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UID\tBENCHMARK\tMODEL\tDATASET\tSTATUS")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.UID(), r.Benchmark, r.Model, r.Dataset, r.ApprovalStatus)
		}
		return w.Flush()
	},
}

var resultViewCmd = &cobra.Command{
	Use:   "view <uid>",
	Short: "Show one result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		r, err := a.results.Get(cmd.Context(), args[0], scope(resultLocal))
		if err != nil {
			return err
		}
		return printYAML(r)
	},
}

var resultSubmitCmd = &cobra.Command{
	Use:   "submit <uid>",
	Short: "Register a locally produced result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		r, err := a.results.Get(cmd.Context(), args[0], services.ScopeLocalOnly)
		if err != nil {
			return err
		}
		created, err := a.results.Upload(cmd.Context(), r)
		if err != nil {
			return err
		}
		fmt.Printf("result registered with UID %s\n", created.UID())
		return nil
	},
}

func init() {
	resultLsCmd.Flags().BoolVar(&resultMine, "mine", false, "only results I own")
	resultLsCmd.Flags().BoolVar(&resultLocal, "local", false, "only the local cache, no network")
	resultViewCmd.Flags().BoolVar(&resultLocal, "local", false, "only the local cache, no network")

	resultCmd.AddCommand(resultLsCmd, resultViewCmd, resultSubmitCmd)
	rootCmd.AddCommand(resultCmd)
}
