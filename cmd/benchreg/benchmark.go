package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Manage benchmarks",
}

var (
	benchmarkMine  bool
	benchmarkLocal bool
)

var benchmarkLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List benchmarks known to the registry and the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		benchmarks, err := a.benchmarks.ListAll(cmd.Context(), scope(benchmarkLocal), ports.ListFilter{Mine: benchmarkMine})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UID\tNAME\tSTATE\tSTATUS")
		for _, b := range benchmarks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.UID(), b.Name, b.State, b.ApprovalStatus)
		}
		return w.Flush()
	},
}

var benchmarkViewCmd = &cobra.Command{
	Use:   "view <uid>",
	Short: "Show one benchmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		b, err := a.benchmarks.Get(cmd.Context(), args[0], scope(benchmarkLocal))
		if err != nil {
			return err
		}
		return printYAML(b)
	},
}

var submitBenchmark domain.Benchmark

var benchmarkSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Register a new benchmark",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		created, err := a.benchmarks.Upload(cmd.Context(), &submitBenchmark)
		if err != nil {
			return err
		}
		fmt.Printf("benchmark registered with UID %s\n", created.UID())
		return nil
	},
}

func init() {
	benchmarkLsCmd.Flags().BoolVar(&benchmarkMine, "mine", false, "only benchmarks I own")
	benchmarkLsCmd.Flags().BoolVar(&benchmarkLocal, "local", false, "only the local cache, no network")
	benchmarkViewCmd.Flags().BoolVar(&benchmarkLocal, "local", false, "only the local cache, no network")

	f := benchmarkSubmitCmd.Flags()
	f.StringVar(&submitBenchmark.Name, "name", "", "benchmark name")
	f.StringVar(&submitBenchmark.Description, "description", "", "benchmark description")
	f.StringVar(&submitBenchmark.DocsURL, "docs-url", "", "documentation URL")
	f.StringVar(&submitBenchmark.DemoDatasetURL, "demo-url", "", "demo dataset tarball URL")
	f.StringVar(&submitBenchmark.DemoDatasetHash, "demo-hash", "", "demo dataset tarball hash")
	f.StringVar(&submitBenchmark.DataPreparationCube, "data-preparation-mlcube", "", "data preparation cube UID")
	f.StringVar(&submitBenchmark.ReferenceModelCube, "reference-model-mlcube", "", "reference model cube UID")
	f.StringVar(&submitBenchmark.EvaluatorCube, "evaluator-mlcube", "", "evaluator cube UID")
	for _, name := range []string{"name", "data-preparation-mlcube", "reference-model-mlcube", "evaluator-mlcube"} {
		_ = benchmarkSubmitCmd.MarkFlagRequired(name)
	}

	benchmarkCmd.AddCommand(benchmarkLsCmd, benchmarkViewCmd, benchmarkSubmitCmd)
	rootCmd.AddCommand(benchmarkCmd)
}
