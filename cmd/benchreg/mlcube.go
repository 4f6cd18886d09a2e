package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"benchreg/internal/core/domain"
	ports "benchreg/internal/core/ports/output"
)

var mlcubeCmd = &cobra.Command{
	Use:   "mlcube",
	Short: "Manage mlcubes",
}

var (
	mlcubeMine  bool
	mlcubeLocal bool
)

var mlcubeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List mlcubes known to the registry and the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		cubes, err := a.cubes.ListAll(cmd.Context(), scope(mlcubeLocal), ports.ListFilter{Mine: mlcubeMine})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UID\tNAME\tSTATE\tIMAGE")
		for _, c := range cubes {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.UID(), c.Name, c.State, c.Image)
		}
		return w.Flush()
	},
}

var mlcubeViewCmd = &cobra.Command{
	Use:   "view <uid>",
	Short: "Show one mlcube",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		c, err := a.cubes.Get(cmd.Context(), args[0], scope(mlcubeLocal))
		if err != nil {
			return err
		}
		return printYAML(c)
	},
}

var submitCube domain.Cube

var mlcubeSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Register a new mlcube",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		created, err := a.cubes.Upload(cmd.Context(), &submitCube)
		if err != nil {
			return err
		}
		fmt.Printf("mlcube registered with UID %s\n", created.UID())
		return nil
	},
}

func init() {
	mlcubeLsCmd.Flags().BoolVar(&mlcubeMine, "mine", false, "only mlcubes I own")
	mlcubeLsCmd.Flags().BoolVar(&mlcubeLocal, "local", false, "only the local cache, no network")
	mlcubeViewCmd.Flags().BoolVar(&mlcubeLocal, "local", false, "only the local cache, no network")

	f := mlcubeSubmitCmd.Flags()
	f.StringVar(&submitCube.Name, "name", "", "mlcube name")
	f.StringVar(&submitCube.ManifestURL, "mlcube-url", "", "mlcube manifest URL")
	f.StringVar(&submitCube.ManifestHash, "mlcube-hash", "", "mlcube manifest hash")
	f.StringVar(&submitCube.ParametersURL, "parameters-url", "", "parameters file URL")
	f.StringVar(&submitCube.ParametersHash, "parameters-hash", "", "parameters file hash")
	f.StringVar(&submitCube.ImageTarballURL, "image-tarball-url", "", "container image tarball URL")
	f.StringVar(&submitCube.ImageTarballHash, "image-tarball-hash", "", "container image tarball hash")
	f.StringVar(&submitCube.AdditionalFilesURL, "additional-files-url", "", "additional files tarball URL")
	f.StringVar(&submitCube.AdditionalFilesHash, "additional-files-hash", "", "additional files tarball hash")
	for _, name := range []string{"name", "mlcube-url"} {
		_ = mlcubeSubmitCmd.MarkFlagRequired(name)
	}

	mlcubeCmd.AddCommand(mlcubeLsCmd, mlcubeViewCmd, mlcubeSubmitCmd)
	rootCmd.AddCommand(mlcubeCmd)
}
