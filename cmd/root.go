package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyimports/pyimports/pkg/types"
	"github.com/pyimports/pyimports/pkg/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "pyimports",
	Short:   "Analyze a Python project's internal import dependency graph",
	Long:    "pyimports walks a Python project, builds a graph of modules, scripts,\nand namespace packages linked by their internal imports, and serializes\nbounded reachability queries or the whole graph as DOT, Mermaid, a plain\nlist, or a structured JSON payload for an interactive viewer.",
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print each pipeline stage to stderr")
	rootCmd.SilenceErrors = true
}

// Execute runs the root command and exits with code 1 on error.
// ExitError is handled specially: its Code is used as the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *types.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
