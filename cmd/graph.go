package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pyimports/pyimports/internal/config"
	"github.com/pyimports/pyimports/internal/logging"
	"github.com/pyimports/pyimports/internal/pipeline"
	"github.com/pyimports/pyimports/pkg/types"
)

var (
	graphConfigPath       string
	graphSourceRoot       string
	graphIncludeOrphans   bool
	graphIncludeNamespace bool
	graphExcludeScripts   []string

	graphDownstream       string
	graphDownstreamModule []string
	graphDownstreamFile   string

	graphUpstream       string
	graphUpstreamModule []string
	graphUpstreamFile   string

	graphMaxRank int
	graphShowAll bool
	graphFormat  string
)

var graphCmd = &cobra.Command{
	Use:   "graph <path>",
	Short: "Build and render a project's import dependency graph",
	Long: `Walk a Python project rooted at <path>, build its internal import
dependency graph, and render it as DOT, Mermaid, a plain list, a
structured JSON payload for an interactive viewer, or a self-contained
HTML report.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("cannot resolve path: %w", err)
		}

		toolCfg, err := config.Load(dir, graphConfigPath)
		if err != nil {
			return &types.ExitError{Code: 2, Message: err.Error()}
		}

		opts := pipeline.Options{
			SourceRoot:        graphSourceRoot,
			ExcludeScripts:    graphExcludeScripts,
			IncludeOrphans:    graphIncludeOrphans,
			IncludeNamespaces: graphIncludeNamespace,
			DownstreamCSV:     graphDownstream,
			DownstreamModules: graphDownstreamModule,
			DownstreamFile:    graphDownstreamFile,
			UpstreamCSV:       graphUpstream,
			UpstreamModules:   graphUpstreamModule,
			UpstreamFile:      graphUpstreamFile,
			ShowAll:           graphShowAll,
			Format:            graphFormat,
		}
		applyToolConfigDefaults(cmd, &opts, toolCfg)

		if cmd.Flags().Changed("max-rank") {
			maxRank := graphMaxRank
			opts.MaxRank = &maxRank
		}

		logger := logging.NewWriter(cmd.ErrOrStderr())
		var onProgress pipeline.ProgressFunc
		if verbose {
			onProgress = func(stage, detail string) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", stage, detail)
			}
		}

		result, err := pipeline.New(logger, onProgress).Run(dir, opts)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), result.Output)
		return nil
	},
}

// applyToolConfigDefaults fills in opts fields from the tool config file for
// every flag the user did not explicitly set on the command line.
func applyToolConfigDefaults(cmd *cobra.Command, opts *pipeline.Options, cfg *config.ToolConfig) {
	if cfg == nil {
		return
	}
	if !cmd.Flags().Changed("format") && cfg.DefaultFormat != "" {
		opts.Format = cfg.DefaultFormat
	}
	if !cmd.Flags().Changed("exclude-scripts") && len(cfg.ExcludeScripts) > 0 {
		opts.ExcludeScripts = cfg.ExcludeScripts
	}
	if !cmd.Flags().Changed("include-orphans") && cfg.IncludeOrphans {
		opts.IncludeOrphans = true
	}
	if !cmd.Flags().Changed("include-namespace-packages") && cfg.IncludeNamespaces {
		opts.IncludeNamespaces = true
	}
	if !cmd.Flags().Changed("max-rank") && cfg.MaxRank != nil {
		maxRank := *cfg.MaxRank
		opts.MaxRank = &maxRank
	}
}

func init() {
	graphCmd.Flags().StringVar(&graphConfigPath, "config", "", "path to .pyimportsrc.yml tool config file")
	graphCmd.Flags().StringVar(&graphSourceRoot, "source-root", "", "override the detected source root")
	graphCmd.Flags().BoolVar(&graphIncludeOrphans, "include-orphans", false, "keep nodes with no incoming or outgoing edges")
	graphCmd.Flags().BoolVar(&graphIncludeNamespace, "include-namespace-packages", false, "keep namespace packages as real nodes instead of eliding them")
	graphCmd.Flags().StringArrayVar(&graphExcludeScripts, "exclude-scripts", nil, "glob pattern excluded from script-root discovery (repeatable)")

	graphCmd.Flags().StringVar(&graphDownstream, "downstream", "", "comma-separated root module names for a downstream query")
	graphCmd.Flags().StringArrayVar(&graphDownstreamModule, "downstream-module", nil, "root module name for a downstream query (repeatable)")
	graphCmd.Flags().StringVar(&graphDownstreamFile, "downstream-file", "", "path to a source file whose node is the downstream query root")

	graphCmd.Flags().StringVar(&graphUpstream, "upstream", "", "comma-separated root module names for an upstream query")
	graphCmd.Flags().StringArrayVar(&graphUpstreamModule, "upstream-module", nil, "root module name for an upstream query (repeatable)")
	graphCmd.Flags().StringVar(&graphUpstreamFile, "upstream-file", "", "path to a source file whose node is the upstream query root")

	graphCmd.Flags().IntVar(&graphMaxRank, "max-rank", 0, "maximum reachability distance from the root set")
	graphCmd.Flags().BoolVar(&graphShowAll, "show-all", false, "return the full graph with reachability nodes highlighted instead of restricted")
	graphCmd.Flags().StringVar(&graphFormat, "format", "dot", "output format: dot, mermaid, cytoscape, list, html")

	rootCmd.AddCommand(graphCmd)
}
