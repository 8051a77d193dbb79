// Package cmd implements pathfinder's Cobra command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	jsonOutput   bool
	queryPath    string
	debugFlag    bool
	traceFlag    bool
	globPattern  string
	configPath   string
	parallelFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "pathfinder [file]...",
	Short: "Find statically unreachable code in a small Python-like language",
	Long: `pathfinder performs path-sensitive symbolic analysis of a small
Python-like imperative language, reporting which source lines can never
be reached no matter how the program's branches resolve.

Invoked bare, pathfinder analyzes the given file(s) exactly like
"pathfinder analyze <file>..." would — with no file given it falls back
to the historical default path "code.txt".`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	RunE:          runAnalyze,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"emit structured JSON instead of the plain-text summary")
	rootCmd.PersistentFlags().StringVar(&queryPath, "query", "",
		"gjson path to extract from the JSON result (requires --json)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"dump the evaluator's scope stack and path predicate at every pruned branch")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false,
		"trace every statement visited during analysis")
	rootCmd.PersistentFlags().StringVar(&globPattern, "glob", "",
		"expand this glob pattern and analyze every match in addition to any file arguments")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".pathfinder.yaml",
		"path to the .pathfinder.yaml tunables file")
	rootCmd.PersistentFlags().BoolVar(&parallelFlag, "parallel", false,
		"evaluate an If's then/else arms concurrently when both are feasible")
}
