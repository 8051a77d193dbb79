package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/kr/pretty"
	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/nilbranch/pathfinder/internal/config"
	pferrors "github.com/nilbranch/pathfinder/internal/errors"
	"github.com/nilbranch/pathfinder/internal/evaluator"
	"github.com/nilbranch/pathfinder/internal/lexer"
	"github.com/nilbranch/pathfinder/internal/parser"
	"github.com/nilbranch/pathfinder/internal/report"
	"github.com/nilbranch/pathfinder/internal/scope"
	"github.com/nilbranch/pathfinder/internal/symbolic"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]...",
	Short: "Analyze one or more files for unreachable code",
	Long: `analyze runs pathfinder's path-sensitive evaluator over each given
file and reports its unreachable lines independently.

With no file given, it falls back to the historical default path
"code.txt". --glob additionally expands a shell-less wildcard pattern
and analyzes every match alongside any file arguments.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runAnalyze,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

// defaultInputFile is spec §6's historical single-invocation default,
// carried over from original_source/pathfinder.py's hardcoded path.
const defaultInputFile = "code.txt"

func runAnalyze(cmd *cobra.Command, args []string) error {
	if queryPath != "" && !jsonOutput {
		return fmt.Errorf("--query requires --json")
	}

	files, err := resolveFiles(args)
	if err != nil {
		return err
	}

	cfgFile, err := config.Load(configPath)
	if err != nil {
		return err
	}
	policy, err := config.Resolve(cfgFile, &config.Overrides{Parallel: &parallelFlag})
	if err != nil {
		return err
	}
	if debugFlag {
		policy.DebugHook = debugDump
	}
	if traceFlag {
		policy.TraceHook = traceLine
	}

	var anyFailed bool
	allLines := make([][]int, len(files))

	for i, file := range files {
		lines, ok := analyzeOne(file, policy)
		allLines[i] = lines
		if !ok {
			anyFailed = true
		}
	}

	if err := printResults(files, allLines); err != nil {
		return err
	}
	if anyFailed {
		return fmt.Errorf("one or more files failed to analyze")
	}
	return nil
}

// resolveFiles merges positional args with --glob expansion and applies
// spec §6's code.txt fallback when nothing else was given. Results are
// ordered with maruel/natural so batch output is stable and readable.
func resolveFiles(args []string) ([]string, error) {
	files := append([]string{}, args...)

	if globPattern != "" {
		matches, err := filepath.Glob(globPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid --glob pattern %q: %w", globPattern, err)
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		files = append(files, defaultInputFile)
	}

	sort.Slice(files, func(i, j int) bool { return natural.Less(files[i], files[j]) })
	return files, nil
}

// analyzeOne runs the full read/lex/parse/evaluate pipeline for one file,
// implementing spec §7's error taxonomy: classes 1 and 2 are reported and
// stop the core from running; class 5 is caught by evaluator.Evaluate
// itself and reported generically.
func analyzeOne(file string, policy *evaluator.Policy) (lines []int, ok bool) {
	content, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file: %v\n", file, err)
		return nil, false
	}

	source := string(content)
	l := lexer.New(source)
	p := parser.New(l, file, source)
	module := p.Parse()

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "%s: parse error(s):\n", file)
		fmt.Fprint(os.Stderr, pferrors.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
		return nil, false
	}

	lines, err = evaluator.Evaluate(module, policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: analysis failed\n", file)
		return nil, false
	}
	return lines, true
}

func printResults(files []string, allLines [][]int) error {
	if jsonOutput {
		var doc string
		var err error
		if len(files) == 1 {
			doc, err = report.JSON(files[0], allLines[0])
		} else {
			doc, err = report.Batch(files, allLines)
		}
		if err != nil {
			return err
		}
		if queryPath != "" {
			result, err := report.Query(doc, queryPath)
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		}
		fmt.Println(doc)
		return nil
	}

	multi := len(files) > 1
	for i, file := range files {
		if multi {
			fmt.Printf("%s:\n", file)
		}
		fmt.Println(report.Message(allLines[i]))
	}
	return nil
}

// debugDump backs --debug: a kr/pretty dump of the live scope stack and
// path predicate at the moment a branch is pruned.
func debugDump(label string, sc *scope.Stack, pathPred []symbolic.Value) {
	fmt.Fprintf(os.Stderr, "--- pruned: %s ---\n", label)
	fmt.Fprintf(os.Stderr, "%# v\n", pretty.Formatter(struct {
		Scope    *scope.Stack
		PathPred []symbolic.Value
	}{sc, pathPred}))
}

// traceLogger writes --trace's one-line-per-visited-statement output
// with no timestamp prefix, so golden trace output has no wall-clock
// jitter.
var traceLogger = log.New(os.Stderr, "trace: ", 0)

// traceLine backs --trace: one line per statement visited.
func traceLine(line int, kind string) {
	traceLogger.Printf("line %d (%s)", line, kind)
}
