package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/funlisp/pkg/funlisp"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var (
	evalExpr    string
	dumpAST     bool
	dumpStack   bool
	interactive bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a funlisp script or expression",
	Long: `Execute a funlisp program from a file or inline expression.

Examples:
  # Run a script file
  funlisp run script.lisp

  # Evaluate an inline expression
  funlisp run -e "(print (+ 1 2))"

  # Dump the parsed value graph before evaluating (for debugging)
  funlisp run --dump-ast script.lisp

  # Load a file's definitions, then drop into a REPL instead of running main
  funlisp run -x script.lisp`,
	Args: cobra.ArbitraryArgs,
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed value graph before evaluating")
	runCmd.Flags().BoolVar(&dumpStack, "dump-stack-on-error", true, "print the call stack when a script fails")
	runCmd.Flags().BoolVarP(&interactive, "interactive", "x", false, "load the file, then start a REPL over its scope instead of running main")
}

// runScript reads a file (or the -e expression), evaluates its top-level
// forms, then either starts a REPL over the resulting scope (--interactive,
// mirroring the reference host's `-x`) or falls back to the `main`
// convention: if the script bound a `main`, it is called with the remaining
// command-line arguments as a single quoted list, and the process exits
// with its integer return value (0 for nil, 1 on any error).
func runScript(_ *cobra.Command, args []string) error {
	var source, filename string
	var programArgs []string

	switch {
	case evalExpr != "":
		source, filename = evalExpr, "<eval>"
		programArgs = args
	case len(args) >= 1:
		filename = args[0]
		programArgs = args[1:]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source = string(data)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	ctx := funlisp.New(os.Stdout)
	ctx.SetInterning(cfg.InternStrings, cfg.InternSymbols)
	scope := ctx.DefaultScope()

	form, err := ctx.ReadProgn(source)
	if err != nil {
		return reportError(ctx, filename)
	}

	if dumpAST {
		fmt.Fprintln(os.Stderr, "parsed form:")
		spew.Fdump(os.Stderr, form)
	}

	if _, err := ctx.Eval(scope, form); err != nil {
		return reportError(ctx, filename)
	}

	if interactive {
		return runREPLLoop(ctx, scope)
	}

	result, ranMain, err := ctx.RunMainIfExists(scope, programArgs)
	if err != nil {
		return reportError(ctx, filename)
	}
	if !ranMain {
		return nil
	}
	if funlisp.IsNil(result) {
		os.Exit(0)
	}
	if n, err := funlisp.AsInteger(result); err == nil {
		os.Exit(int(n))
	}
	os.Exit(0)
	return nil
}

func reportError(ctx *funlisp.Context, filename string) error {
	e := ctx.GetError()
	if e == nil {
		return fmt.Errorf("unknown error in %s", filename)
	}
	if dumpStack {
		ctx.PrintError()
	}
	return fmt.Errorf("%s: %w", filename, e)
}
