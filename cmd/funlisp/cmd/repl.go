package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/cwbudde/funlisp/pkg/funlisp"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Long: `Start an interactive funlisp session: one form is read, evaluated and
printed per line, with history persisted across sessions.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(*cobra.Command, []string) error {
	ctx := funlisp.New(os.Stdout)
	ctx.SetInterning(cfg.InternStrings, cfg.InternSymbols)
	scope := ctx.DefaultScope()
	return runREPLLoop(ctx, scope)
}

// runREPLLoop drives an interactive read-eval-print loop over an
// already-built context and scope, so `repl` can start one from scratch and
// `run --interactive` can drop into one after loading a file, reusing
// whatever the file already bound (original_source/tools/funlisp.c's `-x`
// flag: "load it and run REPL rather than main").
func runREPLLoop(ctx *funlisp.Context, scope *funlisp.Scope) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		value, _, err := ctx.Read(line, 0)
		if err != nil {
			ctx.PrintError()
			ctx.ClearError()
			continue
		}

		result, err := ctx.Eval(scope, value)
		if err != nil {
			ctx.PrintError()
			ctx.ClearError()
		} else if !funlisp.IsNil(result) {
			funlisp.Print(os.Stdout, result)
			fmt.Fprintln(os.Stdout)
		}

		ctx.Mark(scope)
		ctx.Sweep()
	}
}
