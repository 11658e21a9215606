// Command funlisp is the standalone interpreter and REPL for the funlisp
// language: run a script file, evaluate an inline expression, or drop into
// an interactive session.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/funlisp/cmd/funlisp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
