package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configPath     string
	noStringIntern bool
	noSymbolIntern bool
	cfg            Config
)

var rootCmd = &cobra.Command{
	Use:   "funlisp",
	Short: "An embeddable Lisp interpreter",
	Long: `funlisp is a small, embeddable Lisp dialect: integers, strings,
symbols, cons cells, closures and macros, evaluated by a tree-walking
interpreter over a mark-and-sweep managed heap.

Run a script, evaluate an inline expression, or start an interactive
session.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		loaded, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", configPath, err)
		}
		cfg = loaded
		if noStringIntern {
			cfg.InternStrings = false
		}
		if noSymbolIntern {
			cfg.InternSymbols = false
		}
		return nil
	},
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

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&noStringIntern, "no-string-intern", false, "disable the string interning cache")
	rootCmd.PersistentFlags().BoolVar(&noSymbolIntern, "no-symbol-intern", false, "disable the symbol interning cache")
}
