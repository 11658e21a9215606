package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds settings read from an optional YAML config file, layered
// underneath command-line flags (flags always win).
type Config struct {
	InternStrings bool   `yaml:"intern_strings"`
	InternSymbols bool   `yaml:"intern_symbols"`
	HistoryFile   string `yaml:"history_file"`
}

func defaultConfig() Config {
	home, _ := os.UserHomeDir()
	historyFile := ".funlisp_history"
	if home != "" {
		historyFile = home + "/.funlisp_history"
	}
	return Config{
		InternStrings: true,
		InternSymbols: true,
		HistoryFile:   historyFile,
	}
}

// loadConfig reads path (if non-empty and present) over top of the
// defaults. A missing path is not an error; an unreadable or malformed
// existing file is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
