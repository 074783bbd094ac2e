package app

import (
	"errors"
	"fmt"
	"slices"
)

// Output formats.
const (
	FormatText = "text"
	FormatDump = "dump"
	FormatHCL  = "hcl"
	FormatTree = "tree"
)

// StdinPath as the only script path reads a YAML document from standard
// input.
const StdinPath = "-"

var (
	formats   = []string{FormatText, FormatDump, FormatHCL, FormatTree}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScriptPaths []string // .hcl/.yaml files or directories
	Target      string   // name of the bound domain, "" for the first one
	RootName    string   // overrides the target's root element
	Select      string   // node path of the subtree to bind, e.g. Employees.Cook[0]

	Variables       map[string]string
	LabelAttributes []string

	Format    string
	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ScriptPaths) == 0 {
		return nil, errors.New("at least one script path is required")
	}
	if slices.Contains(cfg.ScriptPaths, StdinPath) && len(cfg.ScriptPaths) > 1 {
		return nil, fmt.Errorf("%q cannot be combined with other script paths", StdinPath)
	}
	if cfg.Format == "" {
		cfg.Format = FormatText
	}
	if !slices.Contains(formats, cfg.Format) {
		return nil, fmt.Errorf("invalid format %q: must be one of %v", cfg.Format, formats)
	}
	if cfg.LogLevel != "" && !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log level %q: must be one of %v", cfg.LogLevel, logLevels)
	}
	if cfg.LogFormat != "" && cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.LogFormat)
	}
	return &cfg, nil
}
