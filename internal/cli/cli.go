package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/vk/brewmaster/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// varFlags collects repeated -var name=value flags.
type varFlags map[string]string

func (v varFlags) String() string {
	pairs := make([]string, 0, len(v))
	for name, value := range v {
		pairs = append(pairs, name+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (v varFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	v[name] = value
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("brewmaster", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Brewmaster - Binds declarative HCL and YAML scripts into typed object graphs.

Usage:
  brewmaster [options] [SCRIPT_PATH...]

Arguments:
  SCRIPT_PATH
    A .hcl or .yaml file, or a directory of them. Use "-" to read YAML
    from standard input.

Options:
`)
		flagSet.PrintDefaults()
	}

	vars := varFlags{}
	scriptFlag := flagSet.String("script", "", "Path to the script file or directory.")
	sFlag := flagSet.String("s", "", "Path to the script file or directory (shorthand).")
	targetFlag := flagSet.String("target", "", "Domain to bind into. Defaults to the first registered one.")
	tFlag := flagSet.String("t", "", "Domain to bind into (shorthand).")
	rootFlag := flagSet.String("root", "", "Name of the root element. Overrides the target's default.")
	selectFlag := flagSet.String("select", "", "Bind only the subtree at this path, e.g. Employees.Cook[0].")
	flagSet.Var(vars, "var", "Script variable as name=value. Repeatable.")
	labelFlag := flagSet.String("label-attr", "", "Comma-separated attribute names for HCL block labels. Default 'name'.")
	formatFlag := flagSet.String("format", app.FormatText, "Report format. Options: 'text', 'dump', 'hcl', 'tree'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	switch {
	case *scriptFlag != "":
		paths = append(paths, *scriptFlag)
	case *sFlag != "":
		paths = append(paths, *sFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Script paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No script path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	target := *targetFlag
	if target == "" {
		target = *tFlag
	}

	var labels []string
	for _, l := range strings.Split(*labelFlag, ",") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}

	config, err := app.NewConfig(app.Config{
		ScriptPaths:     paths,
		Target:          target,
		RootName:        *rootFlag,
		Select:          *selectFlag,
		Variables:       vars,
		LabelAttributes: labels,
		Format:          strings.ToLower(*formatFlag),
		LogFormat:       strings.ToLower(*logFormatFlag),
		LogLevel:        strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
