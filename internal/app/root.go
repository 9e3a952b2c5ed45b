// Package app wires the procargs command line.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/procargs/internal/batch"
	"github.com/pranshuparmar/procargs/internal/config"
	"github.com/pranshuparmar/procargs/internal/logging"
	"github.com/pranshuparmar/procargs/internal/match"
	"github.com/pranshuparmar/procargs/internal/output"
	"github.com/pranshuparmar/procargs/internal/proc"
	"github.com/pranshuparmar/procargs/pkg/model"
)

// Exit codes
const (
	ExitOK       = 0
	ExitFailure  = 1 // Unknown command line, no match, or a runtime error
	ExitBadUsage = 2 // Invalid flags or PID arguments
)

// ErrUnknown is returned when no requested process could be read.
var ErrUnknown = errors.New("command line unknown")

// Version is set at build time.
var Version = "dev"

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type options struct {
	configPath      string
	logLevel        string
	noColor         bool
	verifyPathToken bool

	args        bool
	cmdline     bool
	argv        bool
	jsonOut     bool
	short       bool
	concurrency int
	sortBy      string
}

var rootCmd = NewRootCmd()

func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "procargs [flags] PID...",
		Short: "Show the command line a running process was started with",
		Long: `procargs reads the command line of other processes and splits off the
program path, leaving the arguments the process was given.

An empty result means the command line could not be read.`,
		Example: `  procargs 4242
  procargs --args 4242
  procargs --json 4242 4343
  procargs match 4242 --path 'C:\Tools\editor.exe' --args '--project alpha'`,
		Version:       Version,
		Args:          pidArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pids, _ := parsePIDs(args)
			return run(cmd, opts, pids)
		},
	}
	cmd.SetVersionTemplate("procargs {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: error, warn, info, debug, trace")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	pf.BoolVar(&opts.verifyPathToken, "verify-path-token", false, "split at the command line's own program token when it differs from the image path")

	f := cmd.Flags()
	f.BoolVar(&opts.args, "args", false, "print only the arguments")
	f.BoolVar(&opts.cmdline, "cmdline", false, "print only the full command line")
	f.BoolVar(&opts.argv, "argv", false, "print the command line split into argv")
	f.BoolVar(&opts.jsonOut, "json", false, "output as JSON")
	f.BoolVar(&opts.short, "short", false, "one line per process")
	f.IntVar(&opts.concurrency, "concurrency", 0, "processes read in parallel")
	f.StringVar(&opts.sortBy, "sort", "", "table sort order: pid, image")
	cmd.MarkFlagsMutuallyExclusive("args", "cmdline", "argv", "json", "short")

	cmd.AddCommand(newMatchCmd(opts))
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return executeVersion(rootCmd, os.Stderr)
}

// executeVersion stamps the build-time Version, which is set after
// NewRootCmd has already run, then executes cmd.
func executeVersion(cmd *cobra.Command, stderr io.Writer) int {
	cmd.Version = Version
	return execute(cmd, stderr)
}

func execute(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		return ExitBadUsage
	}
	if !errors.Is(err, match.ErrNoMatch) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitFailure
}

func pidArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError{fmt.Errorf("requires at least %d PID", n)}
		}
		if _, err := parsePIDs(args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func parsePIDs(args []string) ([]int, error) {
	pids := make([]int, 0, len(args))
	for _, a := range args {
		pid, err := strconv.Atoi(a)
		if err != nil || pid <= 0 {
			return nil, fmt.Errorf("invalid pid %q: must be a positive integer", a)
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

// prepare resolves configuration (defaults, file, environment, flags),
// configures logging, and opens an extractor.
func prepare(cmd *cobra.Command, opts *options) (*config.Config, *proc.Extractor, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, nil, err
	}

	if changed(cmd, "log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if changed(cmd, "verify-path-token") {
		cfg.Extraction.VerifyPathToken = opts.verifyPathToken
	}
	if changed(cmd, "concurrency") {
		cfg.Batch.Concurrency = opts.concurrency
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, usageError{err}
	}
	if err := logging.Setup(cfg.Logging, cmd.ErrOrStderr()); err != nil {
		return nil, nil, err
	}

	ex, err := proc.NewExtractor(proc.Options{
		MaxStringBytes:  cfg.Extraction.MaxStringBytes,
		VerifyPathToken: cfg.Extraction.VerifyPathToken,
		Logger:          logging.For("proc"),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, ex, nil
}

// colorEnabled reports whether output may be styled: neither --no-color
// nor the NO_COLOR environment variable is set.
func colorEnabled(opts *options) bool {
	return !opts.noColor && os.Getenv("NO_COLOR") == ""
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func run(cmd *cobra.Command, opts *options, pids []int) error {
	cfg, ex, err := prepare(cmd, opts)
	if err != nil {
		return err
	}
	defer ex.Close()

	out := cmd.OutOrStdout()
	color := colorEnabled(opts)

	var results []model.Result
	var summary batch.Summary
	if len(pids) == 1 {
		results = []model.Result{ex.Result(pids[0])}
	} else {
		summary = batch.Collect(ex, pids, cfg.Batch.Concurrency)
		results = summary.Results
	}

	switch {
	case opts.jsonOut && len(pids) == 1:
		s, err := output.ToJSON(results[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	case opts.jsonOut:
		if err := output.PrintBatchJSON(out, results); err != nil {
			return err
		}
	case opts.args || opts.cmdline:
		field := "args"
		if opts.cmdline {
			field = "cmdline"
		}
		for _, r := range results {
			output.RenderField(out, r, field)
		}
	case opts.argv:
		for _, r := range results {
			output.PrintTree(out, r, color)
		}
	case opts.short:
		for _, r := range results {
			output.RenderShort(out, r, color)
		}
	case len(pids) == 1:
		output.RenderStandard(out, results[0], color)
	default:
		table := output.NewTableRenderer(out, color, opts.sortBy)
		table.PrintHeader()
		for _, r := range results {
			table.AddRow(r)
		}
		table.Flush()
		table.PrintFooter(summary.Total, summary.Unknown, summary.Elapsed)
	}

	return unknownError(results)
}

func unknownError(results []model.Result) error {
	unknown := make([]int, 0)
	for _, r := range results {
		if !r.Known() {
			unknown = append(unknown, r.PID)
		}
	}
	if len(unknown) == 0 || len(unknown) < len(results) {
		return nil
	}
	if len(unknown) == 1 {
		return fmt.Errorf("pid %d: %w", unknown[0], ErrUnknown)
	}
	return fmt.Errorf("pids %v: %w", unknown, ErrUnknown)
}
