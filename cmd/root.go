// Package cmd implements the CLI command structure for doable.
package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nibzard/doable-go/internal/board"
	"github.com/nibzard/doable-go/internal/config"
	"github.com/nibzard/doable-go/internal/logging"
	"github.com/nibzard/doable-go/internal/seed"
	"github.com/nibzard/doable-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the doable CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("doable", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	// Determine the subcommand; the board view is the default.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "show":
		return showCommand(stdout, cfg, remainingArgs)
	case "validate":
		return validateCommand(stdout, remainingArgs)
	case "tail":
		return tailCommand(ctx, stdout, cfg, remainingArgs)
	case "config":
		return configCommand(stdout, cws, remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand opens the board view.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("doable tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	seedPath, err := seedArg(cfg, fs.Args())
	if err != nil {
		return err
	}
	b, err := loadBoard(seedPath)
	if err != nil {
		return err
	}

	session, err := logging.NewSessionLogger(cfg.LogDir, cfg.ProjectRoot, logOptions(cfg))
	if err != nil {
		return fmt.Errorf("creating session log: %w", err)
	}
	defer session.Close()
	logger := session.Logger
	logger.Info("session started", "run", session.RunID, "seed", seedOrSample(seedPath), "tasks", b.Len())

	a := newApp(ctx, cfg, b, session.Dir, logger)
	defer a.close()

	err = ui.RunTUI(ctx, a.store, ui.Options{
		ColumnWidth: cfg.ColumnWidth,
		Mouse:       cfg.Mouse,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("board view failed", "err", err)
		return err
	}
	logger.Info("session ended", "tasks", a.store.Snapshot().Len())
	return nil
}

// showCommand prints the seed board.
func showCommand(w io.Writer, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("doable show", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print the board as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	seedPath, err := seedArg(cfg, fs.Args())
	if err != nil {
		return err
	}
	b, err := loadBoard(seedPath)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	}
	printBoard(w, b)
	return nil
}

// validateCommand validates a seed file.
func validateCommand(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("doable validate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("validate takes exactly one file")
	}

	doc, err := seed.LoadDocument(remaining[0])
	if err != nil {
		return err
	}
	b := doc.Board()
	fmt.Fprintf(w, "✅ %s is valid (%d tasks: %d to do, %d doing, %d done)\n",
		remaining[0], b.Len(), b.Count(board.ColumnTodo), b.Count(board.ColumnDoing), b.Count(board.ColumnDone))
	return nil
}

// tailCommand tails the latest session log.
func tailCommand(ctx context.Context, w io.Writer, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("doable tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	workDir := cfg.ProjectRoot
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, workDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(w, "No log files found.")
		return nil
	}

	fmt.Fprintf(w, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(w, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(w)

	return logging.TailLog(ctx, w, logPath, *n, *follow)
}

// configCommand prints the effective configuration and where each value
// came from.
func configCommand(w io.Writer, cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("doable config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(w, config.ExampleConfig())
		return nil
	}

	if path := cws.GetConfigFile(); path != "" {
		fmt.Fprintf(w, "Config file: %s\n", path)
	} else {
		fmt.Fprintln(w, "Config file: (none)")
	}
	fmt.Fprintln(w)
	for _, name := range config.Fields() {
		source := cws.Sources[name]
		if source == "" {
			source = config.SourceDefault
		}
		fmt.Fprintf(w, "  %-22s %-28q (%s)\n", name, cws.Config.Value(name), source)
	}
	return nil
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "doable version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "doable - a three-column task board for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  doable [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui [file]       Open the board (default command)")
	fmt.Fprintln(w, "  show [file]      Print the board (-json for JSON)")
	fmt.Fprintln(w, "  validate <file>  Validate a seed file")
	fmt.Fprintln(w, "  tail             Tail the latest session log (-n N, -f)")
	fmt.Fprintln(w, "  config           Show the effective config (-example for a sample file)")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// printBoard writes the board as indented text, one section per column.
func printBoard(w io.Writer, b board.Board) {
	for i, col := range board.Columns() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		tasks := b.Tasks(col.ID)
		fmt.Fprintf(w, "%s (%d)\n", col.Title, len(tasks))
		if len(tasks) == 0 {
			fmt.Fprintln(w, "  (empty)")
			continue
		}
		for _, t := range tasks {
			fmt.Fprintf(w, "  - %s: %s\n", t.ID, t.Title)
			if t.Description != "" {
				fmt.Fprintf(w, "      %s\n", t.Description)
			}
		}
	}
}

// seedArg returns the seed file from args or the config. An empty result
// means the built-in sample board.
func seedArg(cfg *config.Config, args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	path := cfg.SeedFile
	if len(args) == 1 {
		path = args[0]
		if !filepath.IsAbs(path) && cfg.ProjectRoot != "" {
			path = filepath.Join(cfg.ProjectRoot, path)
		}
	}
	return path, nil
}

// loadBoard loads the seed file at path, or the sample board when path is
// empty.
func loadBoard(path string) (board.Board, error) {
	if path == "" {
		return seed.Sample(), nil
	}
	return seed.Load(path)
}

func seedOrSample(path string) string {
	if path == "" {
		return "(sample)"
	}
	return path
}

func logOptions(cfg *config.Config) logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.Format = cfg.LogFormat
	opts.ReportTimestamp = cfg.LogTimestamps
	opts.ReportCaller = cfg.LogCaller
	return opts
}
