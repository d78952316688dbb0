// Package main is the entry point for the rewind editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/rewind/internal/config"
	"github.com/dshills/rewind/internal/script"
	"github.com/dshills/rewind/internal/session"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	scriptPath string
	logLevel   string
	docName    string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}

	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logger, logCleanup, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
		return 1
	}
	defer logCleanup()

	sess := session.New(opts.docName, session.Options{
		MaxHistory:     cfg.History.MaxEntries,
		MaxSaves:       cfg.Saves.MaxSlots,
		MaxCheckpoints: cfg.Saves.MaxCheckpoints,
		Logger:         logger,
	})
	defer sess.Close()

	// Live reload of tunable settings while running.
	if opts.configPath != "" {
		watcher, werr := config.NewWatcher(opts.configPath)
		if werr != nil {
			logger.Warn("config watch disabled: %v", werr)
		} else {
			watcher.OnReload(func(c *config.Config) {
				logger.SetLevel(session.ParseLogLevel(c.Logging.Level))
				sess.SetMaxHistory(c.History.MaxEntries)
				logger.Info("configuration reloaded")
			})
			defer func() { _ = watcher.Close() }()
		}
	}

	// Script mode: run the macro headless and print the result.
	if opts.scriptPath != "" {
		return runScript(sess, opts.scriptPath)
	}

	ui, err := newUI(sess)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	defer ui.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		ui.Quit()
	}()

	if err := ui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// runScript executes a Lua macro file against the session and writes
// the resulting document to stdout.
func runScript(sess *session.Session, path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read script: %v\n", err)
		return 1
	}

	engine := script.NewEngine(sess)
	name := filepath.Base(path)
	if err := engine.RunMacro(name, string(source)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Print(sess.Content())
	return 0
}

// buildLogger creates the session logger from the logging config.
func buildLogger(cfg *config.Config) (*session.Logger, func(), error) {
	lcfg := session.DefaultLoggerConfig()
	lcfg.Level = session.ParseLogLevel(cfg.Logging.Level)

	cleanup := func() {}
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		lcfg.Output = f
		cleanup = func() { _ = f.Close() }
	}

	return session.NewLogger(lcfg), cleanup, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Run a Lua macro file and exit")
	flag.StringVar(&opts.scriptPath, "s", "", "Run a Lua macro file and exit (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Rewind - undo/redo scratchpad editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rewind [options] [name]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rewind                      Open an empty scratchpad\n")
		fmt.Fprintf(os.Stderr, "  rewind notes                Open a scratchpad named notes\n")
		fmt.Fprintf(os.Stderr, "  rewind -s macro.lua         Run a macro headless\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Rewind %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	opts.docName = "scratch"
	if flag.NArg() > 0 {
		opts.docName = flag.Arg(0)
	}

	return opts
}
