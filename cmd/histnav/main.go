package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/vidyasagar/histnav/internal/app"
	"github.com/vidyasagar/histnav/internal/config"
	"github.com/vidyasagar/histnav/internal/history"
	"github.com/vidyasagar/histnav/internal/logging"
	"github.com/vidyasagar/histnav/internal/shell"
	"github.com/vidyasagar/histnav/internal/theme"
)

var (
	version = "0.1.0"
)

func main() {
	var (
		themeName   string
		configPath  string
		logPath     string
		logLevel    string
		tui         bool
		showVersion bool
	)

	themes := strings.Join(theme.List(), ", ")
	flag.StringVar(&themeName, "theme", "", "color theme ("+themes+")")
	flag.StringVar(&configPath, "config", "", "config file (default: user config dir/histnav/config.yaml)")
	flag.StringVar(&logPath, "log", "", "append diagnostic logs to this file")
	flag.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flag.BoolVar(&tui, "tui", false, "use the full-screen interface")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "histnav - an in-memory browsing history manager\n\n")
		fmt.Fprintf(os.Stderr, "Usage: histnav [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  histnav                          # numbered menu on stdin/stdout\n")
		fmt.Fprintf(os.Stderr, "  histnav -tui                     # full-screen interface\n")
		fmt.Fprintf(os.Stderr, "  histnav -log /tmp/histnav.log    # with diagnostics\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("histnav %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if themeName == "" {
		themeName = cfg.Theme
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}

	// Apply theme.
	if !theme.Set(themeName) {
		fmt.Fprintf(os.Stderr, "Unknown theme: %s\nAvailable: %s\n", themeName, themes)
		os.Exit(1)
	}

	closeLog, err := setupLogging(logPath, logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, tui); err != nil {
		logging.Error("exiting", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config, tui bool) error {
	h := history.New()
	logging.Info("starting", "version", version, "tui", tui, "theme", theme.Current.Name)

	if tui && !(isTerminal(os.Stdin) && isTerminal(os.Stdout)) {
		fmt.Fprintln(os.Stderr, "histnav: -tui needs a terminal, using the menu instead")
		tui = false
	}

	if !tui {
		return shell.New(h, os.Stdin, os.Stdout, shell.Options{
			MaxURLLength: cfg.MaxURLLength,
		}).Run()
	}

	m := app.New(h, app.Options{
		Suggestions:  cfg.Suggestions,
		MaxURLLength: cfg.MaxURLLength,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	logging.Info("history cleared", "entries", h.Clear())
	return nil
}

func setupLogging(path, level string) (func(), error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if path == "" {
		logging.Init(io.Discard, lvl)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logging.Init(f, lvl)
	return func() { f.Close() }, nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
