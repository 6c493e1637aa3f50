// Package main is the entry point for the env-finder application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/env-finder/internal/cli"
	"github.com/joe/env-finder/internal/config"
	"github.com/joe/env-finder/internal/finder"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	matcher, err := cfg.Matcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := finder.New(cfg.FinderOptions()...)
	defer f.Close()

	if cfg.LogFile != "" {
		if err := f.EnableFileLogging(cfg.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	scan := cli.ScanRoots(f, cfg.Roots(), matcher)

	if cfg.InteractiveMode && !cfg.Quiet && term.IsTerminal(int(os.Stdout.Fd())) {
		bridge := cli.NewEventBridge()
		f.SetEventEmitter(bridge)

		if _, err := tea.NewProgram(cli.NewModel(ctx, bridge, scan)).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}

		return 0
	}

	reporter := cli.NewLineReporter(os.Stdout, cli.WithQuiet(cfg.Quiet), cli.WithDebug(cfg.Debug))
	f.SetEventEmitter(reporter)

	reporter.Summary(scan(ctx)...)

	return 0
}
