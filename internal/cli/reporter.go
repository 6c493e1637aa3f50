// Package cli renders scan events for the terminal: a streaming line
// reporter and an interactive bubbletea view.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/joe/env-finder/internal/finder"
	"github.com/joe/env-finder/pkg/errors"
	"github.com/joe/env-finder/pkg/filesystem"
)

// LineReporter prints one line per scan event and a summary at the end.
// It implements finder.EventEmitter.
type LineReporter struct {
	mu       sync.Mutex
	out      io.Writer
	styles   Styles
	enricher errors.Enricher
	quiet    bool
	debug    bool
}

// ReporterOption configures a LineReporter.
type ReporterOption func(*LineReporter)

// WithDebug adds suggestions under each error line.
func WithDebug(debug bool) ReporterOption {
	return func(r *LineReporter) {
		r.debug = debug
	}
}

// WithQuiet prints matching paths only, one per line, and no summary.
func WithQuiet(quiet bool) ReporterOption {
	return func(r *LineReporter) {
		r.quiet = quiet
	}
}

// NewLineReporter creates a LineReporter writing to out.
func NewLineReporter(out io.Writer, opts ...ReporterOption) *LineReporter {
	r := &LineReporter{
		out:      out,
		styles:   NewStyles(lipgloss.NewRenderer(out)),
		enricher: errors.NewEnricher(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Emit implements finder.EventEmitter.
func (r *LineReporter) Emit(event finder.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.quiet {
		if e, ok := event.(finder.MatchFound); ok {
			r.println(e.Path)
		}

		return
	}

	switch e := event.(type) {
	case finder.EntryVisited:
		if e.Entry.Kind == filesystem.KindDir {
			r.println(r.styles.Dim.Render("📁 Entering directory: " + e.Entry.Path))
		} else {
			r.println(r.styles.Dim.Render("🔍 Checking file: " + e.Entry.Path))
		}
	case finder.DirSkipped:
		r.println(r.styles.Warning.Render("⛔ Skipping directory: " + e.Path))
	case finder.MatchFound:
		r.println("  " + r.styles.Success.Render("✅ MATCH: "+e.Path))
	case finder.EntryFailed:
		r.printError(e)
	}
}

// Summary prints the totals of results. Nothing is printed in quiet mode.
func (r *LineReporter) Summary(results ...*finder.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.quiet {
		return
	}

	visited, matches := Totals(results)

	r.println("")
	r.println(r.styles.Title.Render("=== Summary ==="))
	r.println(fmt.Sprintf("Total paths searched: %d", visited))
	r.println(fmt.Sprintf("Matching files found: %d", len(matches)))

	if len(matches) == 0 {
		return
	}

	r.println("")
	r.println("Matched files:")

	for _, path := range matches {
		r.println("  - " + r.styles.Success.Render(path))
	}
}

// Totals returns the summed visit count and all matches of results, in order.
func Totals(results []*finder.Result) (int, []string) {
	visited := 0
	matches := []string{}

	for _, result := range results {
		if result == nil {
			continue
		}

		visited += result.Visited
		matches = append(matches, result.Paths...)
	}

	return visited, matches
}

func (r *LineReporter) printError(e finder.EntryFailed) {
	r.println("  " + r.styles.Error.Render("❌ Error accessing path: "+e.Err.Error()))

	if !r.debug {
		return
	}

	suggestions := errors.FormatSuggestions(r.enricher.Enrich(e.Err, e.Path))
	if suggestions != "" {
		r.println("    " + strings.ReplaceAll(suggestions, "\n", "\n    "))
	}
}

func (r *LineReporter) println(line string) {
	_, _ = fmt.Fprintln(r.out, line)
}
