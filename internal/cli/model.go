package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/env-finder/internal/finder"
	"github.com/joe/env-finder/pkg/filesystem"
)

// Display limits for the live view.
const (
	recentMatchLimit = 5
	recentErrorLimit = 3
	pathEllipsis     = "..."
)

// ScanFunc runs the scans the view reports on.
type ScanFunc func(ctx context.Context) []*finder.Result

// ScanDoneMsg is sent when every scan has returned.
type ScanDoneMsg struct {
	Results []*finder.Result
}

// Model is the interactive scan view.
type Model struct {
	ctx    context.Context //nolint:containedctx // the scan command outlives Init
	cancel context.CancelFunc
	bridge *EventBridge
	scan   ScanFunc

	spinner spinner.Model
	styles  Styles
	width   int

	current   string
	visited   int
	skipped   int
	matches   []string
	errors    []finder.EntryFailed
	results   []*finder.Result
	done      bool
	cancelled bool
}

// NewModel creates a view that runs scan on its own goroutine. The scan's
// Finder must send its events to bridge.
func NewModel(ctx context.Context, bridge *EventBridge, scan ScanFunc) *Model {
	ctx, cancel := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(primaryColorCode))

	return &Model{
		ctx:     ctx,
		cancel:  cancel,
		bridge:  bridge,
		scan:    scan,
		spinner: s,
		styles:  NewStyles(lipgloss.DefaultRenderer()),
	}
}

// Cancelled reports whether the user stopped the scan.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Results returns the scan results once the scan is done.
func (m *Model) Results() []*finder.Result {
	return m.results
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.bridge.ListenCmd(),
		m.runScan(),
	)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.done {
				return m, tea.Quit
			}

			m.cancelled = true
			m.cancel()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case EventMsg:
		m.apply(msg.Event)
		return m, m.bridge.ListenCmd()

	case ScanDoneMsg:
		m.done = true
		m.results = msg.Results
		m.cancel()

		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.done {
		return m.summaryView()
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\n",
		m.spinner.View(),
		m.styles.Title.Render("Scanning"),
		m.styles.Dim.Render(m.truncate(m.current)))

	fmt.Fprintf(&b, "  %d searched · %d matches · %d skipped · %d errors\n",
		m.visited, len(m.matches), m.skipped, len(m.errors))

	for _, path := range lastN(m.matches, recentMatchLimit) {
		fmt.Fprintf(&b, "  %s\n", m.styles.Success.Render("✅ "+m.truncate(path)))
	}

	for _, e := range lastN(m.errors, recentErrorLimit) {
		fmt.Fprintf(&b, "  %s\n", m.styles.Error.Render("❌ "+m.truncate(e.Err.Error())))
	}

	if m.cancelled {
		b.WriteString(m.styles.Warning.Render("  stopping...") + "\n")
	} else {
		b.WriteString(m.styles.Dim.Render("  q to stop") + "\n")
	}

	return b.String()
}

func (m *Model) apply(event finder.Event) {
	switch e := event.(type) {
	case finder.EntryVisited:
		m.visited++
		if e.Entry.Kind == filesystem.KindDir {
			m.current = e.Entry.Path
		}
	case finder.DirSkipped:
		m.skipped++
	case finder.MatchFound:
		m.matches = append(m.matches, e.Path)
	case finder.EntryFailed:
		m.errors = append(m.errors, e)
	}
}

func (m *Model) runScan() tea.Cmd {
	return func() tea.Msg {
		results := m.scan(m.ctx)
		m.bridge.Close()

		return ScanDoneMsg{Results: results}
	}
}

func (m *Model) summaryView() string {
	visited, matches := Totals(m.results)

	errCount := 0
	for _, r := range m.results {
		if r != nil {
			errCount += len(r.Errors)
		}
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("=== Summary ===") + "\n")

	if m.cancelled {
		b.WriteString(m.styles.Warning.Render("Scan stopped early") + "\n")
	}

	fmt.Fprintf(&b, "Total paths searched: %d\n", visited)
	fmt.Fprintf(&b, "Matching files found: %d\n", len(matches))

	if errCount > 0 {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Errors: %d", errCount)) + "\n")
	}

	if len(matches) > 0 {
		b.WriteString("\nMatched files:\n")

		for _, path := range matches {
			fmt.Fprintf(&b, "  - %s\n", m.styles.Success.Render(path))
		}
	}

	return m.styles.Box.Render(strings.TrimSuffix(b.String(), "\n")) + "\n"
}

// truncate shortens path from the left to fit the window.
func (m *Model) truncate(path string) string {
	limit := m.width - 20
	if m.width == 0 || limit <= len(pathEllipsis) || len(path) <= limit {
		return path
	}

	return pathEllipsis + path[len(path)-limit+len(pathEllipsis):]
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}

	return items[len(items)-n:]
}
