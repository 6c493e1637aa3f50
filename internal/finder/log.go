package finder

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// CloseLog closes the log file, if any.
func (f *Finder) CloseLog() {
	f.logMu.Lock()
	defer f.logMu.Unlock()

	if f.logFile != nil {
		_ = f.logFile.Close()
		f.logFile = nil
	}
}

// EnableFileLogging writes a plain-text record of every scan to logPath:
// roots, exclusions, skipped directories, errors, matches and totals.
// The file is truncated.
func (f *Finder) EnableFileLogging(logPath string) error {
	file, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	f.logMu.Lock()
	if f.logFile != nil {
		_ = f.logFile.Close()
	}
	f.logFile = file
	f.logMu.Unlock()

	f.logToFile(fmt.Sprintf("=== Scan Log Started: %s ===", f.TimeProvider.Now().Format(time.RFC3339)))

	return nil
}

// logEvent writes the log line for event, if it has one.
func (f *Finder) logEvent(event Event) {
	switch e := event.(type) {
	case ScanStarted:
		f.logToFile("Root: " + e.Root)
		f.logToFile("Exclusions: " + strings.Join(e.Exclusions, ", "))
	case DirSkipped:
		f.logToFile("SKIP  " + e.Path)
	case EntryFailed:
		f.logToFile(fmt.Sprintf("ERROR %s: %v", e.Path, e.Err))
	case MatchFound:
		f.logToFile("MATCH " + e.Path)
	case ScanComplete:
		f.logToFile(fmt.Sprintf("Complete: %d visited, %d matches, %d errors in %s",
			e.Visited, e.Matches, e.Errors, e.Elapsed.Round(time.Millisecond)))
		f.logToFile("")
	}
}

func (f *Finder) logToFile(msg string) {
	f.logMu.Lock()
	defer f.logMu.Unlock()

	if f.logFile == nil {
		return
	}

	_, _ = fmt.Fprintln(f.logFile, msg)
}
