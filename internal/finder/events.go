package finder

import (
	"time"

	"github.com/joe/env-finder/pkg/filesystem"
)

// Event is the interface implemented by all scan events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for receiving scan events.
// Events arrive synchronously on the scanning goroutine, in traversal order.
type EventEmitter interface {
	Emit(event Event)
}

// EmitterFunc adapts a function to EventEmitter.
type EmitterFunc func(event Event)

// Emit calls fn(event).
func (fn EmitterFunc) Emit(event Event) {
	fn(event)
}

// ScanStarted is emitted before the root is opened.
type ScanStarted struct {
	Root       string
	Exclusions []string
}

func (ScanStarted) isEvent() {}

// EntryVisited is emitted for every readable entry, directories included.
type EntryVisited struct {
	Entry filesystem.Entry
}

func (EntryVisited) isEvent() {}

// DirSkipped is emitted when an excluded directory is pruned.
type DirSkipped struct {
	Path string
}

func (DirSkipped) isEvent() {}

// MatchFound is emitted right after the EntryVisited of a matching file.
type MatchFound struct {
	Path string
}

func (MatchFound) isEvent() {}

// EntryFailed is emitted for an entry that could not be read. The scan goes on.
type EntryFailed struct {
	Path string
	Err  error
}

func (EntryFailed) isEvent() {}

// ScanComplete is emitted once per scan, also after cancellation.
type ScanComplete struct {
	Root    string
	Visited int
	Matches int
	Errors  int
	Elapsed time.Duration
}

func (ScanComplete) isEvent() {}
