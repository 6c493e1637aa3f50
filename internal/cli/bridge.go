package cli

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/env-finder/internal/finder"
)

// eventBufferSize bounds how far the scan may run ahead of the view.
const eventBufferSize = 256

// EventMsg wraps a finder.Event for use as a tea.Msg.
type EventMsg struct {
	Event finder.Event
}

// EventBridge adapts finder events to bubble tea messages.
// It implements finder.EventEmitter and provides a channel for the view.
type EventBridge struct {
	mu        sync.Mutex
	eventChan chan tea.Msg
	closed    bool
}

// NewEventBridge creates a new event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{
		eventChan: make(chan tea.Msg, eventBufferSize),
	}
}

// Emit implements finder.EventEmitter. The send never blocks the scan:
// when the view falls behind, the event is dropped. Final totals come
// from the scan results, not from events.
func (b *EventBridge) Emit(event finder.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	select {
	case b.eventChan <- EventMsg{Event: event}:
	default:
	}
}

// Subscribe returns the event channel for receiving events.
func (b *EventBridge) Subscribe() <-chan tea.Msg {
	return b.eventChan
}

// ListenCmd returns a tea.Cmd that blocks until an event is received.
// It yields nil once the bridge is closed and drained.
func (b *EventBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.eventChan
		if !ok {
			return nil
		}

		return msg
	}
}

// Close closes the event channel. Later events are ignored.
func (b *EventBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.eventChan)
	}
}
