package watcher

import (
	"sync"
	"time"

	"go.skiff.dev/baton/internal/core/ports"
)

// DefaultDebounceWindow is how long the debouncer waits after the last event
// before firing. Editors often write a file several times in quick succession.
const DefaultDebounceWindow = 200 * time.Millisecond

// Debouncer coalesces bursts of file system events into a single callback.
type Debouncer struct {
	window   time.Duration
	callback func(events []ports.WatchEvent)

	mu      sync.Mutex
	pending map[string]ports.WatchEvent
	timer   *time.Timer
}

// NewDebouncer creates a debouncer that invokes callback once per burst.
func NewDebouncer(window time.Duration, callback func(events []ports.WatchEvent)) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
		pending:  make(map[string]ports.WatchEvent),
	}
}

// Add records an event and resets the debounce window. Later events for the
// same path replace earlier ones.
func (d *Debouncer) Add(event ports.WatchEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[event.Path] = event

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// Flush fires the callback immediately if any events are pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.fire()
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	events := make([]ports.WatchEvent, 0, len(d.pending))
	for _, event := range d.pending {
		events = append(events, event)
	}
	d.pending = make(map[string]ports.WatchEvent)
	d.mu.Unlock()

	d.callback(events)
}
