package event

import "sync"

// Buffered retains every emitted event in memory, in emission order.
//
// It exists for tests and for in-process dashboards that want to inspect
// recent engine activity. Nothing evicts old events, so long-lived
// production processes should prefer a log or OTel emitter.
type Buffered struct {
	mu     sync.RWMutex
	events []Event
}

// NewBufferedEmitter returns an empty in-memory emitter.
func NewBufferedEmitter() *Buffered {
	return &Buffered{}
}

// Emit appends the event. Safe for concurrent use.
func (b *Buffered) Emit(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append(b.events, e)
}

// Events returns a copy of everything emitted so far, oldest first.
func (b *Buffered) Events() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Event, len(b.events))
	copy(out, b.events)

	return out
}

// ByType returns a copy of the events of one type, oldest first.
func (b *Buffered) ByType(t Type) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Event
	for _, e := range b.events {
		if e.Type == t {
			out = append(out, e)
		}
	}

	return out
}

// Last returns the most recent event and true, or a zero Event and false
// when nothing was emitted yet.
func (b *Buffered) Last() (Event, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.events) == 0 {
		return Event{}, false
	}

	return b.events[len(b.events)-1], true
}

// Clear drops all retained events.
func (b *Buffered) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = nil
}
