package event

// Emitter receives engine notifications.
//
// Implementations must be safe for concurrent use, must not block the
// caller, and must not panic; the engine emits from its update path and
// treats every emitter as fire-and-forget.
type Emitter interface {
	Emit(e Event)
}

// Null is the no-op Emitter. It is the engine's default when no emitter is
// configured.
type Null struct{}

// Emit discards the event.
func (Null) Emit(Event) {}

// Multi fans every event out to each wrapped emitter in order.
func Multi(emitters ...Emitter) Emitter {
	return multi(emitters)
}

type multi []Emitter

func (m multi) Emit(e Event) {
	for _, em := range m {
		em.Emit(e)
	}
}
