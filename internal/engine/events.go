package engine

import "sync"

// EventType identifies a lifecycle or command event.
type EventType string

const (
	EventComponentDidAppear    EventType = "componentDidAppear"
	EventComponentDidDisappear EventType = "componentDidDisappear"
	EventCommandCompleted      EventType = "commandCompleted"
	EventModalDismissed        EventType = "modalDismissed"
)

// Event is delivered to listeners registered through Events.
type Event struct {
	Type          EventType
	ComponentID   string
	ComponentName string
	// CommandName is set for EventCommandCompleted.
	CommandName string
}

// Listener receives events.
type Listener func(Event)

// Subscription removes a listener.
type Subscription interface {
	Remove()
}

// Events is the event-subscription capability of an engine.
type Events interface {
	Subscribe(fn Listener) Subscription
}

// Broadcaster is an Events implementation engines can embed. Safe for
// concurrent use.
type Broadcaster struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
}

// NewBroadcaster returns an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[int]Listener)}
}

// Subscribe implements Events.
func (b *Broadcaster) Subscribe(fn Listener) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	return &subscription{b: b, id: id}
}

// Emit delivers e to every listener on the caller's goroutine.
func (b *Broadcaster) Emit(e Event) {
	b.mu.RLock()
	fns := make([]Listener, 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()
	for _, fn := range fns {
		fn(e)
	}
}

// Len returns the number of active listeners.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

type subscription struct {
	b  *Broadcaster
	id int
}

func (s *subscription) Remove() {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	delete(s.b.listeners, s.id)
}
