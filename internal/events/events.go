package events

import (
	"fmt"
	"sync"
)

// Kind identifies an event published on a Dispatcher.
type Kind int

const (
	// SelectionChanged is published when the set of selected members changes.
	// It carries no payload; subscribers re-read the selection from state.
	SelectionChanged Kind = iota
)

func (k Kind) String() string {
	switch k {
	case SelectionChanged:
		return "selectionChanged"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Handler is invoked once per publish of the kind it is subscribed to.
type Handler func()

// Dispatcher fans events out to registered handlers.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[Kind][]Handler
}

// NewDispatcher creates a Dispatcher with no subscribers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Kind][]Handler)}
}

// Subscribe registers h for every future publish of kind. nil handlers are ignored.
func (d *Dispatcher) Subscribe(kind Kind, h Handler) {
	if h == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = append(d.handlers[kind], h)
}

// Publish invokes all handlers for kind synchronously, in registration order.
// Handlers run without the lock held, so they may subscribe or publish.
func (d *Dispatcher) Publish(kind Kind) {
	d.mu.Lock()
	hs := d.handlers[kind]
	d.mu.Unlock()

	for _, h := range hs {
		h()
	}
}

// Subscribers returns the number of handlers registered for kind.
func (d *Dispatcher) Subscribers(kind Kind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers[kind])
}
