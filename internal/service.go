package internal

import (
	"github.com/deevus/congress-tui/internal/events"
	"github.com/deevus/congress-tui/internal/source"
)

// Services holds the data source and event dispatcher for one dataset.
type Services struct {
	Source source.Source
	Events *events.Dispatcher
}

// NewServices creates a Services container. A nil dispatcher is replaced
// with a new one.
func NewServices(src source.Source, d *events.Dispatcher) *Services {
	if d == nil {
		d = events.NewDispatcher()
	}
	return &Services{
		Source: src,
		Events: d,
	}
}
