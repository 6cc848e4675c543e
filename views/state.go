package views

import "github.com/deevus/congress-tui/internal/congress"

// DataLoaded is a custom vaxis event posted when a load sequence completes.
// It is sent from the loader goroutine via PostEvent; the State is not
// touched by that goroutine afterwards.
type DataLoaded struct {
	State *congress.State
}

// LoadFailed is posted when a load sequence stops at a failed stage.
type LoadFailed struct {
	Err error
}
