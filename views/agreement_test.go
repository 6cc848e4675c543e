package views_test

import (
	"testing"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/deevus/congress-tui/internal/events"
	"github.com/deevus/congress-tui/views"
)

func TestAgreementView_NoFocus(t *testing.T) {
	av := views.NewAgreementView(views.AgreementViewParams{Events: events.NewDispatcher()})
	if _, err := av.Draw(testDrawContext(80, 24)); err != nil {
		t.Fatalf("unexpected error drawing before bind: %v", err)
	}

	av.Bind(newTestState())
	if !av.Loaded() {
		t.Error("expected Loaded()=true after Bind()")
	}
	if _, ok := av.Focus(); ok {
		t.Error("expected no focus with empty selection")
	}
	if av.ItemCount() != 0 {
		t.Errorf("expected 0 rows without focus, got %d", av.ItemCount())
	}
	if _, err := av.Draw(testDrawContext(80, 24)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAgreementView_RanksOnSelectionChanged(t *testing.T) {
	d := events.NewDispatcher()
	av := views.NewAgreementView(views.AgreementViewParams{Events: d})
	st := newTestState()
	av.Bind(st)

	st.Select(1)
	d.Publish(events.SelectionChanged)

	m, ok := av.Focus()
	if !ok || m.ID != 1 {
		t.Fatalf("expected focus on member 1, got %+v (ok=%v)", m, ok)
	}
	got := av.Ranked()
	want := []int{3, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("expected ranking %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rank %d: expected %d, got %d", i, want[i], got[i])
		}
	}

	// Focus follows the most recent selection.
	st.Select(2)
	d.Publish(events.SelectionChanged)
	if got := av.Ranked(); len(got) == 0 || got[0] != 4 {
		t.Errorf("expected member 4 ranked first for member 2, got %v", got)
	}
}

func TestAgreementView_Draw(t *testing.T) {
	d := events.NewDispatcher()
	av := views.NewAgreementView(views.AgreementViewParams{Events: d})
	st := newTestState()
	av.Bind(st)
	st.Select(4)
	d.Publish(events.SelectionChanged)

	s, err := av.Draw(testDrawContext(100, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size.Width != 100 || s.Size.Height != 20 {
		t.Errorf("expected 100x20 surface, got %dx%d", s.Size.Width, s.Size.Height)
	}

	// Tiny terminals should not error.
	if _, err := av.Draw(testDrawContext(20, 2)); err != nil {
		t.Fatalf("unexpected error on small draw: %v", err)
	}
}

func TestAgreementView_Enter_Refocuses(t *testing.T) {
	d := events.NewDispatcher()
	av := views.NewAgreementView(views.AgreementViewParams{Events: d})
	st := newTestState()
	av.Bind(st)
	st.Select(1)
	d.Publish(events.SelectionChanged)

	published := 0
	d.Subscribe(events.SelectionChanged, func() { published++ })

	cmd, err := av.HandleEvent(vaxis.Key{Keycode: vaxis.KeyEnter}, vxfw.EventPhase(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd == nil {
		t.Error("expected redraw command")
	}
	if published != 1 {
		t.Errorf("expected 1 SelectionChanged, got %d", published)
	}
	// Top-ranked member for 1 is 3.
	if m, _ := av.Focus(); m.ID != 3 {
		t.Errorf("expected focus moved to member 3, got %d", m.ID)
	}
	if !st.IsSelected(1) {
		t.Error("expected previous selection kept")
	}
}

func TestAgreementView_Enter_NoRows(t *testing.T) {
	av := views.NewAgreementView(views.AgreementViewParams{Events: events.NewDispatcher()})
	av.Bind(newTestState())
	cmd, err := av.HandleEvent(vaxis.Key{Keycode: vaxis.KeyEnter}, vxfw.EventPhase(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd != nil {
		t.Errorf("expected nil command with nothing to focus, got %T", cmd)
	}
}

func TestAgreementView_Enter_RefocusesCursorRow(t *testing.T) {
	d := events.NewDispatcher()
	av := views.NewAgreementView(views.AgreementViewParams{Events: d})
	st := newTestState()
	av.Bind(st)
	st.Select(1)
	d.Publish(events.SelectionChanged)
	if _, err := av.Draw(testDrawContext(80, 24)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	published := 0
	d.Subscribe(events.SelectionChanged, func() { published++ })

	// Ranking for 1 is [3, 2, 4]; move to the second row.
	if _, err := av.HandleEvent(vaxis.Key{Keycode: vaxis.KeyDown}, vxfw.EventPhase(0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := av.HandleEvent(vaxis.Key{Keycode: vaxis.KeyEnter}, vxfw.EventPhase(0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if published != 1 {
		t.Errorf("expected 1 SelectionChanged, got %d", published)
	}
	m, ok := av.Focus()
	if !ok || m.ID != 2 {
		t.Fatalf("expected focus on member 2, got %+v (ok=%v)", m, ok)
	}
	if got := av.Ranked(); len(got) == 0 || got[0] != 4 {
		t.Errorf("expected ranking rebuilt for member 2, got %v", got)
	}
}
