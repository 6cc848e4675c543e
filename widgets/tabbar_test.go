package widgets_test

import (
	"strings"
	"testing"

	"github.com/deevus/congress-tui/widgets"
)

func TestTabBar_Labels(t *testing.T) {
	tb := widgets.NewTabBar([]string{"Members", "Agreement", "Votes"})
	if tb.Active() != 0 {
		t.Errorf("expected initial active=0, got %d", tb.Active())
	}
	if tb.Len() != 3 {
		t.Errorf("expected 3 tabs, got %d", tb.Len())
	}
}

func TestTabBar_Next(t *testing.T) {
	tb := widgets.NewTabBar([]string{"A", "B", "C"})
	tb.Next()
	if tb.Active() != 1 {
		t.Errorf("expected active=1, got %d", tb.Active())
	}
	tb.Next()
	tb.Next()
	if tb.Active() != 0 {
		t.Errorf("expected active=0 after wrap, got %d", tb.Active())
	}
}

func TestTabBar_Prev(t *testing.T) {
	tb := widgets.NewTabBar([]string{"A", "B", "C"})
	tb.Prev()
	if tb.Active() != 2 {
		t.Errorf("expected active=2 after backward wrap, got %d", tb.Active())
	}
}

func TestTabBar_SetActive_OutOfRange(t *testing.T) {
	tb := widgets.NewTabBar([]string{"A", "B", "C"})
	tb.SetActive(2)
	tb.SetActive(5)
	tb.SetActive(-1)
	if tb.Active() != 2 {
		t.Errorf("expected out-of-range values ignored, got %d", tb.Active())
	}
}

func TestTabBar_Draw(t *testing.T) {
	tb := widgets.NewTabBar([]string{"Members", "Agreement", "Votes"})
	s, err := tb.Draw(testDrawContext(80, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size.Height != 1 || s.Size.Width != 80 {
		t.Errorf("expected 80x1 surface, got %dx%d", s.Size.Width, s.Size.Height)
	}
	if !strings.HasPrefix(rowText(s, 0), " 1 Members  |  2 Agreement  |  3 Votes ") {
		t.Errorf("unexpected tab row %q", rowText(s, 0))
	}
}

func TestTabBar_Draw_Status(t *testing.T) {
	tb := widgets.NewTabBar([]string{"A"})
	tb.Status = "114th Senate"
	s, err := tb.Draw(testDrawContext(40, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(rowText(s, 0), "114th Senate ") {
		t.Errorf("expected right-aligned status, got %q", rowText(s, 0))
	}
}

func TestTabBar_Draw_StatusDroppedWhenNarrow(t *testing.T) {
	tb := widgets.NewTabBar([]string{"Members", "Agreement"})
	tb.Status = "a very long status line"
	s, err := tb.Draw(testDrawContext(30, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(rowText(s, 0), "status") {
		t.Errorf("expected status omitted when it does not fit, got %q", rowText(s, 0))
	}
}
