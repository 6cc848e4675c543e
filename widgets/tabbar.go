package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// TabBar is a horizontal tab navigation widget with an optional
// right-aligned status string.
type TabBar struct {
	labels []string
	active int

	// Status is drawn dimmed at the right edge, e.g. "114th Senate · ready".
	Status string
}

// NewTabBar creates a TabBar with the given labels. Active defaults to 0.
func NewTabBar(labels []string) *TabBar {
	return &TabBar{labels: labels}
}

// Active returns the currently active tab index.
func (tb *TabBar) Active() int {
	return tb.active
}

// Len returns the number of tabs.
func (tb *TabBar) Len() int {
	return len(tb.labels)
}

// SetActive sets the active tab index. Out-of-range values are ignored.
func (tb *TabBar) SetActive(i int) {
	if i >= 0 && i < len(tb.labels) {
		tb.active = i
	}
}

// Next advances to the next tab, wrapping around.
func (tb *TabBar) Next() {
	tb.active = (tb.active + 1) % len(tb.labels)
}

// Prev moves to the previous tab, wrapping around.
func (tb *TabBar) Prev() {
	tb.active = (tb.active - 1 + len(tb.labels)) % len(tb.labels)
}

// Draw renders the tabs as " 1 Members  |  2 Agreement  |  3 Votes " with the
// active tab in reverse video, and the status right-aligned if it fits.
func (tb *TabBar) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, tb)

	col := uint16(0)
	put := func(text string, style vaxis.Style) {
		for _, ch := range ctx.Characters(text) {
			if col+uint16(ch.Width) > ctx.Max.Width {
				return
			}
			s.WriteCell(col, 0, vaxis.Cell{Character: ch, Style: style})
			col += uint16(ch.Width)
		}
	}

	for i, label := range tb.labels {
		if i > 0 {
			put(" | ", vaxis.Style{})
		}
		style := vaxis.Style{}
		if i == tb.active {
			style.Attribute |= vaxis.AttrReverse
		}
		put(" "+string(rune('1'+i))+" "+label+" ", style)
	}

	if tb.Status == "" {
		return s, nil
	}
	status := ctx.Characters(tb.Status + " ")
	width := 0
	for _, ch := range status {
		width += ch.Width
	}
	// Leave at least one blank column between tabs and status.
	if int(col)+1+width > int(ctx.Max.Width) {
		return s, nil
	}
	col = ctx.Max.Width - uint16(width)
	for _, ch := range status {
		s.WriteCell(col, 0, vaxis.Cell{Character: ch, Style: vaxis.Style{Attribute: vaxis.AttrDim}})
		col += uint16(ch.Width)
	}
	return s, nil
}
