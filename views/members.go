package views

import (
	"fmt"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/list"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/deevus/congress-tui/internal/congress"
	"github.com/deevus/congress-tui/internal/events"
	"github.com/dustin/go-humanize"
)

// MembersViewParams holds configuration for creating a MembersView.
type MembersViewParams struct {
	Events *events.Dispatcher
}

// MembersView lists members and lets the user change the selection.
type MembersView struct {
	events *events.Dispatcher
	state  *congress.State
	rows   []memberRow
	list   list.Dynamic
}

type memberRow struct {
	ID        int
	Name      string
	Party     string
	State     string
	Votes     int
	Selected  bool
	Focused   bool
	Agreement string
}

// NewMembersView creates a MembersView and subscribes it to selection changes.
func NewMembersView(p MembersViewParams) *MembersView {
	mv := &MembersView{events: p.Events}
	mv.list.DrawCursor = true
	mv.list.Builder = mv.buildItem
	if mv.events != nil {
		mv.events.Subscribe(events.SelectionChanged, mv.rebuild)
	}
	return mv
}

// Bind attaches loaded state to the view.
func (mv *MembersView) Bind(st *congress.State) {
	mv.state = st
	mv.rebuild()
}

// Loaded reports whether state has been bound.
func (mv *MembersView) Loaded() bool {
	return mv.state != nil
}

// ItemCount returns the number of member rows.
func (mv *MembersView) ItemCount() int {
	return len(mv.rows)
}

// RowIDs returns the member IDs in display order.
func (mv *MembersView) RowIDs() []int {
	ids := make([]int, len(mv.rows))
	for i, r := range mv.rows {
		ids[i] = r.ID
	}
	return ids
}

// AgreementText returns the agreement column shown for member id.
func (mv *MembersView) AgreementText(id int) string {
	for _, r := range mv.rows {
		if r.ID == id {
			return r.Agreement
		}
	}
	return ""
}

func (mv *MembersView) rebuild() {
	if mv.state == nil {
		mv.rows = nil
		return
	}
	focus, hasFocus := mv.state.Focus()
	members := mv.state.Members()
	rows := make([]memberRow, 0, len(members))
	for _, m := range members {
		row := memberRow{
			ID:        m.ID,
			Name:      m.Name,
			Party:     m.Party,
			State:     m.State,
			Votes:     mv.state.DecisiveVotes(m.ID),
			Selected:  mv.state.IsSelected(m.ID),
			Focused:   hasFocus && focus == m.ID,
			Agreement: "-",
		}
		if hasFocus {
			if ag, ok := mv.state.Agreement(focus, m.ID); ok {
				row.Agreement = fmt.Sprintf("%.1f%%", ag.Percent)
			}
		}
		rows = append(rows, row)
	}
	mv.rows = rows
}

// SelectedMember returns the member under the cursor.
func (mv *MembersView) SelectedMember() (congress.Member, bool) {
	idx := int(mv.list.Cursor())
	if mv.state == nil || idx >= len(mv.rows) {
		return congress.Member{}, false
	}
	return mv.state.Member(mv.rows[idx].ID)
}

func partyColor(party string) vaxis.Color {
	switch party {
	case "D":
		return vaxis.IndexColor(4) // blue
	case "R":
		return vaxis.IndexColor(1) // red
	default:
		return vaxis.IndexColor(5) // magenta
	}
}

func (mv *MembersView) buildItem(i uint, cursor uint) vxfw.Widget {
	if int(i) >= len(mv.rows) {
		return nil
	}
	r := mv.rows[i]

	mark := "  "
	nameStyle := vaxis.Style{}
	if r.Selected {
		mark = "● "
		nameStyle.Attribute |= vaxis.AttrBold
	}
	if r.Focused {
		mark = "◆ "
	}

	return richtext.New([]vaxis.Segment{
		{Text: mark, Style: vaxis.Style{Foreground: vaxis.IndexColor(6)}},
		{Text: fmt.Sprintf("%-24s", r.Name), Style: nameStyle},
		{Text: fmt.Sprintf("%-6s", r.Party), Style: vaxis.Style{Foreground: partyColor(r.Party)}},
		{Text: fmt.Sprintf("%-6s", r.State)},
		{Text: fmt.Sprintf("%8s", humanize.Comma(int64(r.Votes)))},
		{Text: fmt.Sprintf("%10s", r.Agreement)},
	})
}

// Draw renders the member list, or a loading state if data hasn't arrived.
func (mv *MembersView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	if mv.state == nil {
		return drawLoadingState(ctx, mv)
	}

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, mv)
	heading := fmt.Sprintf("  %-24s%-6s%-6s%8s%10s", "NAME", "PARTY", "STATE", "VOTES", "AGREE")
	if err := drawHeader(ctx, &s, heading); err != nil {
		return vxfw.Surface{}, err
	}

	listCtx := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: ctx.Max.Height - 1})
	listSurf, err := mv.list.Draw(listCtx)
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 1, listSurf)

	return s, nil
}

// ToggleCursor flips the selection of the member under the cursor and
// publishes SelectionChanged.
func (mv *MembersView) ToggleCursor() bool {
	m, ok := mv.SelectedMember()
	if !ok {
		return false
	}
	mv.state.Toggle(m.ID)
	mv.publish()
	return true
}

// ClearSelection deselects all members and publishes SelectionChanged.
func (mv *MembersView) ClearSelection() {
	if mv.state == nil {
		return
	}
	mv.state.ClearSelection()
	mv.publish()
}

func (mv *MembersView) publish() {
	if mv.events != nil {
		mv.events.Publish(events.SelectionChanged)
		return
	}
	mv.rebuild()
}

// HandleEvent toggles selection on space/enter, clears it on 'c', and
// delegates navigation to the list widget.
func (mv *MembersView) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	if key, ok := ev.(vaxis.Key); ok && mv.state != nil {
		switch {
		case key.Matches(' '), key.Matches(vaxis.KeyEnter):
			if mv.ToggleCursor() {
				return vxfw.ConsumeAndRedraw(), nil
			}
			return nil, nil
		case key.Matches('c'):
			mv.ClearSelection()
			return vxfw.ConsumeAndRedraw(), nil
		}
	}
	return mv.list.HandleEvent(ev, phase)
}
