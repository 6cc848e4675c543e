package views

import (
	"fmt"
	"strings"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/deevus/congress-tui/internal/congress"
	"github.com/deevus/congress-tui/internal/events"
	"github.com/deevus/congress-tui/widgets"
	"github.com/dustin/go-humanize"
)

// VotesViewParams holds configuration for creating a VotesView.
type VotesViewParams struct {
	Events *events.Dispatcher
}

// VotesView compares the selected members' votes bill by bill.
type VotesView struct {
	events *events.Dispatcher
	state  *congress.State
	table  widgets.Table
	height int
}

const (
	voteBillWidth   = 14
	voteMemberWidth = 12
)

// NewVotesView creates a VotesView and subscribes it to selection changes.
func NewVotesView(p VotesViewParams) *VotesView {
	vv := &VotesView{events: p.Events}
	vv.table.Gap = 2
	vv.table.CellStyle = voteStyle
	if vv.events != nil {
		vv.events.Subscribe(events.SelectionChanged, vv.rebuild)
	}
	return vv
}

// Bind attaches loaded state to the view.
func (vv *VotesView) Bind(st *congress.State) {
	vv.state = st
	vv.rebuild()
}

// Loaded reports whether state has been bound.
func (vv *VotesView) Loaded() bool {
	return vv.state != nil
}

// Columns returns the table header: "BILL" followed by one column per
// selected member.
func (vv *VotesView) Columns() []string {
	return vv.table.Header
}

// Rows returns the table body.
func (vv *VotesView) Rows() [][]string {
	return vv.table.Rows
}

// Offset returns the index of the first visible row.
func (vv *VotesView) Offset() int {
	return vv.table.Offset
}

func (vv *VotesView) rebuild() {
	vv.table.Header = nil
	vv.table.Rows = nil
	vv.table.Columns = nil
	vv.table.Offset = 0
	if vv.state == nil {
		return
	}
	selected := vv.state.Selected()
	if len(selected) == 0 {
		return
	}

	header := []string{"BILL"}
	cols := []widgets.TableColumn{{Width: voteBillWidth}}
	idx := make(map[int]int, len(selected))
	for i, id := range selected {
		m, _ := vv.state.Member(id)
		header = append(header, shortName(m.Name))
		cols = append(cols, widgets.TableColumn{Width: voteMemberWidth})
		idx[id] = i + 1
	}

	// Bills in order of first appearance.
	var bills []string
	byBill := make(map[string][]string)
	if vv.state.Data != nil {
		for _, v := range vv.state.Data.Votes {
			col, ok := idx[v.MemberID]
			if !ok {
				continue
			}
			row, seen := byBill[v.Bill]
			if !seen {
				row = make([]string, len(header))
				row[0] = v.Bill
				bills = append(bills, v.Bill)
			}
			row[col] = v.Vote
			byBill[v.Bill] = row
		}
	}

	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, byBill[b])
	}
	vv.table.Header = header
	vv.table.Columns = cols
	vv.table.Rows = rows
}

// shortName returns the last word of a name, e.g. "Bernard Sanders" -> "Sanders".
func shortName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}

func voteStyle(_, col int, text string) vaxis.Style {
	if col == 0 {
		return vaxis.Style{}
	}
	switch congress.Decide(text) {
	case congress.Yea:
		return vaxis.Style{Foreground: vaxis.IndexColor(2)}
	case congress.Nay:
		return vaxis.Style{Foreground: vaxis.IndexColor(1)}
	default:
		return vaxis.Style{Attribute: vaxis.AttrDim}
	}
}

// Scroll moves the first visible row by delta, clamped to the table.
func (vv *VotesView) Scroll(delta int) {
	n := len(vv.table.Rows)
	// Before the first Draw the height is unknown; keep the last row reachable.
	maxOffset := min(n-vv.table.VisibleRows(vv.height), n-1)
	vv.table.Offset = max(0, min(vv.table.Offset+delta, maxOffset))
}

// Draw renders the vote comparison table.
func (vv *VotesView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	if vv.state == nil {
		return drawLoadingState(ctx, vv)
	}
	if len(vv.table.Header) == 0 {
		return drawMessage(ctx, vv, "Select members on the Members tab (space) to compare their votes.")
	}

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, vv)

	summary := richtext.New([]vaxis.Segment{
		{Text: fmt.Sprintf(" %s bills, %d members", humanize.Comma(int64(len(vv.table.Rows))), len(vv.table.Header)-1),
			Style: vaxis.Style{Attribute: vaxis.AttrDim}},
	})
	summarySurf, err := summary.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, summarySurf)

	vv.height = max(int(ctx.Max.Height)-1, 0)
	tableSurf, err := vv.table.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: uint16(vv.height)}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 1, tableSurf)
	return s, nil
}

// HandleEvent scrolls the table with j/k, arrows and page keys.
func (vv *VotesView) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	key, ok := ev.(vaxis.Key)
	if !ok {
		return nil, nil
	}
	page := max(vv.table.VisibleRows(vv.height), 1)
	switch {
	case key.Matches('j'), key.Matches(vaxis.KeyDown):
		vv.Scroll(1)
	case key.Matches('k'), key.Matches(vaxis.KeyUp):
		vv.Scroll(-1)
	case key.Matches(vaxis.KeyPgDown):
		vv.Scroll(page)
	case key.Matches(vaxis.KeyPgUp):
		vv.Scroll(-page)
	case key.Matches('g'), key.Matches(vaxis.KeyHome):
		vv.Scroll(-len(vv.table.Rows))
	case key.Matches(vaxis.KeyEnd):
		vv.Scroll(len(vv.table.Rows))
	default:
		return nil, nil
	}
	return vxfw.ConsumeAndRedraw(), nil
}
