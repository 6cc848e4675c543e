package views

import (
	"fmt"
	"sort"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/list"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/deevus/congress-tui/internal/congress"
	"github.com/deevus/congress-tui/internal/events"
	"github.com/deevus/congress-tui/widgets"
	"github.com/dustin/go-humanize"
)

// AgreementViewParams holds configuration for creating an AgreementView.
type AgreementViewParams struct {
	Events *events.Dispatcher
}

// AgreementView ranks every other member by agreement with the focused member.
type AgreementView struct {
	events *events.Dispatcher
	state  *congress.State

	focus    congress.Member
	hasFocus bool
	rows     []agreementRow
	spark    *widgets.Sparkline
	list     list.Dynamic
}

type agreementRow struct {
	Member congress.Member
	congress.Agreement
}

const (
	agreementLabelWidth = 24
	agreementBarWidth   = 20
)

// NewAgreementView creates an AgreementView and subscribes it to selection changes.
func NewAgreementView(p AgreementViewParams) *AgreementView {
	av := &AgreementView{
		events: p.Events,
		spark:  widgets.NewSparkline(0, 100),
	}
	av.list.DrawCursor = true
	av.list.Builder = av.buildItem
	if av.events != nil {
		av.events.Subscribe(events.SelectionChanged, av.rebuild)
	}
	return av
}

// Bind attaches loaded state to the view.
func (av *AgreementView) Bind(st *congress.State) {
	av.state = st
	av.rebuild()
}

// Loaded reports whether state has been bound.
func (av *AgreementView) Loaded() bool {
	return av.state != nil
}

// Focus returns the member the view is ranked against.
func (av *AgreementView) Focus() (congress.Member, bool) {
	return av.focus, av.hasFocus
}

// ItemCount returns the number of ranked members.
func (av *AgreementView) ItemCount() int {
	return len(av.rows)
}

// Ranked returns member IDs from most to least agreement.
func (av *AgreementView) Ranked() []int {
	ids := make([]int, len(av.rows))
	for i, r := range av.rows {
		ids[i] = r.Member.ID
	}
	return ids
}

func (av *AgreementView) rebuild() {
	av.rows = nil
	av.hasFocus = false
	av.spark.SetValues(nil)
	if av.state == nil {
		return
	}
	id, ok := av.state.Focus()
	if !ok {
		return
	}
	focus, ok := av.state.Member(id)
	if !ok {
		return
	}
	av.focus, av.hasFocus = focus, true

	for _, m := range av.state.Members() {
		ag, ok := av.state.Agreement(id, m.ID)
		if !ok {
			continue
		}
		av.rows = append(av.rows, agreementRow{Member: m, Agreement: ag})
	}
	sort.SliceStable(av.rows, func(i, j int) bool {
		return av.rows[i].Percent > av.rows[j].Percent
	})

	// Distribution, least to most.
	dist := make([]float64, len(av.rows))
	for i, r := range av.rows {
		dist[len(av.rows)-1-i] = r.Percent
	}
	av.spark.SetValues(dist)
}

func (av *AgreementView) buildItem(i uint, cursor uint) vxfw.Widget {
	if int(i) >= len(av.rows) {
		return nil
	}
	r := av.rows[i]
	labelStyle := vaxis.Style{}
	if av.state.IsSelected(r.Member.ID) {
		labelStyle.Attribute |= vaxis.AttrBold
	}
	return &widgets.BarGauge{
		Label:      fmt.Sprintf("%4s %s", humanize.Ordinal(int(i)+1), r.Member.Name),
		LabelWidth: agreementLabelWidth,
		LabelStyle: labelStyle,
		Value:      r.Percent,
		Suffix:     fmt.Sprintf("%s shared votes", humanize.Comma(int64(r.Shared))),
		BarWidth:   agreementBarWidth,
	}
}

// Draw renders the focused member's agreement ranking.
func (av *AgreementView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	if av.state == nil {
		return drawLoadingState(ctx, av)
	}
	if !av.hasFocus {
		return drawMessage(ctx, av, "Select a member on the Members tab (space) to compare voting records.")
	}

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, av)

	title := richtext.New([]vaxis.Segment{
		{Text: " Agreement with ", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
		{Text: av.focus.Name, Style: vaxis.Style{Attribute: vaxis.AttrBold}},
		{Text: memberTag(av.focus), Style: vaxis.Style{Foreground: partyColor(av.focus.Party)}},
		{Text: fmt.Sprintf("  %d members compared", len(av.rows)), Style: vaxis.Style{Attribute: vaxis.AttrDim}},
	})
	titleSurf, err := title.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, titleSurf)

	row := 1
	if av.spark.Count() > 0 && ctx.Max.Height > 2 {
		sparkSurf, err := av.spark.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width - 1, Height: 1}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(1, row, sparkSurf)
		row++
	}

	remaining := int(ctx.Max.Height) - row
	if remaining > 0 {
		listCtx := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: uint16(remaining)})
		listSurf, err := av.list.Draw(listCtx)
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, row, listSurf)
	}
	return s, nil
}

// FocusCursor adds the member under the cursor to the selection, making it
// the new focus, and publishes SelectionChanged.
func (av *AgreementView) FocusCursor() bool {
	idx := int(av.list.Cursor())
	if av.state == nil || idx >= len(av.rows) {
		return false
	}
	id := av.rows[idx].Member.ID
	av.state.Deselect(id)
	av.state.Select(id)
	if av.events != nil {
		av.events.Publish(events.SelectionChanged)
	} else {
		av.rebuild()
	}
	return true
}

// HandleEvent refocuses on enter and delegates navigation to the list.
func (av *AgreementView) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	if key, ok := ev.(vaxis.Key); ok && key.Matches(vaxis.KeyEnter) {
		if av.FocusCursor() {
			return vxfw.ConsumeAndRedraw(), nil
		}
		return nil, nil
	}
	return av.list.HandleEvent(ev, phase)
}

// memberTag formats " (D-VT)", omitting missing parts.
func memberTag(m congress.Member) string {
	switch {
	case m.Party != "" && m.State != "":
		return fmt.Sprintf(" (%s-%s)", m.Party, m.State)
	case m.Party != "":
		return " (" + m.Party + ")"
	case m.State != "":
		return " (" + m.State + ")"
	}
	return ""
}
