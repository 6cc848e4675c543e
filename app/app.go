package app

import (
	"context"
	"fmt"
	"log"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/deevus/congress-tui/internal"
	"github.com/deevus/congress-tui/internal/congress"
	"github.com/deevus/congress-tui/internal/loader"
	"github.com/deevus/congress-tui/views"
	"github.com/deevus/congress-tui/widgets"
	"golang.org/x/sync/singleflight"
)

// PhaseChanged is posted by the loader goroutine on every phase transition.
type PhaseChanged struct {
	Phase loader.Phase
}

// Params holds configuration for creating an App.
type Params struct {
	Services     *internal.Services
	Title        string
	MetadataPath string
	RecordsPath  string
}

// App is the root vxfw widget for congress-tui.
type App struct {
	services     *internal.Services
	title        string
	metadataPath string
	recordsPath  string

	tabBar    *widgets.TabBar
	members   *views.MembersView
	agreement *views.AgreementView
	votes     *views.VotesView

	// Only touched on the event loop goroutine.
	state *congress.State
	phase loader.Phase
	err   error

	loads     singleflight.Group
	postEvent func(vaxis.Event)
}

// New creates the root App widget for the given services.
func New(p Params) *App {
	svc := p.Services
	if svc == nil {
		svc = internal.NewServices(nil, nil)
	}
	return &App{
		services:     svc,
		title:        p.Title,
		metadataPath: p.MetadataPath,
		recordsPath:  p.RecordsPath,
		tabBar:       widgets.NewTabBar([]string{"Members", "Agreement", "Votes"}),
		members:      views.NewMembersView(views.MembersViewParams{Events: svc.Events}),
		agreement:    views.NewAgreementView(views.AgreementViewParams{Events: svc.Events}),
		votes:        views.NewVotesView(views.VotesViewParams{Events: svc.Events}),
	}
}

// SetPostEvent sets the function used to post events to the vaxis event loop.
// Must be called before Load or Reload.
func (a *App) SetPostEvent(fn func(vaxis.Event)) {
	a.postEvent = fn
}

// ActiveTab returns the current tab index.
func (a *App) ActiveTab() int {
	return a.tabBar.Active()
}

// SetTab switches to the given tab index.
func (a *App) SetTab(i int) {
	a.tabBar.SetActive(i)
}

// Title returns the dataset title shown in the header.
func (a *App) Title() string {
	return a.title
}

// State returns the bound state, or nil before the first successful load.
func (a *App) State() *congress.State {
	return a.state
}

// Phase returns the phase of the most recent load.
func (a *App) Phase() loader.Phase {
	return a.phase
}

// Err returns the error from the most recent load, if it failed.
func (a *App) Err() error {
	return a.err
}

// Load runs one load sequence against a fresh State, posting PhaseChanged
// and then views.DataLoaded or views.LoadFailed. Concurrent calls share
// a single run.
func (a *App) Load(ctx context.Context) error {
	_, err, _ := a.loads.Do("load", func() (any, error) {
		if a.services.Source == nil {
			err := fmt.Errorf("no data source configured")
			a.post(views.LoadFailed{Err: err})
			return nil, err
		}
		l := loader.New(loader.Params{
			Source:       a.services.Source,
			MetadataPath: a.metadataPath,
			RecordsPath:  a.recordsPath,
			OnPhase:      func(p loader.Phase) { a.post(PhaseChanged{Phase: p}) },
			OnReady:      func(st *congress.State) { a.post(views.DataLoaded{State: st}) },
		})
		if err := l.Load(ctx); err != nil {
			a.post(views.LoadFailed{Err: err})
			return nil, err
		}
		return nil, nil
	})
	return err
}

// Reload starts Load on a new goroutine.
func (a *App) Reload(ctx context.Context) {
	go func() {
		_ = a.Load(ctx)
	}()
}

func (a *App) post(ev vaxis.Event) {
	if a.postEvent != nil {
		a.postEvent(ev)
	}
}

func (a *App) bind(st *congress.State) {
	a.state = st
	a.members.Bind(st)
	a.agreement.Bind(st)
	a.votes.Bind(st)
}

func (a *App) activeView() vxfw.Widget {
	switch a.tabBar.Active() {
	case 1:
		return a.agreement
	case 2:
		return a.votes
	default:
		return a.members
	}
}

// Status returns the header status: dataset title and load phase.
func (a *App) Status() string {
	switch {
	case a.err != nil && a.state != nil:
		return fmt.Sprintf("%s · reload failed", a.title)
	case a.err != nil:
		return fmt.Sprintf("%s · failed", a.title)
	}
	return fmt.Sprintf("%s · %s", a.title, a.phase)
}

// Draw renders the tab bar and active view.
func (a *App) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, a)

	// Tab bar (1 row)
	a.tabBar.Status = a.Status()
	tabCtx := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1})
	tabSurf, err := a.tabBar.Draw(tabCtx)
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, tabSurf)

	if ctx.Max.Height < 2 {
		return s, nil
	}
	viewCtx := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: ctx.Max.Height - 1})

	// Failed before anything was bound: show the error in place of the views.
	if a.err != nil && a.state == nil {
		msg := richtext.New([]vaxis.Segment{
			{Text: "Error loading data: ", Style: vaxis.Style{Foreground: vaxis.IndexColor(1), Attribute: vaxis.AttrBold}},
			{Text: a.err.Error()},
			{Text: "\n\nPress r to retry or q to quit.", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
		})
		msgSurf, err := msg.Draw(viewCtx)
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, 1, msgSurf)
		return s, nil
	}

	viewSurf, err := a.activeView().Draw(viewCtx)
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 1, viewSurf)

	return s, nil
}

// CaptureEvent handles global keybindings before views process them.
func (a *App) CaptureEvent(ev vaxis.Event) (vxfw.Command, error) {
	switch ev := ev.(type) {
	case vaxis.Key:
		switch {
		case ev.Matches('q'):
			return vxfw.QuitCmd{}, nil
		case ev.Matches('r'):
			a.Reload(context.Background())
		case ev.Matches('1'):
			a.tabBar.SetActive(0)
		case ev.Matches('2'):
			a.tabBar.SetActive(1)
		case ev.Matches('3'):
			a.tabBar.SetActive(2)
		case ev.Matches(vaxis.KeyTab):
			a.tabBar.Next()
		case ev.Matches(vaxis.KeyTab, vaxis.ModShift):
			a.tabBar.Prev()
		default:
			return nil, nil
		}
		return vxfw.ConsumeAndRedraw(), nil
	}
	return nil, nil
}

// HandleEvent delegates to the active view, and handles custom events.
func (a *App) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	switch ev := ev.(type) {
	case vxfw.Init:
		a.Reload(context.Background())
		return nil, nil
	case PhaseChanged:
		a.phase = ev.Phase
		if ev.Phase == loader.LoadingMetadata {
			// A new attempt supersedes the previous failure.
			a.err = nil
		}
		return vxfw.RedrawCmd{}, nil
	case views.DataLoaded:
		a.err = nil
		a.phase = loader.Ready
		a.bind(ev.State)
		return vxfw.RedrawCmd{}, nil
	case views.LoadFailed:
		log.Printf("error loading %s: %v", a.title, ev.Err)
		a.err = ev.Err
		a.phase = loader.Failed
		return vxfw.RedrawCmd{}, nil
	default:
		type handler interface {
			HandleEvent(vaxis.Event, vxfw.EventPhase) (vxfw.Command, error)
		}
		if h, ok := a.activeView().(handler); ok {
			return h.HandleEvent(ev, phase)
		}
	}
	return nil, nil
}
