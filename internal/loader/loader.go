package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deevus/congress-tui/internal/congress"
	"github.com/deevus/congress-tui/internal/source"
)

// Default resource paths, relative to the source root.
const (
	DefaultMetadataPath = "Senate114Metadata.json"
	DefaultRecordsPath  = "SenateRecord114.json"
)

// Phase is the loader's position in its load sequence.
type Phase int

const (
	NotStarted Phase = iota
	LoadingMetadata
	LoadingRecords
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not started"
	case LoadingMetadata:
		return "loading metadata"
	case LoadingRecords:
		return "loading records"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Resource names which of the two resources an error refers to.
type Resource int

const (
	Metadata Resource = iota
	Records
)

func (r Resource) String() string {
	if r == Metadata {
		return "metadata"
	}
	return "records"
}

// ErrAlreadyStarted is returned by Load on any call after the first.
var ErrAlreadyStarted = errors.New("load already started")

// FetchError reports that a resource could not be retrieved.
type FetchError struct {
	Resource Resource
	Path     string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s %s: %v", e.Resource, e.Path, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports that a resource was retrieved but is not valid JSON
// of the expected shape.
type ParseError struct {
	Resource Resource
	Path     string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s %s: %v", e.Resource, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Aggregator seeds derived state once both resources are loaded.
// *congress.State implements it.
type Aggregator interface {
	ClearMembers()
	ComputeAgreement(ctx context.Context) error
}

// Params holds configuration for creating a Loader.
type Params struct {
	Source       source.Source
	MetadataPath string
	RecordsPath  string
	State        *congress.State
	// Aggregator defaults to State.
	Aggregator Aggregator
	// OnReady is called with the populated state once both resources are
	// loaded and the derived aggregates are computed.
	OnReady func(*congress.State)
	// OnPhase is called on every phase transition, from the goroutine
	// running Load.
	OnPhase func(Phase)
}

// Loader runs the metadata-then-records load sequence into a State.
type Loader struct {
	src          source.Source
	metadataPath string
	recordsPath  string
	state        *congress.State
	agg          Aggregator
	onReady      func(*congress.State)
	onPhase      func(Phase)

	phase Phase
	err   error
}

// New creates a Loader. Empty paths fall back to the defaults and a nil
// State is replaced by a fresh one.
func New(p Params) *Loader {
	l := &Loader{
		src:          p.Source,
		metadataPath: p.MetadataPath,
		recordsPath:  p.RecordsPath,
		state:        p.State,
		agg:          p.Aggregator,
		onReady:      p.OnReady,
		onPhase:      p.OnPhase,
	}
	if l.metadataPath == "" {
		l.metadataPath = DefaultMetadataPath
	}
	if l.recordsPath == "" {
		l.recordsPath = DefaultRecordsPath
	}
	if l.state == nil {
		l.state = congress.NewState()
	}
	if l.agg == nil {
		l.agg = l.state
	}
	return l
}

// Phase returns the current phase.
func (l *Loader) Phase() Phase {
	return l.phase
}

// Err returns the error that moved the loader to Failed, if any.
func (l *Loader) Err() error {
	return l.err
}

// State returns the state the loader fills.
func (l *Loader) State() *congress.State {
	return l.state
}

// Load fetches metadata, then records, then seeds derived state. Records
// are never fetched unless metadata loaded, and the derived steps never
// run unless records loaded. Load may only be called once.
func (l *Loader) Load(ctx context.Context) error {
	if l.phase != NotStarted {
		return ErrAlreadyStarted
	}

	l.setPhase(LoadingMetadata)
	var md congress.Metadata
	if err := l.fetch(ctx, Metadata, l.metadataPath, &md); err != nil {
		return l.fail(err)
	}
	l.state.MetaData = &md

	l.setPhase(LoadingRecords)
	var rec congress.Records
	if err := l.fetch(ctx, Records, l.recordsPath, &rec); err != nil {
		return l.fail(err)
	}
	l.state.Data = &rec

	l.agg.ClearMembers()
	if err := l.agg.ComputeAgreement(ctx); err != nil {
		return l.fail(fmt.Errorf("computing agreement: %w", err))
	}

	l.setPhase(Ready)
	if l.onReady != nil {
		l.onReady(l.state)
	}
	return nil
}

func (l *Loader) fetch(ctx context.Context, res Resource, path string, v any) error {
	b, err := l.src.Fetch(ctx, path)
	if err != nil {
		return &FetchError{Resource: res, Path: path, Err: err}
	}
	if err := json.Unmarshal(b, v); err != nil {
		return &ParseError{Resource: res, Path: path, Err: err}
	}
	return nil
}

func (l *Loader) setPhase(p Phase) {
	l.phase = p
	if l.onPhase != nil {
		l.onPhase(p)
	}
}

func (l *Loader) fail(err error) error {
	l.err = err
	l.setPhase(Failed)
	return err
}
