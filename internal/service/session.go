package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync/atomic"
	"time"

	"glossgraph/internal/controller"
	"glossgraph/internal/domain"
	"glossgraph/internal/layout"
	"glossgraph/internal/logger"
	"glossgraph/internal/render"
	"glossgraph/internal/store"

	"go.uber.org/zap"
)

// ErrClosed is returned once the session loop has stopped
var ErrClosed = errors.New("session closed")

// Recorder receives session metrics; metrics.Collector implements it
type Recorder interface {
	ObserveLoad(err error, nodes, edges, dropped int)
	ObserveTick(alpha float64)
	ObserveInteraction(kind string, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveLoad(error, int, int, int) {}
func (nopRecorder) ObserveTick(float64) {}
func (nopRecorder) ObserveInteraction(string, error) {}

// Options configures a Session
type Options struct {
	TickInterval time.Duration // default 16ms
	LoadTimeout  time.Duration // default 15s
	Layout       layout.Options
	Palette      render.Palette
	Locale       controller.Locale
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = 16 * time.Millisecond
	}
	if o.LoadTimeout <= 0 {
		o.LoadTimeout = 15 * time.Second
	}
	if o.Palette == (render.Palette{}) {
		o.Palette = render.DefaultPalette()
	}
	if o.Locale.Name == "" {
		o.Locale, _ = controller.LocaleFor(controller.DefaultLocale)
	}
	return o
}

// LoadState is the lifecycle of the graph in the session
type LoadState string

const (
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateError   LoadState = "error"
)

// Status describes the last load
type Status struct {
	State       LoadState  `json:"state"`
	Source      string     `json:"source"`
	Error       string     `json:"error,omitempty"`
	Nodes       int        `json:"nodes"`
	Edges       int        `json:"edges"`
	Dropped     int        `json:"dropped"`
	Fingerprint string     `json:"fingerprint,omitempty"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
}

// View is everything a freshly connected page needs to draw itself
type View struct {
	Status  Status            `json:"status"`
	Scene   *render.Scene     `json:"scene,omitempty"`
	State   controller.State  `json:"state"`
	Locale  controller.Locale `json:"locale"`
	Alpha   float64           `json:"alpha"`
	Target  float64           `json:"alpha_target"`
	Running bool              `json:"running"`
}

// Session serializes every tick and user event on one goroutine
type Session struct {
	store  *store.Store
	bus    *EventBus
	rec    Recorder
	logger *zap.Logger
	opts   Options

	work    chan func()
	done    chan struct{}
	fetches atomic.Uint64

	// Owned by the loop goroutine
	sim      *layout.Simulation
	renderer *render.Renderer
	ctrl     *controller.Controller
	view     *sessionView
	status   Status
	applied  uint64
}

// NewSession creates a session over st. rec may be nil.
func NewSession(st *store.Store, bus *EventBus, rec Recorder, opts Options, log *zap.Logger) *Session {
	if rec == nil {
		rec = nopRecorder{}
	}
	if bus == nil {
		bus = NewEventBus()
	}

	s := &Session{
		store:  st,
		bus:    bus,
		rec:    rec,
		logger: logger.OrNop(log),
		opts:   opts.withDefaults(),
		work:   make(chan func()),
		done:   make(chan struct{}),
		status: Status{State: StateLoading, Source: st.Source().Describe()},
	}
	s.view = &sessionView{session: s}
	return s
}

// Bus returns the event bus the session publishes on
func (s *Session) Bus() *EventBus {
	return s.bus
}

// Run starts the initial load in the background and processes work and
// ticks until ctx is done. The tick timer only runs while the simulation is
// active; a drag that reheats it starts the timer again.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	go func() {
		if err := s.Reload(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrClosed) {
			s.logger.Warn("Initial graph load failed; waiting for reload", zap.Error(err))
		}
	}()

	var ticker *time.Ticker
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		ticker = s.pace(ticker)
		var tickC <-chan time.Time
		if ticker != nil {
			tickC = ticker.C
		}

		select {
		case fn := <-s.work:
			fn()
		case <-tickC:
			s.sim.Step()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// pace returns a running ticker while the simulation is active and nil
// once it has cooled
func (s *Session) pace(t *time.Ticker) *time.Ticker {
	active := s.sim != nil && s.sim.Active()
	switch {
	case active && t == nil:
		return time.NewTicker(s.opts.TickInterval)
	case !active && t != nil:
		t.Stop()
		return nil
	}
	return t
}

// do runs fn on the loop goroutine and waits for its result
func (s *Session) do(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	job := func() { errc <- fn() }

	select {
	case s.work <- job:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reload fetches the graph on the calling goroutine and installs it on the
// loop. On failure the previous graph stays on screen. Fetches may overlap;
// a result that finishes after a later fetch was applied is discarded.
func (s *Session) Reload(ctx context.Context) error {
	seq := s.fetches.Add(1)
	loadCtx, cancel := context.WithTimeout(ctx, s.opts.LoadTimeout)
	defer cancel()

	res, err := s.store.Prepare(loadCtx)
	applyErr := s.do(ctx, func() error {
		if seq < s.applied {
			s.logger.Debug("Discarding stale graph fetch",
				zap.Uint64("fetch", seq), zap.Uint64("applied", s.applied))
			return nil
		}
		s.applied = seq
		s.apply(res, err)
		return nil
	})
	if applyErr != nil {
		return applyErr
	}
	return err
}

func (s *Session) apply(res *store.Resolved, err error) {
	if err != nil {
		s.rec.ObserveLoad(err, 0, 0, 0)
		s.status.Error = err.Error()
		if !s.store.Loaded() {
			s.status.State = StateError
		}
		s.publishStatus()
		return
	}

	nodes, edges := len(res.Nodes), len(res.Edges)
	s.rec.ObserveLoad(nil, nodes, edges, len(res.Dropped))

	now := time.Now().UTC()
	if s.store.Loaded() && res.Fingerprint() == s.store.Fingerprint() {
		s.logger.Debug("Graph unchanged, keeping layout")
		s.status.State = StateReady
		s.status.Error = ""
		s.status.LoadedAt = &now
		s.publishStatus()
		return
	}

	layoutOpts := s.opts.Layout
	if s.sim != nil {
		layoutOpts.Seed = s.sim.Positions()
	}

	s.store.Install(res)
	s.sim = layout.NewSimulation(s.store.Nodes(), s.store.Edges(), layoutOpts)

	opts := s.sim.Options()
	s.renderer = render.New(s.store.Nodes(), s.store.Edges(), int(opts.Width), int(opts.Height), s.opts.Palette)
	s.renderer.Attach(busSurface{bus: s.bus})

	sim, renderer := s.sim, s.renderer
	sim.OnTick(func([]*domain.Node) {
		renderer.SyncPositions()
		s.rec.ObserveTick(sim.Alpha())
	})

	if s.ctrl == nil {
		s.ctrl = controller.New(s.store, sim, s.opts.Palette, s.opts.Locale, s.logger)
		s.ctrl.Bind(s.view)
	} else {
		s.ctrl.Reload(sim)
	}

	s.status = Status{
		State:       StateReady,
		Source:      s.store.Source().Describe(),
		Nodes:       nodes,
		Edges:       edges,
		Dropped:     len(res.Dropped),
		Fingerprint: strconv.FormatUint(s.store.Fingerprint(), 16),
		LoadedAt:    &now,
	}

	scene := renderer.Scene()
	s.bus.Publish(Event{Type: EventReloaded, Payload: scene})
	s.publishStatus()
}

func (s *Session) publishStatus() {
	s.bus.Publish(Event{Type: EventStatus, Payload: s.status})
}

func (s *Session) requireGraph() error {
	if s.ctrl == nil {
		return store.ErrNotLoaded
	}
	return nil
}

// interact runs a user interaction on the loop and records its outcome
func (s *Session) interact(ctx context.Context, kind string, fn func() error) error {
	err := s.do(ctx, func() error {
		if err := s.requireGraph(); err != nil {
			return err
		}
		return fn()
	})
	s.rec.ObserveInteraction(kind, err)
	return err
}

// Click selects a node
func (s *Session) Click(ctx context.Context, id string) error {
	return s.interact(ctx, "click", func() error {
		return s.view.onClick(id)
	})
}

// Search updates the search term
func (s *Session) Search(ctx context.Context, value string) error {
	return s.interact(ctx, "search", func() error {
		s.view.onSearch(value)
		return nil
	})
}

// Reset clears selection and search
func (s *Session) Reset(ctx context.Context) error {
	return s.interact(ctx, "reset", func() error {
		s.view.onReset()
		return nil
	})
}

// Drag applies one drag step
func (s *Session) Drag(ctx context.Context, ev controller.DragEvent) error {
	return s.interact(ctx, "drag", func() error {
		return s.view.onDrag(ev)
	})
}

// Snapshot returns the current view
func (s *Session) Snapshot(ctx context.Context) (*View, error) {
	var v *View
	err := s.do(ctx, func() error {
		v = &View{
			Status: s.status,
			Locale: s.opts.Locale,
		}
		if s.ctrl != nil {
			scene := s.renderer.Scene()
			v.Scene = &scene
			v.State = s.ctrl.State()
			v.Alpha = s.sim.Alpha()
			v.Target = s.sim.AlphaTarget()
			v.Running = s.sim.Active()
		}
		return nil
	})
	return v, err
}

// Status returns the last load status
func (s *Session) Status(ctx context.Context) (Status, error) {
	var st Status
	err := s.do(ctx, func() error {
		st = s.status
		return nil
	})
	return st, err
}

// Graph returns the loaded graph with current positions
func (s *Session) Graph(ctx context.Context) (*domain.Graph, error) {
	var g *domain.Graph
	err := s.do(ctx, func() error {
		var err error
		g, err = s.store.Snapshot()
		return err
	})
	return g, err
}

// WriteSVG renders the current scene to w
func (s *Session) WriteSVG(ctx context.Context, w io.Writer) error {
	var buf bytes.Buffer
	err := s.do(ctx, func() error {
		if err := s.requireGraph(); err != nil {
			return err
		}
		return s.renderer.WriteSVG(&buf)
	})
	if err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// sessionView is the GraphView the controller is bound to. Input handlers
// are invoked on the loop; output goes to the renderer and the event bus.
type sessionView struct {
	session *Session

	click  func(id string) error
	search func(value string)
	reset  func()
	drag   func(ev controller.DragEvent) error
}

func (v *sessionView) OnNodeClick(fn func(id string) error) { v.click = fn }
func (v *sessionView) OnSearchInput(fn func(value string)) { v.search = fn }
func (v *sessionView) OnReset(fn func()) { v.reset = fn }
func (v *sessionView) OnDrag(fn func(ev controller.DragEvent) error) { v.drag = fn }

func (v *sessionView) SetNodeFills(fills []render.NodeFill) {
	if v.session.renderer != nil {
		v.session.renderer.Recolor(fills)
	}
}

func (v *sessionView) ShowDetail(detail controller.Detail) {
	v.session.bus.Publish(Event{Type: EventDetail, Payload: detail})
}

func (v *sessionView) SetSearchValue(value string) {
	v.session.bus.Publish(Event{Type: EventSearch, Payload: map[string]string{"value": value}})
}

func (v *sessionView) onClick(id string) error {
	return v.click(id)
}

func (v *sessionView) onSearch(value string) {
	v.search(value)
}

func (v *sessionView) onReset() {
	v.reset()
}

func (v *sessionView) onDrag(ev controller.DragEvent) error {
	return v.drag(ev)
}

// busSurface publishes renderer frames as events
type busSurface struct {
	bus *EventBus
}

func (b busSurface) DrawPositions(frame render.PositionsFrame) {
	b.bus.Publish(Event{Type: EventPositions, Payload: frame})
}

func (b busSurface) DrawColors(frame render.ColorsFrame) {
	b.bus.Publish(Event{Type: EventColors, Payload: frame})
}
