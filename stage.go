package gimbal

import (
	"time"
)

// EventSink is the interface for optional ECS integration. When set on a
// Stage, per-frame resolution events are forwarded to the ECS.
type EventSink interface {
	EmitResolution(event ResolutionEvent)
}

// ResolutionEvent carries one resolved entity's pose for the ECS bridge.
type ResolutionEvent struct {
	ID       string
	Kind     ElementKind
	Frame    uint64
	Position Vector3
	Rotation Rotation3
}

// StageConfig configures a new Stage. The zero value is usable: no loader
// (asset references stay pending forever), the built-in effect library, and
// a zero playback duration.
type StageConfig struct {
	// Loader hydrates texture and font references. Nil disables hydration.
	Loader Loader
	// Library supplies effect bundles for registration binding. Nil uses
	// DefaultLibrary.
	Library *Library
	// Playback derives loop progress from wall time.
	Playback Playback
	// Settings is the author's scene settings bundle, exposed on every
	// Context.
	Settings Settings
}

// Stage is the top-level object owning the registries, the effect library,
// asset hydration, and per-frame resolution. It is an explicit store:
// nothing in gimbal is ambient or global, so independent Stages never
// interact.
//
// A Stage is single-threaded: all methods must be called from the frame
// goroutine. The only concurrency is asset loading, which runs on
// background goroutines and settles through a channel drained by Update.
type Stage struct {
	elements    map[string]*Element
	elemOrder   []string
	projections map[string]*Projection
	projOrder   []string

	library  *Library
	loader   Loader
	playback Playback
	settings Settings

	hydrated chan hydrationResult

	previous *Snapshot
	frame    uint64
	elapsed  float64
	delta    float64

	audit AuditLog
	sink  EventSink
	debug bool
}

// NewStage creates a Stage with the given configuration.
func NewStage(cfg StageConfig) *Stage {
	library := cfg.Library
	if library == nil {
		library = DefaultLibrary()
	}
	return &Stage{
		elements:    make(map[string]*Element),
		projections: make(map[string]*Projection),
		library:     library,
		loader:      cfg.Loader,
		playback:    cfg.Playback,
		settings:    cfg.Settings,
		hydrated:    make(chan hydrationResult, hydrationQueueCap),
	}
}

// SetEventSink sets the optional ECS bridge.
func (s *Stage) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// timing stats and modifier failures are logged to stderr.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Audit returns the modifier failure log for the most recent Resolve.
func (s *Stage) Audit() *AuditLog {
	return &s.audit
}

// Library returns the stage's effect library, for registering custom
// bundles before elements reference them.
func (s *Stage) Library() *Library {
	return s.library
}

// RegisterElement compiles a blueprint and stores the element under id.
// Idempotent: registering an id that already exists returns the existing
// singleton untouched, whatever the new blueprint says, and never
// re-triggers asset hydration.
func (s *Stage) RegisterElement(id string, bp Blueprint) (*Element, error) {
	if existing, ok := s.elements[id]; ok {
		return existing, nil
	}
	el, err := newElement(id, bp, s.library)
	if err != nil {
		return nil, err
	}
	s.elements[id] = el
	s.elemOrder = append(s.elemOrder, id)
	return el, nil
}

// RemoveElement deletes the element registered under id. In-flight asset
// hydration is not cancelled; it settles into the orphaned slot, which is
// harmless.
func (s *Stage) RemoveElement(id string) {
	if _, ok := s.elements[id]; !ok {
		return
	}
	delete(s.elements, id)
	for i, eid := range s.elemOrder {
		if eid == id {
			s.elemOrder = append(s.elemOrder[:i], s.elemOrder[i+1:]...)
			break
		}
	}
}

// RegisterProjection compiles a projection blueprint and stores it under
// id. Idempotent per id, like RegisterElement. Self-targeting and target
// cycles are rejected here, before the registry is touched, so a failed
// registration never corrupts it.
func (s *Stage) RegisterProjection(id string, bp Blueprint) (*Projection, error) {
	if existing, ok := s.projections[id]; ok {
		return existing, nil
	}
	p, err := newProjection(id, bp, s.library)
	if err != nil {
		return nil, err
	}
	if err := validateTarget(id, p.TargetID, s.projections); err != nil {
		return nil, err
	}
	s.projections[id] = p
	s.projOrder = append(s.projOrder, id)
	return p, nil
}

// RemoveProjection deletes the projection registered under id. Children
// targeting it keep their local pose until it returns (or fall back to the
// previous snapshot while that lasts).
func (s *Stage) RemoveProjection(id string) {
	if _, ok := s.projections[id]; !ok {
		return
	}
	delete(s.projections, id)
	for i, pid := range s.projOrder {
		if pid == id {
			s.projOrder = append(s.projOrder[:i], s.projOrder[i+1:]...)
			break
		}
	}
}

// Update advances the stage by dt seconds: settled asset loads are drained
// into their slots, pending references are dispatched to the loader, and
// stateful modifiers (anything implementing Advancer) are advanced. Call
// once per frame, before Resolve.
func (s *Stage) Update(dt float64) {
	s.delta = dt
	s.elapsed += dt

	s.drainHydrations()
	s.dispatchHydrations()
	s.advanceModifiers(dt)
}

// drainHydrations applies every settled load result. Slots are mutated only
// here, on the frame goroutine, so readers never observe a torn write.
func (s *Stage) drainHydrations() {
	for {
		select {
		case res := <-s.hydrated:
			if res.err != nil {
				res.slot.Status = AssetError
				res.slot.Err = res.err.Error()
			} else {
				res.slot.Status = AssetReady
				res.slot.Value = res.value
			}
		default:
			return
		}
	}
}

// dispatchHydrations launches a loader goroutine for every pending slot
// that has not been dispatched yet. Each slot is dispatched at most once
// for the life of its element.
func (s *Stage) dispatchHydrations() {
	if s.loader == nil {
		return
	}
	for _, id := range s.elemOrder {
		slots := s.elements[id].Slots
		s.dispatchSlot(slots.Texture)
		s.dispatchSlot(slots.Font)
	}
}

func (s *Stage) dispatchSlot(slot *AssetSlot) {
	if slot.Status != AssetPending || slot.dispatched {
		return
	}
	slot.dispatched = true
	slot.Status = AssetLoading

	ref, kind, loader := slot.ref, slot.kind, s.loader
	go func() {
		var value any
		var err error
		if kind == assetFont {
			value, err = loader.LoadFont(ref)
		} else {
			value, err = loader.LoadTexture(ref)
		}
		s.hydrated <- hydrationResult{slot: slot, value: value, err: err}
	}()
}

// Advancer is implemented by stateful modifiers (e.g. Glide) that need a
// per-frame time step outside the pure resolution pass.
type Advancer interface {
	Advance(dt float64)
}

// advanceModifiers steps every rig modifier that carries tween or
// simulation state.
func (s *Stage) advanceModifiers(dt float64) {
	for _, id := range s.projOrder {
		p := s.projections[id]
		for _, m := range p.cars {
			if a, ok := any(m).(Advancer); ok {
				a.Advance(dt)
			}
		}
		for _, m := range p.nudges {
			if a, ok := any(m).(Advancer); ok {
				a.Advance(dt)
			}
		}
		for _, m := range p.sticks {
			if a, ok := any(m).(Advancer); ok {
				a.Advance(dt)
			}
		}
	}
}

// context builds the read-only per-frame input bundle.
func (s *Stage) context() *Context {
	return &Context{
		Time:     s.elapsed,
		Delta:    s.delta,
		Frame:    s.frame,
		Progress: s.playback.progress(s.elapsed),
		Settings: s.settings,
		Previous: s.previous,
	}
}

// Resolve computes one frame: every element's plan is sieved against the
// current context and post-processed by its effects, every projection runs
// the car/nudge/stick stages, parents compose, and the finished snapshot is
// returned (and retained as the next frame's Previous). Entities resolve in
// registration order; the pool exposes earlier siblings to later ones.
func (s *Stage) Resolve() *Snapshot {
	ctx := s.context()
	pool := make(Pool, len(s.elemOrder)+len(s.projOrder))
	s.audit.Reset()

	var stats frameStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	snap := &Snapshot{
		Frame:       s.frame,
		Elements:    make(map[string]*ResolvedElement, len(s.elemOrder)),
		Projections: make(map[string]*ResolvedProjection, len(s.projOrder)),
		Order:       append([]string(nil), s.elemOrder...),
	}

	for _, id := range s.elemOrder {
		r := resolveElement(s.elements[id], ctx, pool)
		snap.Elements[id] = r
		pool[id] = r
		if s.sink != nil {
			s.sink.EmitResolution(ResolutionEvent{
				ID: id, Kind: r.Kind, Frame: s.frame,
				Position: r.Position, Rotation: r.Rotation,
			})
		}
	}

	if s.debug {
		stats.resolveTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, id := range s.projOrder {
		r := resolveProjection(s.projections[id], ctx, pool, &s.audit)
		snap.Projections[id] = r
		pool[id] = r
	}

	composeHierarchy(s.projections, snap.Projections, s.previous)

	// Projection effects run after hierarchy composition, on the final pose.
	for _, id := range s.projOrder {
		p := s.projections[id]
		r := snap.Projections[id]
		applyEffects(&r.ResolvedElement, p.effects, ctx, pool)
		if s.sink != nil {
			s.sink.EmitResolution(ResolutionEvent{
				ID: id, Kind: KindProjection, Frame: s.frame,
				Position: r.Position, Rotation: r.Rotation,
			})
		}
	}

	if s.debug {
		stats.rigTime = time.Since(t0)
		stats.elementCount = len(snap.Elements)
		stats.projectionCount = len(snap.Projections)
		stats.auditCount = len(s.audit.Entries)
		s.debugLog(stats)
	}

	s.previous = snap
	s.frame++
	return snap
}
