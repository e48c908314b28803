package gimbal

import (
	"reflect"
	"testing"
)

func TestRegisterElementIdempotent(t *testing.T) {
	stage := NewStage(StageConfig{})
	a, err := stage.RegisterElement("hero", Blueprint{"position": Vector3{1, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	// Same id, different blueprint: the original singleton comes back.
	b, err := stage.RegisterElement("hero", Blueprint{"position": Vector3{9, 9, 9}})
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("re-registration created a second element")
	}
	snap := stage.Resolve()
	if got := snap.Element("hero").Position; got != (Vector3{1, 0, 0}) {
		t.Errorf("position = %v, want the first blueprint's", got)
	}
}

func TestRegisterElementRejectsProjectionKind(t *testing.T) {
	stage := NewStage(StageConfig{})
	if _, err := stage.RegisterElement("cam", Blueprint{"kind": KindProjection}); err == nil {
		t.Error("projection kind accepted by RegisterElement")
	}
}

func TestRegisterElementUnknownEffectAborts(t *testing.T) {
	stage := NewStage(StageConfig{})
	_, err := stage.RegisterElement("hero", Blueprint{
		"effects": []EffectInstruction{{Type: "does-not-exist"}},
	})
	if err == nil {
		t.Fatal("unknown effect type accepted at registration")
	}
	// The failed registration must not leave a partial entry behind.
	if stage.Resolve().Element("hero") != nil {
		t.Error("failed registration corrupted the registry")
	}
}

func TestResolveOrderAndPoolVisibility(t *testing.T) {
	stage := NewStage(StageConfig{})
	if _, err := stage.RegisterElement("anchor", Blueprint{
		"position": Vector3{5, 0, 0},
	}); err != nil {
		t.Fatal(err)
	}
	// Registered later, so it sees "anchor" in the pool.
	if _, err := stage.RegisterElement("satellite", Blueprint{
		"position": func(ctx *Context, pool Pool) any {
			anchor := pool["anchor"].(*ResolvedElement)
			return anchor.Position.Add(Vector3{0, 1, 0})
		},
	}); err != nil {
		t.Fatal(err)
	}

	snap := stage.Resolve()
	if got := snap.Element("satellite").Position; got != (Vector3{5, 1, 0}) {
		t.Errorf("satellite = %v, want {5 1 0}", got)
	}
	if len(snap.Order) != 2 || snap.Order[0] != "anchor" || snap.Order[1] != "satellite" {
		t.Errorf("snapshot order = %v, want registration order", snap.Order)
	}
}

func TestPreviousSnapshotAvailableNextFrame(t *testing.T) {
	stage := NewStage(StageConfig{})
	if _, err := stage.RegisterElement("probe", Blueprint{
		"echo": func(ctx *Context, pool Pool) any {
			if prev := ctx.Previous.Element("probe"); prev != nil {
				return prev.Props["frame"]
			}
			return -1.0
		},
		"frame": func(ctx *Context, pool Pool) any { return float64(ctx.Frame) },
	}); err != nil {
		t.Fatal(err)
	}

	first := stage.Resolve()
	if first.Element("probe").Props["echo"] != -1.0 {
		t.Errorf("first frame echo = %v, want -1 (no previous)", first.Element("probe").Props["echo"])
	}
	second := stage.Resolve()
	if second.Element("probe").Props["echo"] != 0.0 {
		t.Errorf("second frame echo = %v, want 0 (frame 0's value)", second.Element("probe").Props["echo"])
	}
}

func TestStageContextProgress(t *testing.T) {
	stage := NewStage(StageConfig{Playback: Playback{Duration: 10, Loop: true}})
	stage.Update(2.5)
	if ctx := stage.context(); !approxEqual(ctx.Progress, 0.25, epsilon) {
		t.Errorf("Progress = %v, want 0.25", ctx.Progress)
	}
	stage.Update(10)
	if ctx := stage.context(); !approxEqual(ctx.Progress, 0.25, epsilon) {
		t.Errorf("looped Progress = %v, want 0.25", ctx.Progress)
	}
}

func TestPlaybackClampWithoutLoop(t *testing.T) {
	p := Playback{Duration: 4}
	if got := p.progress(6); got != 1 {
		t.Errorf("clamped progress = %v, want 1", got)
	}
	if got := (Playback{}).progress(100); got != 0 {
		t.Errorf("zero-duration progress = %v, want 0", got)
	}
}

func TestProjectionCycleRejectedAndRegistryIntact(t *testing.T) {
	stage := NewStage(StageConfig{})
	if _, err := stage.RegisterProjection("a", Blueprint{}); err != nil {
		t.Fatal(err)
	}
	if _, err := stage.RegisterProjection("b", Blueprint{"target": "a"}); err != nil {
		t.Fatal(err)
	}
	// b already targets a; a cannot be re-registered (idempotent), but a
	// new projection closing the loop must fail.
	if _, err := stage.RegisterProjection("c", Blueprint{"target": "c"}); err == nil {
		t.Error("self-target accepted")
	}

	// Fresh stage for the two-node cycle: register b->a after a->b.
	s2 := NewStage(StageConfig{})
	if _, err := s2.RegisterProjection("b", Blueprint{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s2.RegisterProjection("a", Blueprint{"target": "b"}); err != nil {
		t.Fatal(err)
	}
	// Replace b with one targeting a: remove then re-register.
	s2.RemoveProjection("b")
	if _, err := s2.RegisterProjection("b", Blueprint{"target": "a"}); err == nil {
		t.Error("cycle a<->b accepted")
	}
	// The failed registration corrupts nothing: a still resolves.
	snap := s2.Resolve()
	if snap.Projection("a") == nil {
		t.Error("registry corrupted by rejected registration")
	}
	if snap.Projection("b") != nil {
		t.Error("rejected projection present in snapshot")
	}
}

func TestProjectionTargetMustExist(t *testing.T) {
	stage := NewStage(StageConfig{})
	if _, err := stage.RegisterProjection("chase", Blueprint{"target": "lead"}); err == nil {
		t.Error("unregistered target accepted")
	}
}

func TestStageHierarchyEndToEnd(t *testing.T) {
	stage := NewStage(StageConfig{})
	if _, err := stage.RegisterProjection("lead", Blueprint{
		"car": NewFixedCar("home", 0, Vector3{10, 0, 0}),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := stage.RegisterProjection("chase", Blueprint{
		"target":   "lead",
		"position": Vector3{0, 2, 6},
	}); err != nil {
		t.Fatal(err)
	}

	snap := stage.Resolve()
	if got := snap.Projection("chase").Position; got != (Vector3{10, 2, 6}) {
		t.Errorf("chase position = %v, want {10 2 6}", got)
	}
}

func TestProjectionEffectsRunOnFinalPose(t *testing.T) {
	lib := DefaultLibrary()
	var seen Vector3
	lib.Register(&EffectBundle{
		Name:     "spy",
		Defaults: map[string]any{"enabled": true},
		Apply: func(el *ResolvedElement, ctx *Context, settings map[string]any, pool Pool) {
			seen = el.Position
			el.Position.Y += 100
		},
	})
	stage := NewStage(StageConfig{Library: lib})
	if _, err := stage.RegisterProjection("lead", Blueprint{
		"car": NewFixedCar("home", 0, Vector3{10, 0, 0}),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := stage.RegisterProjection("chase", Blueprint{
		"target":   "lead",
		"position": Vector3{0, 0, 5},
		"effects":  []EffectInstruction{{Type: "spy"}},
	}); err != nil {
		t.Fatal(err)
	}

	snap := stage.Resolve()
	// The effect saw the hierarchy-composed position, not the local one.
	if seen != (Vector3{10, 0, 5}) {
		t.Errorf("effect saw %v, want composed {10 0 5}", seen)
	}
	if got := snap.Projection("chase").Position; got != (Vector3{10, 100, 5}) {
		t.Errorf("post-effect position = %v, want {10 100 5}", got)
	}
}

type recordingSink struct {
	events []ResolutionEvent
}

func (s *recordingSink) EmitResolution(e ResolutionEvent) {
	s.events = append(s.events, e)
}

func TestEventSinkReceivesResolutions(t *testing.T) {
	stage := NewStage(StageConfig{})
	sink := &recordingSink{}
	stage.SetEventSink(sink)

	if _, err := stage.RegisterElement("hero", Blueprint{"position": Vector3{1, 2, 3}}); err != nil {
		t.Fatal(err)
	}
	if _, err := stage.RegisterProjection("main", Blueprint{}); err != nil {
		t.Fatal(err)
	}
	stage.Resolve()

	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	if sink.events[0].ID != "hero" || sink.events[0].Position != (Vector3{1, 2, 3}) {
		t.Errorf("element event = %+v", sink.events[0])
	}
	if sink.events[1].ID != "main" || sink.events[1].Kind != KindProjection {
		t.Errorf("projection event = %+v", sink.events[1])
	}
}

func TestRemoveElement(t *testing.T) {
	stage := NewStage(StageConfig{})
	if _, err := stage.RegisterElement("a", Blueprint{}); err != nil {
		t.Fatal(err)
	}
	if _, err := stage.RegisterElement("b", Blueprint{}); err != nil {
		t.Fatal(err)
	}
	stage.RemoveElement("a")
	stage.RemoveElement("a") // double remove is a no-op

	snap := stage.Resolve()
	if snap.Element("a") != nil || snap.Element("b") == nil {
		t.Errorf("snapshot after removal: a=%v b=%v", snap.Element("a"), snap.Element("b"))
	}

	// The id can be registered anew after removal.
	if _, err := stage.RegisterElement("a", Blueprint{"position": Vector3{7, 0, 0}}); err != nil {
		t.Fatal(err)
	}
	if got := stage.Resolve().Element("a").Position; got != (Vector3{7, 0, 0}) {
		t.Errorf("re-registered element position = %v, want {7 0 0}", got)
	}
}

func TestStageResolveDeterministicAcrossEqualStages(t *testing.T) {
	build := func() *Stage {
		stage := NewStage(StageConfig{Playback: Playback{Duration: 4, Loop: true}})
		_, _ = stage.RegisterElement("orb", Blueprint{
			"position": func(ctx *Context, pool Pool) any {
				return Vector3{X: ctx.Progress * 8}
			},
		})
		return stage
	}
	s1, s2 := build(), build()
	s1.Update(1)
	s2.Update(1)
	a, b := s1.Resolve(), s2.Resolve()
	if !reflect.DeepEqual(a.Element("orb").Props, b.Element("orb").Props) {
		t.Error("identical stages resolved differently")
	}
}
