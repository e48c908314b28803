package gimbal

import (
	"reflect"
	"testing"
)

func TestResolveStatic(t *testing.T) {
	if got := Resolve(Static(7.0), &Context{}, nil); got != 7.0 {
		t.Errorf("Resolve(Static(7)) = %v, want 7", got)
	}
}

func TestResolveComputed(t *testing.T) {
	dyn := Computed(func(ctx *Context, pool Pool) any { return ctx.Frame })
	if got := Resolve(dyn, &Context{Frame: 12}, nil); got != uint64(12) {
		t.Errorf("Resolve = %v, want 12", got)
	}
}

func TestResolveComputedReturningComputed(t *testing.T) {
	// A compute may return another dynamic; the sieve must keep unwrapping.
	inner := Computed(func(ctx *Context, pool Pool) any { return "deep" })
	outer := Computed(func(ctx *Context, pool Pool) any { return inner })
	if got := Resolve(outer, &Context{}, nil); got != "deep" {
		t.Errorf("Resolve = %v, want deep", got)
	}
}

func TestResolveComputedReturningBlueprint(t *testing.T) {
	dyn := Computed(func(ctx *Context, pool Pool) any {
		return Blueprint{
			"lit": 1.0,
			"fn":  ComputeFunc(func(ctx *Context, pool Pool) any { return ctx.Progress }),
		}
	})
	got, ok := Resolve(dyn, &Context{Progress: 0.5}, nil).(map[string]any)
	if !ok {
		t.Fatalf("Resolve returned %T, want map", got)
	}
	if got["lit"] != 1.0 || got["fn"] != 0.5 {
		t.Errorf("Resolve = %v", got)
	}
}

func TestResolveBranch(t *testing.T) {
	dyn := CompileValue(Blueprint{
		"a": 1.0,
		"b": ComputeFunc(func(ctx *Context, pool Pool) any { return ctx.Time * 2 }),
	})
	got := Resolve(dyn, &Context{Time: 3}, nil).(map[string]any)
	if got["a"] != 1.0 || got["b"] != 6.0 {
		t.Errorf("Resolve = %v", got)
	}
}

func TestResolvePassesThroughPrimitivesAndSlices(t *testing.T) {
	ctx := &Context{}
	if got := Resolve("plain", ctx, nil); got != "plain" {
		t.Errorf("string = %v", got)
	}
	s := []float64{1, 2, 3}
	got := Resolve(s, ctx, nil)
	if &got.([]float64)[0] != &s[0] {
		t.Error("slice was copied, want passed through unchanged")
	}
}

func TestResolvePoolCrossReference(t *testing.T) {
	pool := Pool{"anchor": &ResolvedElement{ID: "anchor", Position: Vector3{X: 4}}}
	dyn := Computed(func(ctx *Context, pool Pool) any {
		return pool["anchor"].(*ResolvedElement).Position
	})
	got := Resolve(dyn, &Context{}, pool)
	if got != (Vector3{X: 4}) {
		t.Errorf("Resolve via pool = %v, want {4 0 0}", got)
	}
}

func TestResolvePurity(t *testing.T) {
	// The same tree resolved against structurally-equal contexts must
	// yield deep-equal outputs: no hidden mutable state.
	dyn := CompileValue(Blueprint{
		"pos": ComputeFunc(func(ctx *Context, pool Pool) any {
			return Vector3{X: ctx.Progress * 10}
		}),
		"label": "fixed",
	})
	ctx1 := &Context{Progress: 0.25, Frame: 7}
	ctx2 := &Context{Progress: 0.25, Frame: 7}

	a := Resolve(dyn, ctx1, Pool{})
	b := Resolve(dyn, ctx2, Pool{})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("resolution is not pure: %v vs %v", a, b)
	}
}

func TestResolveDoesNotMutatePlan(t *testing.T) {
	bp := Blueprint{
		"n": ComputeFunc(func(ctx *Context, pool Pool) any { return ctx.Frame }),
		"m": Blueprint{"k": 1.0},
	}
	dyn := CompileValue(bp)
	Resolve(dyn, &Context{Frame: 1}, nil)
	Resolve(dyn, &Context{Frame: 2}, nil)
	if dyn.kind != dynBranch || dyn.fields["m"].kind != dynStatic {
		t.Error("plan structure changed across resolutions")
	}
}

func TestToVector3(t *testing.T) {
	if v, ok := toVector3(Vector3{1, 2, 3}); !ok || v != (Vector3{1, 2, 3}) {
		t.Errorf("literal = %v, %v", v, ok)
	}
	if v, ok := toVector3(map[string]any{"x": 1.0, "z": 3}); !ok || v != (Vector3{X: 1, Z: 3}) {
		t.Errorf("map = %v, %v", v, ok)
	}
	if _, ok := toVector3("nope"); ok {
		t.Error("string coerced to Vector3")
	}
	if _, ok := toVector3(map[string]any{"w": 1.0}); ok {
		t.Error("axis-free map coerced to Vector3")
	}
}

func TestToRotation3(t *testing.T) {
	if r, ok := toRotation3(map[string]any{"yaw": 1.0, "roll": 0.5}); !ok || r != (Rotation3{Yaw: 1, Roll: 0.5}) {
		t.Errorf("map = %v, %v", r, ok)
	}
}

func BenchmarkResolveBranch(b *testing.B) {
	dyn := CompileValue(Blueprint{
		"position": ComputeFunc(func(ctx *Context, pool Pool) any {
			return Vector3{X: ctx.Progress}
		}),
		"color": Color{1, 1, 1, 1},
		"meta":  Blueprint{"a": 1.0, "b": 2.0},
	})
	ctx := &Context{Progress: 0.5}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(dyn, ctx, nil)
	}
}
