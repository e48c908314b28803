package gimbal

import "testing"

func TestCompileFunctionBecomesComputed(t *testing.T) {
	dyn := CompileValue(ComputeFunc(func(ctx *Context, pool Pool) any { return 42 }))
	if dyn.kind != dynComputed {
		t.Fatalf("kind = %v, want computed", dyn.kind)
	}
}

func TestCompileBareFuncBecomesComputed(t *testing.T) {
	// An untyped func literal with the right signature compiles too.
	fn := func(ctx *Context, pool Pool) any { return 1 }
	dyn := CompileValue(fn)
	if dyn.kind != dynComputed {
		t.Fatalf("kind = %v, want computed", dyn.kind)
	}
}

func TestCompilePrimitiveBecomesStatic(t *testing.T) {
	dyn := CompileValue(3.5)
	if dyn.kind != dynStatic || dyn.value != 3.5 {
		t.Fatalf("CompileValue(3.5) = %+v", dyn)
	}
}

func TestCompileStaticSubtreeCollapsesByReference(t *testing.T) {
	// A map with no function anywhere collapses to one Static holding the
	// original map, not a tree of wrapped leaves.
	bp := Blueprint{"x": 1.0, "nested": Blueprint{"y": 2.0}}
	dyn := CompileValue(bp)
	if dyn.kind != dynStatic {
		t.Fatalf("kind = %v, want static", dyn.kind)
	}
	if _, ok := dyn.value.(Blueprint); !ok {
		t.Fatalf("collapsed value is %T, want Blueprint", dyn.value)
	}
	// Identity: resolution must hand back the very same map, so a mutation
	// of the original is visible through the resolved value.
	bp["x"] = 9.0
	rm, ok := Resolve(dyn, &Context{}, nil).(Blueprint)
	if !ok {
		t.Fatalf("resolved to %T, want Blueprint", rm)
	}
	if rm["x"] != 9.0 {
		t.Error("static subtree was copied, want returned by reference")
	}
}

func TestCompileMixedSubtreeBecomesBranch(t *testing.T) {
	bp := Blueprint{
		"static": 1.0,
		"deep": Blueprint{
			"fn": ComputeFunc(func(ctx *Context, pool Pool) any { return 2.0 }),
		},
	}
	dyn := CompileValue(bp)
	if dyn.kind != dynBranch {
		t.Fatalf("kind = %v, want branch", dyn.kind)
	}
	if dyn.fields["static"].kind != dynStatic {
		t.Errorf("static child kind = %v, want static", dyn.fields["static"].kind)
	}
	if dyn.fields["deep"].kind != dynBranch {
		t.Errorf("deep child kind = %v, want branch", dyn.fields["deep"].kind)
	}
}

func TestCompileBlueprintSkipsStaticKeys(t *testing.T) {
	fn := ComputeFunc(func(ctx *Context, pool Pool) any { return Vector3{} })
	effects := []EffectInstruction{{Type: "bob"}}
	plan := CompileBlueprint(Blueprint{
		"kind":     KindSprite,
		"texture":  "hero.png",
		"effects":  effects,
		"position": fn,
	})

	if plan.Static("kind") != KindSprite {
		t.Errorf("kind static = %v", plan.Static("kind"))
	}
	if plan.Static("texture") != "hero.png" {
		t.Errorf("texture static = %v", plan.Static("texture"))
	}
	// The effect list passes through by reference, uncompiled.
	if got, ok := plan.Static("effects").([]EffectInstruction); !ok || &got[0] != &effects[0] {
		t.Error("effects list was not passed through by reference")
	}
	if _, ok := plan.dynamics["texture"]; ok {
		t.Error("static key leaked into the dynamic plan")
	}
	if plan.dynamics["position"].kind != dynComputed {
		t.Error("position did not compile to computed")
	}
}

func TestStaticAndComputedConstructors(t *testing.T) {
	s := Static("hello")
	if s.kind != dynStatic || s.value != "hello" {
		t.Errorf("Static = %+v", s)
	}
	c := Computed(func(ctx *Context, pool Pool) any { return nil })
	if c.kind != dynComputed {
		t.Errorf("Computed kind = %v", c.kind)
	}
}
