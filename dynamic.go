package gimbal

// ComputeFunc derives a property value from the current frame. The returned
// value is resolved again recursively, so a compute may legally return
// another ComputeFunc, a Blueprint, a compiled *Dynamic, or a plain value.
type ComputeFunc func(ctx *Context, pool Pool) any

// Blueprint is the raw author input for an entity: a map whose values are
// literals, ComputeFuncs, or nested Blueprints. A small set of static keys
// (identity, asset references, modifier and effect lists) are never compiled
// and pass through by reference; see the staticKeys table.
type Blueprint map[string]any

// dynKind tags the variant held by a Dynamic. A flat struct with a kind tag
// is used instead of an interface per variant, matching how the renderer
// dispatches on ElementKind.
type dynKind uint8

const (
	dynStatic dynKind = iota
	dynComputed
	dynBranch
)

// Dynamic is the compiled form of one blueprint value. Exactly one of
// value, compute, or fields is meaningful, selected by kind.
type Dynamic struct {
	kind    dynKind
	value   any
	compute ComputeFunc
	fields  map[string]*Dynamic
}

// Static wraps a literal value as a compiled dynamic. The value is held by
// reference and returned unwrapped at resolution.
func Static(v any) *Dynamic {
	return &Dynamic{kind: dynStatic, value: v}
}

// Computed wraps a ComputeFunc as a compiled dynamic.
func Computed(fn ComputeFunc) *Dynamic {
	return &Dynamic{kind: dynComputed, compute: fn}
}

// staticKeys lists blueprint fields that bypass compilation entirely:
// identity and kind discriminators, asset references, modifier and effect
// lists, and per-projection rig configuration. They are copied by reference
// into the plan's static table.
var staticKeys = map[string]bool{
	"id":          true,
	"kind":        true,
	"texture":     true,
	"font":        true,
	"effects":     true,
	"car":         true,
	"nudge":       true,
	"stick":       true,
	"target":      true,
	"orientation": true,
	"distance":    true,
}

// Plan is a compiled blueprint: the dynamic per-field plan plus the static
// fields that bypassed compilation.
type Plan struct {
	dynamics map[string]*Dynamic
	statics  map[string]any
}

// Static returns the uncompiled value of a static key, or nil.
func (p *Plan) Static(key string) any {
	return p.statics[key]
}

// CompileBlueprint compiles every non-static field of a blueprint. Called
// exactly once per registration; pure and context-free.
func CompileBlueprint(bp Blueprint) *Plan {
	plan := &Plan{
		dynamics: make(map[string]*Dynamic, len(bp)),
		statics:  make(map[string]any),
	}
	for key, v := range bp {
		if staticKeys[key] {
			plan.statics[key] = v
			continue
		}
		plan.dynamics[key] = CompileValue(v)
	}
	return plan
}

// CompileValue compiles a single blueprint value into a Dynamic:
//
//   - a ComputeFunc becomes Computed
//   - a map with no function anywhere in its subtree collapses to a single
//     Static holding the original map by reference (leaves are not wrapped
//     individually, so static subtrees resolve to the identical value)
//   - a map containing at least one function anywhere becomes a Branch of
//     field-wise compiled children
//   - anything else becomes Static
func CompileValue(v any) *Dynamic {
	switch val := v.(type) {
	case ComputeFunc:
		return &Dynamic{kind: dynComputed, compute: val}
	case func(ctx *Context, pool Pool) any:
		return &Dynamic{kind: dynComputed, compute: val}
	case Blueprint:
		return compileMap(map[string]any(val), v)
	case map[string]any:
		return compileMap(val, v)
	default:
		return &Dynamic{kind: dynStatic, value: v}
	}
}

func compileMap(m map[string]any, original any) *Dynamic {
	if !containsComputed(m) {
		return &Dynamic{kind: dynStatic, value: original}
	}
	fields := make(map[string]*Dynamic, len(m))
	for k, child := range m {
		fields[k] = CompileValue(child)
	}
	return &Dynamic{kind: dynBranch, fields: fields}
}

// containsComputed reports whether any value in the subtree is a function.
func containsComputed(m map[string]any) bool {
	for _, v := range m {
		switch val := v.(type) {
		case ComputeFunc, func(ctx *Context, pool Pool) any:
			return true
		case Blueprint:
			if containsComputed(val) {
				return true
			}
		case map[string]any:
			if containsComputed(val) {
				return true
			}
		}
	}
	return false
}
