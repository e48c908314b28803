package gimbal

import "fmt"

// EffectFunc transforms a resolved element in place after base resolution.
// Effects run in strict declaration order, each seeing the previous one's
// output. The resolved element is per-frame scratch data, so mutation is
// safe; the compiled plan and original blueprint are never visible here.
//
// A panic inside an EffectFunc propagates to the caller: a broken custom
// effect is a programmer error, not a recoverable runtime condition.
type EffectFunc func(el *ResolvedElement, ctx *Context, settings map[string]any, pool Pool)

// EffectBundle is a named, configurable transform registered in a Library.
type EffectBundle struct {
	// Name is the type string blueprints reference in their effect list.
	Name string
	// Kinds lists the element kinds this effect may target. Empty means any
	// kind, including projections.
	Kinds []ElementKind
	// Defaults holds the default settings, merged under each instruction's
	// overrides at bind time. Must include an "enabled" bool.
	Defaults map[string]any
	// Apply performs the transform.
	Apply EffectFunc
}

// EffectInstruction is a blueprint's request for one effect application:
// the bundle name plus optional setting overrides.
type EffectInstruction struct {
	Type     string
	Settings map[string]any
}

// Library maps effect names to bundles. Binding against the library happens
// once at registration; an unknown effect type is a registration error,
// never silently dropped or deferred to render time.
type Library struct {
	bundles map[string]*EffectBundle
}

// NewLibrary creates an empty effect library.
func NewLibrary() *Library {
	return &Library{bundles: make(map[string]*EffectBundle)}
}

// Register adds a bundle to the library, replacing any bundle with the same
// name.
func (l *Library) Register(b *EffectBundle) {
	l.bundles[b.Name] = b
}

// Bundle returns the bundle registered under name, or nil.
func (l *Library) Bundle(name string) *EffectBundle {
	return l.bundles[name]
}

// boundEffect is one registration-time binding: the bundle plus its merged
// settings (defaults under instruction overrides).
type boundEffect struct {
	bundle   *EffectBundle
	settings map[string]any
}

// bind resolves a blueprint's effect instructions against the library for
// an entity of the given kind. Fails on the first unknown type or
// kind mismatch.
func (l *Library) bind(instructions []EffectInstruction, kind ElementKind) ([]boundEffect, error) {
	if len(instructions) == 0 {
		return nil, nil
	}
	bound := make([]boundEffect, 0, len(instructions))
	for _, instr := range instructions {
		bundle := l.bundles[instr.Type]
		if bundle == nil {
			return nil, fmt.Errorf("gimbal: unknown effect type %q", instr.Type)
		}
		if len(bundle.Kinds) > 0 && !kindAllowed(bundle.Kinds, kind) {
			return nil, fmt.Errorf("gimbal: effect %q does not apply to %s entities", instr.Type, kind)
		}
		settings := make(map[string]any, len(bundle.Defaults)+len(instr.Settings))
		for k, v := range bundle.Defaults {
			settings[k] = v
		}
		for k, v := range instr.Settings {
			settings[k] = v
		}
		bound = append(bound, boundEffect{bundle: bundle, settings: settings})
	}
	return bound, nil
}

func kindAllowed(kinds []ElementKind, kind ElementKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// applyEffects runs the bound effect list over a resolved element in
// declaration order. A step whose merged settings carry enabled=false is a
// no-op pass-through.
func applyEffects(el *ResolvedElement, effects []boundEffect, ctx *Context, pool Pool) {
	for _, e := range effects {
		if enabled, ok := e.settings["enabled"].(bool); ok && !enabled {
			continue
		}
		e.bundle.Apply(el, ctx, e.settings, pool)
	}
}

// effectInstructions coerces the static "effects" blueprint field. Accepts
// a []EffectInstruction or nil.
func effectInstructions(v any) ([]EffectInstruction, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []EffectInstruction:
		return val, nil
	default:
		return nil, fmt.Errorf("gimbal: effects field must be []EffectInstruction, got %T", v)
	}
}
