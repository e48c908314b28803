package gimbal

import "math"

// DefaultLibrary returns a library pre-loaded with the built-in effects:
// "bob", "tint", and "scale-pulse". Stages created without an explicit
// library use this one.
func DefaultLibrary() *Library {
	l := NewLibrary()
	l.Register(BobEffect())
	l.Register(TintEffect())
	l.Register(ScalePulseEffect())
	return l
}

// BobEffect oscillates the element's Y position sinusoidally over the
// playback loop. Settings: enabled (bool), amplitude (float64, default 1),
// cycles (float64 full oscillations per loop, default 1).
func BobEffect() *EffectBundle {
	return &EffectBundle{
		Name: "bob",
		Defaults: map[string]any{
			"enabled":   true,
			"amplitude": 1.0,
			"cycles":    1.0,
		},
		Apply: func(el *ResolvedElement, ctx *Context, settings map[string]any, pool Pool) {
			amp, _ := toFloat(settings["amplitude"])
			cycles, _ := toFloat(settings["cycles"])
			el.Position.Y += amp * math.Sin(ctx.Progress*2*math.Pi*cycles)
		},
	}
}

// TintEffect fades the element's color toward a target color by the
// playback loop progress. Settings: enabled (bool), color (Color, default
// white).
func TintEffect() *EffectBundle {
	return &EffectBundle{
		Name:  "tint",
		Kinds: []ElementKind{KindSprite, KindPanel, KindText},
		Defaults: map[string]any{
			"enabled": true,
			"color":   ColorWhite,
		},
		Apply: func(el *ResolvedElement, ctx *Context, settings map[string]any, pool Pool) {
			target, ok := settings["color"].(Color)
			if !ok {
				return
			}
			t := ctx.Progress
			el.Color = Color{
				R: el.Color.R + (target.R-el.Color.R)*t,
				G: el.Color.G + (target.G-el.Color.G)*t,
				B: el.Color.B + (target.B-el.Color.B)*t,
				A: el.Color.A + (target.A-el.Color.A)*t,
			}
		},
	}
}

// ScalePulseEffect pulses the element's scale around its resolved value.
// Settings: enabled (bool), amount (float64 fractional amplitude, default
// 0.1), cycles (float64 pulses per loop, default 1).
func ScalePulseEffect() *EffectBundle {
	return &EffectBundle{
		Name:  "scale-pulse",
		Kinds: []ElementKind{KindSprite, KindPanel, KindText},
		Defaults: map[string]any{
			"enabled": true,
			"amount":  0.1,
			"cycles":  1.0,
		},
		Apply: func(el *ResolvedElement, ctx *Context, settings map[string]any, pool Pool) {
			amount, _ := toFloat(settings["amount"])
			cycles, _ := toFloat(settings["cycles"])
			el.Scale *= 1 + amount*math.Sin(ctx.Progress*2*math.Pi*cycles)
		},
	}
}
