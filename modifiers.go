package gimbal

import (
	"fmt"
	"math"
)

// modifierBase carries the identity fields shared by the built-in
// providers.
type modifierBase struct {
	name     string
	priority float64
	// Enabled gates the modifier; the pipeline skips inactive modifiers
	// without recording anything. Defaults to true in every constructor.
	Enabled bool
}

// Name implements Modifier.
func (m *modifierBase) Name() string { return m.name }

// Priority implements Modifier.
func (m *modifierBase) Priority() float64 { return m.priority }

// Active implements Modifier.
func (m *modifierBase) Active() bool { return m.Enabled }

// FixedCar always reports the same absolute position.
type FixedCar struct {
	modifierBase
	Position Vector3
}

// NewFixedCar creates a car pinned to the given position.
func NewFixedCar(name string, priority float64, pos Vector3) *FixedCar {
	return &FixedCar{modifierBase{name, priority, true}, pos}
}

// CarPosition implements CarModifier. Never fails.
func (c *FixedCar) CarPosition(ctx *Context) (Vector3, error) {
	return c.Position, nil
}

// OrbitCar circles a center point, driven by the playback loop: one full
// revolution per loop, starting at Phase radians.
type OrbitCar struct {
	modifierBase
	Center Vector3
	Radius float64
	Height float64
	Phase  float64
}

// NewOrbitCar creates an orbiting car around center at the given radius.
func NewOrbitCar(name string, priority float64, center Vector3, radius float64) *OrbitCar {
	return &OrbitCar{modifierBase: modifierBase{name, priority, true}, Center: center, Radius: radius}
}

// CarPosition implements CarModifier. Never fails.
func (c *OrbitCar) CarPosition(ctx *Context) (Vector3, error) {
	a := ctx.Progress*2*math.Pi + c.Phase
	return Vector3{
		X: c.Center.X + math.Cos(a)*c.Radius,
		Y: c.Center.Y + c.Height,
		Z: c.Center.Z + math.Sin(a)*c.Radius,
	}, nil
}

// FixedStick always reports the same orientation.
type FixedStick struct {
	modifierBase
	Result StickResult
}

// NewFixedStick creates a stick pinned to the given result.
func NewFixedStick(name string, priority float64, result StickResult) *FixedStick {
	return &FixedStick{modifierBase{name, priority, true}, result}
}

// Stick implements StickModifier. Never fails.
func (s *FixedStick) Stick(ctx *Context) (StickResult, error) {
	return s.Result, nil
}

// TrackStick orients toward an entity resolved in the previous frame,
// identified by id. Fails while the entity has not been resolved yet (no
// previous snapshot, or no such id), letting a lower-priority stick take
// over.
type TrackStick struct {
	modifierBase
	// TargetID is the entity to face.
	TargetID string
	// Eye is the assumed camera position the yaw/pitch are computed from.
	Eye Vector3
	// Distance is reported on the stick result.
	Distance float64
}

// NewTrackStick creates a stick that faces the given entity from eye.
func NewTrackStick(name string, priority float64, targetID string, eye Vector3) *TrackStick {
	return &TrackStick{
		modifierBase: modifierBase{name, priority, true},
		TargetID:     targetID,
		Eye:          eye,
		Distance:     DefaultStickDistance,
	}
}

// Stick implements StickModifier.
func (s *TrackStick) Stick(ctx *Context) (StickResult, error) {
	target := ctx.Previous.Element(s.TargetID)
	if target == nil {
		return StickResult{}, fmt.Errorf("entity %q not resolved yet", s.TargetID)
	}
	yaw, pitch := LookRotation(s.Eye, target.Position)
	return StickResult{Yaw: yaw, Pitch: pitch, Distance: s.Distance, Confidence: 1}, nil
}

// ShakeNudge votes a deterministic jitter derived from the frame counter:
// the same frame always produces the same offset, keeping resolution
// reproducible. Votes only on the axes whose amplitude is non-zero.
type ShakeNudge struct {
	modifierBase
	// Amplitude is the per-axis peak offset. A zero component casts no vote
	// on that axis.
	Amplitude Vector3
	// Frequency scales how fast the jitter tumbles per frame.
	Frequency float64
}

// NewShakeNudge creates a shake with the given per-axis amplitude.
func NewShakeNudge(name string, amplitude Vector3) *ShakeNudge {
	return &ShakeNudge{modifierBase: modifierBase{name, 0, true}, Amplitude: amplitude, Frequency: 1}
}

// Nudge implements NudgeModifier. Never fails.
func (n *ShakeNudge) Nudge(ctx *Context) (NudgeVote, error) {
	t := float64(ctx.Frame) * n.Frequency
	var vote NudgeVote
	if n.Amplitude.X != 0 {
		vote.X = math.Sin(t*12.9898) * n.Amplitude.X
		vote.HasX = true
	}
	if n.Amplitude.Y != 0 {
		vote.Y = math.Sin(t*78.233) * n.Amplitude.Y
		vote.HasY = true
	}
	if n.Amplitude.Z != 0 {
		vote.Z = math.Sin(t*37.719) * n.Amplitude.Z
		vote.HasZ = true
	}
	return vote, nil
}

// FuncCar adapts a plain function as a car modifier. Handy for tests and
// one-off rigs.
type FuncCar struct {
	modifierBase
	Fn func(ctx *Context) (Vector3, error)
}

// NewFuncCar wraps fn as a car modifier.
func NewFuncCar(name string, priority float64, fn func(ctx *Context) (Vector3, error)) *FuncCar {
	return &FuncCar{modifierBase{name, priority, true}, fn}
}

// CarPosition implements CarModifier.
func (c *FuncCar) CarPosition(ctx *Context) (Vector3, error) {
	return c.Fn(ctx)
}

// FuncNudge adapts a plain function as a nudge modifier.
type FuncNudge struct {
	modifierBase
	Fn func(ctx *Context) (NudgeVote, error)
}

// NewFuncNudge wraps fn as a nudge modifier.
func NewFuncNudge(name string, fn func(ctx *Context) (NudgeVote, error)) *FuncNudge {
	return &FuncNudge{modifierBase{name, 0, true}, fn}
}

// Nudge implements NudgeModifier.
func (n *FuncNudge) Nudge(ctx *Context) (NudgeVote, error) {
	return n.Fn(ctx)
}

// FuncStick adapts a plain function as a stick modifier.
type FuncStick struct {
	modifierBase
	Fn func(ctx *Context) (StickResult, error)
}

// NewFuncStick wraps fn as a stick modifier.
func NewFuncStick(name string, priority float64, fn func(ctx *Context) (StickResult, error)) *FuncStick {
	return &FuncStick{modifierBase{name, priority, true}, fn}
}

// Stick implements StickModifier.
func (s *FuncStick) Stick(ctx *Context) (StickResult, error) {
	return s.Fn(ctx)
}
