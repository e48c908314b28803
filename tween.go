package gimbal

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Eased returns a ComputeFunc that interpolates from one value to another
// over the playback loop using a gween easing function. Pure: the value
// depends only on the context's Progress, so resolution stays
// deterministic.
func Eased(from, to float64, fn ease.TweenFunc) ComputeFunc {
	return func(ctx *Context, pool Pool) any {
		return float64(fn(float32(ctx.Progress), float32(from), float32(to-from), 1))
	}
}

// Lerp3 returns a ComputeFunc that eases a Vector3 from one point to
// another over the playback loop.
func Lerp3(from, to Vector3, fn ease.TweenFunc) ComputeFunc {
	return func(ctx *Context, pool Pool) any {
		t := float32(ctx.Progress)
		return Vector3{
			X: float64(fn(t, float32(from.X), float32(to.X-from.X), 1)),
			Y: float64(fn(t, float32(from.Y), float32(to.Y-from.Y), 1)),
			Z: float64(fn(t, float32(from.Z), float32(to.Z-from.Z), 1)),
		}
	}
}

// Glide is a car modifier that tweens the camera between two points over a
// fixed duration. Unlike Eased it is stateful: Stage.Update advances the
// underlying gween tweens through the Advancer interface, and CarPosition
// reports the current point. After the tween completes Glide keeps
// reporting the destination until retargeted with GlideTo.
type Glide struct {
	name     string
	priority float64
	// Enabled gates the modifier. Defaults to true.
	Enabled bool

	current    Vector3
	tx, ty, tz *gween.Tween
	done       bool
}

// NewGlide creates a glide car starting at from, already moving toward to.
func NewGlide(name string, priority float64, from, to Vector3, duration float32, fn ease.TweenFunc) *Glide {
	g := &Glide{name: name, priority: priority, Enabled: true, current: from}
	g.retarget(to, duration, fn)
	return g
}

// GlideTo starts a new tween from the current position to the given point.
func (g *Glide) GlideTo(to Vector3, duration float32, fn ease.TweenFunc) {
	g.retarget(to, duration, fn)
}

func (g *Glide) retarget(to Vector3, duration float32, fn ease.TweenFunc) {
	g.tx = gween.New(float32(g.current.X), float32(to.X), duration, fn)
	g.ty = gween.New(float32(g.current.Y), float32(to.Y), duration, fn)
	g.tz = gween.New(float32(g.current.Z), float32(to.Z), duration, fn)
	g.done = false
}

// Advance steps the tween by dt seconds. Called by Stage.Update.
func (g *Glide) Advance(dt float64) {
	if g.done {
		return
	}
	x, doneX := g.tx.Update(float32(dt))
	y, doneY := g.ty.Update(float32(dt))
	z, doneZ := g.tz.Update(float32(dt))
	g.current = Vector3{float64(x), float64(y), float64(z)}
	g.done = doneX && doneY && doneZ
}

// Name implements Modifier.
func (g *Glide) Name() string { return g.name }

// Priority implements Modifier.
func (g *Glide) Priority() float64 { return g.priority }

// Active implements Modifier.
func (g *Glide) Active() bool { return g.Enabled }

// Done reports whether the current tween has completed.
func (g *Glide) Done() bool { return g.done }

// CarPosition reports the tween's current point. Never fails.
func (g *Glide) CarPosition(ctx *Context) (Vector3, error) {
	return g.current, nil
}
