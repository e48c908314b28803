package gimbal

import "sort"

// Modifier is the base contract shared by every rig provider. Modifiers are
// supplied by the author, held by reference in priority-sorted lists, and
// never mutated by the pipeline.
type Modifier interface {
	// Name identifies the modifier in audit logs and aggregated errors.
	Name() string
	// Active reports whether the modifier should be consulted this frame.
	// Inactive modifiers are skipped without recording anything.
	Active() bool
	// Priority ranks the modifier; higher runs first. Ties keep
	// registration order.
	Priority() float64
}

// CarModifier provides an absolute position. The highest-priority active
// car that returns a nil error wins outright.
type CarModifier interface {
	Modifier
	CarPosition(ctx *Context) (Vector3, error)
}

// NudgeModifier votes a partial per-axis position offset. Unlike cars,
// every active nudge that succeeds contributes; votes are averaged per
// axis.
type NudgeModifier interface {
	Modifier
	Nudge(ctx *Context) (NudgeVote, error)
}

// StickModifier provides an orientation and look distance. Winner-take-all
// by priority, like cars.
type StickModifier interface {
	Modifier
	Stick(ctx *Context) (StickResult, error)
}

// NudgeVote is a partial per-axis offset. A nudge may vote on any subset of
// axes; axes it does not vote on are excluded from averaging entirely
// rather than counted as zero-valued samples.
type NudgeVote struct {
	X, Y, Z          float64
	HasX, HasY, HasZ bool
}

// VoteX returns a vote on the X axis only.
func VoteX(x float64) NudgeVote { return NudgeVote{X: x, HasX: true} }

// VoteY returns a vote on the Y axis only.
func VoteY(y float64) NudgeVote { return NudgeVote{Y: y, HasY: true} }

// VoteZ returns a vote on the Z axis only.
func VoteZ(z float64) NudgeVote { return NudgeVote{Z: z, HasZ: true} }

// VoteXYZ returns a vote on all three axes.
func VoteXYZ(x, y, z float64) NudgeVote {
	return NudgeVote{X: x, Y: y, Z: z, HasX: true, HasY: true, HasZ: true}
}

// StickResult is an orientation produced by a stick modifier: yaw/pitch/roll
// in radians plus the distance at which the look point is projected.
// Confidence is informational and does not affect selection.
type StickResult struct {
	Yaw, Pitch, Roll float64
	Distance         float64
	Confidence       float64
}

// sortModifiers returns a copy of mods ordered by descending priority.
// The sort is stable: equal priorities keep their registration order, which
// makes tie-breaking deterministic across runs.
func sortModifiers[M Modifier](mods []M) []M {
	out := make([]M, len(mods))
	copy(out, mods)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() > out[j].Priority()
	})
	return out
}
