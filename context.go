package gimbal

import "math"

// Settings is the author-supplied scene settings bundle, visible to every
// ComputeFunc through the Context. Gimbal never writes to it.
type Settings map[string]any

// Pool maps entity ids to their already-resolved value for the current
// frame, enabling cross-references such as "look at entity X". Values are
// *ResolvedElement or *ResolvedProjection. Entities resolve in registration
// order, so a pool lookup only finds siblings registered earlier; later
// siblings are available through Context.Previous.
type Pool map[string]any

// Context is the read-only per-frame input bundle fed to every ComputeFunc
// and rig provider. A fresh Context is built each frame; nothing in it is
// mutated during resolution.
type Context struct {
	// Time is seconds since the stage started.
	Time float64
	// Delta is seconds since the previous frame.
	Delta float64
	// Frame is the number of frames resolved so far.
	Frame uint64
	// Progress is the normalized loop progress in [0, 1), derived from the
	// playback Duration and Loop settings. Zero when Duration is zero.
	Progress float64
	// Settings is the scene settings bundle.
	Settings Settings
	// Previous is the prior frame's fully-resolved snapshot. Nil on the
	// first frame.
	Previous *Snapshot
}

// Playback configures how loop progress is derived from wall time.
type Playback struct {
	// Duration is the loop length in seconds. Zero means progress stays 0.
	Duration float64
	// Loop wraps progress back to 0 at Duration; when false progress clamps
	// at 1 once Duration has elapsed.
	Loop bool
}

// progress derives normalized loop progress for the given elapsed time.
func (p Playback) progress(elapsed float64) float64 {
	if p.Duration <= 0 {
		return 0
	}
	t := elapsed / p.Duration
	if p.Loop {
		t = t - math.Floor(t)
	} else if t > 1 {
		t = 1
	}
	return t
}
