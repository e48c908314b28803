package gimbal

import (
	"errors"
	"fmt"
)

// Chain wraps an ordered list of modifiers of the same capability and
// forwards to the first active one that succeeds, presenting the result
// under the chain's own name and priority. If every inner modifier is
// inactive or fails, the chain reports a single aggregated failure.
//
// Chain implements all three capability interfaces; inner modifiers that
// lack the capability being exercised are skipped.
type Chain struct {
	name     string
	priority float64
	mods     []Modifier
	// Enabled gates the whole chain. Defaults to true.
	Enabled bool
}

// NewChain creates a chain over the given modifiers, tried in order.
func NewChain(name string, priority float64, mods ...Modifier) *Chain {
	return &Chain{name: name, priority: priority, mods: mods, Enabled: true}
}

// Name returns the chain's own name; inner names appear only in failures.
func (c *Chain) Name() string { return c.name }

// Priority returns the chain's own priority, overriding the inner ones.
func (c *Chain) Priority() float64 { return c.priority }

// Active reports whether the chain is enabled and any inner modifier is
// active.
func (c *Chain) Active() bool {
	if !c.Enabled {
		return false
	}
	for _, m := range c.mods {
		if m.Active() {
			return true
		}
	}
	return false
}

// CarPosition forwards to the first active inner car that succeeds.
func (c *Chain) CarPosition(ctx *Context) (Vector3, error) {
	var errs []error
	for _, m := range c.mods {
		car, ok := m.(CarModifier)
		if !ok || !m.Active() {
			continue
		}
		pos, err := car.CarPosition(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Name(), err))
			continue
		}
		return pos, nil
	}
	return Vector3{}, c.exhausted(errs)
}

// Nudge forwards to the first active inner nudge that succeeds.
func (c *Chain) Nudge(ctx *Context) (NudgeVote, error) {
	var errs []error
	for _, m := range c.mods {
		nudge, ok := m.(NudgeModifier)
		if !ok || !m.Active() {
			continue
		}
		vote, err := nudge.Nudge(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Name(), err))
			continue
		}
		return vote, nil
	}
	return NudgeVote{}, c.exhausted(errs)
}

// Stick forwards to the first active inner stick that succeeds.
func (c *Chain) Stick(ctx *Context) (StickResult, error) {
	var errs []error
	for _, m := range c.mods {
		stick, ok := m.(StickModifier)
		if !ok || !m.Active() {
			continue
		}
		res, err := stick.Stick(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Name(), err))
			continue
		}
		return res, nil
	}
	return StickResult{}, c.exhausted(errs)
}

// exhausted builds the aggregated failure for a chain whose inner list
// produced no success.
func (c *Chain) exhausted(errs []error) error {
	if len(errs) == 0 {
		return fmt.Errorf("gimbal: chain %q: no active modifier", c.name)
	}
	return fmt.Errorf("gimbal: chain %q exhausted: %w", c.name, errors.Join(errs...))
}

// Fallback wraps exactly two modifiers: a primary tried first and a
// secondary tried when the primary is inactive or fails. The fallback is
// active if either inner modifier is active, and fails only when both are
// inactive or both fail.
type Fallback struct {
	name               string
	priority           float64
	primary, secondary Modifier
	// Enabled gates the pair. Defaults to true.
	Enabled bool
}

// NewFallback creates a primary/secondary fallback pair.
func NewFallback(name string, priority float64, primary, secondary Modifier) *Fallback {
	return &Fallback{name: name, priority: priority, primary: primary, secondary: secondary, Enabled: true}
}

// Name returns the fallback's own name.
func (f *Fallback) Name() string { return f.name }

// Priority returns the fallback's own priority.
func (f *Fallback) Priority() float64 { return f.priority }

// Active reports whether either inner modifier is active.
func (f *Fallback) Active() bool {
	return f.Enabled && (f.primary.Active() || f.secondary.Active())
}

// CarPosition tries the primary car, then the secondary.
func (f *Fallback) CarPosition(ctx *Context) (Vector3, error) {
	var errs []error
	for _, m := range [2]Modifier{f.primary, f.secondary} {
		car, ok := m.(CarModifier)
		if !ok || !m.Active() {
			continue
		}
		pos, err := car.CarPosition(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Name(), err))
			continue
		}
		return pos, nil
	}
	return Vector3{}, f.exhausted(errs)
}

// Nudge tries the primary nudge, then the secondary.
func (f *Fallback) Nudge(ctx *Context) (NudgeVote, error) {
	var errs []error
	for _, m := range [2]Modifier{f.primary, f.secondary} {
		nudge, ok := m.(NudgeModifier)
		if !ok || !m.Active() {
			continue
		}
		vote, err := nudge.Nudge(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Name(), err))
			continue
		}
		return vote, nil
	}
	return NudgeVote{}, f.exhausted(errs)
}

// Stick tries the primary stick, then the secondary.
func (f *Fallback) Stick(ctx *Context) (StickResult, error) {
	var errs []error
	for _, m := range [2]Modifier{f.primary, f.secondary} {
		stick, ok := m.(StickModifier)
		if !ok || !m.Active() {
			continue
		}
		res, err := stick.Stick(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Name(), err))
			continue
		}
		return res, nil
	}
	return StickResult{}, f.exhausted(errs)
}

func (f *Fallback) exhausted(errs []error) error {
	if len(errs) == 0 {
		return fmt.Errorf("gimbal: fallback %q: both modifiers inactive", f.name)
	}
	return fmt.Errorf("gimbal: fallback %q exhausted: %w", f.name, errors.Join(errs...))
}
