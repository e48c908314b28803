package gimbal

import "fmt"

// Projection is a registered camera-like entity: a compiled plan for its
// authored properties (position, rotation, lookAt, direction), the car/
// nudge/stick modifier lists, an optional parent target, and bound effects.
// Singletons per id, created by Stage.RegisterProjection.
type Projection struct {
	ID string
	// TargetID names the parent projection this one composes into, or "".
	TargetID string
	// Mode selects look-at versus rotation authority for orientation.
	Mode OrientationMode
	// DefaultDistance is the stick distance used when no stick wins.
	DefaultDistance float64

	cars   []CarModifier
	nudges []NudgeModifier
	sticks []StickModifier

	plan    *Plan
	effects []boundEffect
}

// Cars returns the projection's car modifier list in registration order.
func (p *Projection) Cars() []CarModifier { return p.cars }

// Nudges returns the projection's nudge modifier list in registration order.
func (p *Projection) Nudges() []NudgeModifier { return p.nudges }

// Sticks returns the projection's stick modifier list in registration order.
func (p *Projection) Sticks() []StickModifier { return p.sticks }

// newProjection compiles a projection blueprint. Static keys: "target"
// (parent id), "car"/"nudge"/"stick" (modifier lists, held by reference),
// "orientation" (OrientationMode), "distance" (default stick distance),
// "effects".
func newProjection(id string, bp Blueprint, library *Library) (*Projection, error) {
	plan := CompileBlueprint(bp)

	p := &Projection{
		ID:              id,
		Mode:            RotationAuthority,
		DefaultDistance: DefaultStickDistance,
		plan:            plan,
	}

	if v := plan.Static("target"); v != nil {
		target, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("gimbal: projection %q: target field must be string, got %T", id, v)
		}
		p.TargetID = target
	}
	if v := plan.Static("orientation"); v != nil {
		mode, ok := v.(OrientationMode)
		if !ok {
			return nil, fmt.Errorf("gimbal: projection %q: orientation field must be OrientationMode, got %T", id, v)
		}
		p.Mode = mode
	}
	if v := plan.Static("distance"); v != nil {
		d, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("gimbal: projection %q: distance field must be numeric, got %T", id, v)
		}
		p.DefaultDistance = d
	}

	var err error
	if p.cars, err = carList(plan.Static("car")); err != nil {
		return nil, fmt.Errorf("gimbal: projection %q: %w", id, err)
	}
	if p.nudges, err = nudgeList(plan.Static("nudge")); err != nil {
		return nil, fmt.Errorf("gimbal: projection %q: %w", id, err)
	}
	if p.sticks, err = stickList(plan.Static("stick")); err != nil {
		return nil, fmt.Errorf("gimbal: projection %q: %w", id, err)
	}

	p.effects, err = bindPlanEffects(plan, library, KindProjection, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func carList(v any) ([]CarModifier, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []CarModifier:
		return val, nil
	case CarModifier:
		return []CarModifier{val}, nil
	default:
		return nil, fmt.Errorf("car field must be []CarModifier, got %T", v)
	}
}

func nudgeList(v any) ([]NudgeModifier, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []NudgeModifier:
		return val, nil
	case NudgeModifier:
		return []NudgeModifier{val}, nil
	default:
		return nil, fmt.Errorf("nudge field must be []NudgeModifier, got %T", v)
	}
}

func stickList(v any) ([]StickModifier, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []StickModifier:
		return val, nil
	case StickModifier:
		return []StickModifier{val}, nil
	default:
		return nil, fmt.Errorf("stick field must be []StickModifier, got %T", v)
	}
}

// resolveProjection evaluates one projection in its own local space: sieve
// the plan, then run the car, nudge, and stick stages, then derive the
// final orientation. Hierarchy composition and effects happen afterwards
// (see composeHierarchy and Stage.Resolve).
func resolveProjection(p *Projection, ctx *Context, pool Pool, audit *AuditLog) *ResolvedProjection {
	props := resolvePlan(p.plan, ctx, pool)

	r := &ResolvedProjection{
		ResolvedElement: ResolvedElement{
			ID:    p.ID,
			Kind:  KindProjection,
			Props: props,
			Slots: emptySlots,
		},
	}
	extractPose(&r.ResolvedElement)

	lookAt, hasLookAt := toVector3(props["lookAt"])

	// Car: winner-take-all absolute position, anchored on the authored one.
	pos := resolveCar(p.cars, ctx, r.Position, audit)
	// Nudge: averaged per-axis perturbation.
	pos = pos.Add(resolveNudge(p.nudges, ctx, audit))
	// Stick: winner-take-all orientation.
	stick := resolveStick(p.sticks, ctx, p.DefaultDistance, audit)

	rot, look := deriveOrientation(p.Mode, pos, lookAt, hasLookAt, stick)

	r.Position = pos
	r.Rotation = r.Rotation.Add(rot)
	r.LookAt = look
	r.HasLookAt = hasLookAt
	r.Distance = stick.Distance
	r.Confidence = stick.Confidence
	return r
}

// emptySlots backs projections, which carry no assets of their own.
var emptySlots = &AssetSlots{
	Texture: &AssetSlot{Status: AssetReady, kind: assetTexture},
	Font:    &AssetSlot{Status: AssetReady, kind: assetFont},
}
