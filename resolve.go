package gimbal

// Resolve evaluates a compiled dynamic (or a raw blueprint fragment) against
// the current frame, returning the fully unwrapped value tree. A pure
// function of its inputs: the same tree and a structurally-equal context
// always yield structurally-equal output, and the input tree is never
// mutated.
//
// Static nodes return their held value by reference. Computed nodes are
// invoked and their return value is resolved again, so a compute may return
// another dynamic, a function, or a fresh nested map. Plain maps recurse
// field-wise; primitives and slices pass through unchanged.
func Resolve(v any, ctx *Context, pool Pool) any {
	switch node := v.(type) {
	case *Dynamic:
		switch node.kind {
		case dynStatic:
			return node.value
		case dynComputed:
			return Resolve(node.compute(ctx, pool), ctx, pool)
		default: // dynBranch
			out := make(map[string]any, len(node.fields))
			for k, child := range node.fields {
				out[k] = Resolve(child, ctx, pool)
			}
			return out
		}
	case ComputeFunc:
		return Resolve(node(ctx, pool), ctx, pool)
	case func(ctx *Context, pool Pool) any:
		return Resolve(node(ctx, pool), ctx, pool)
	case Blueprint:
		return resolveMap(map[string]any(node), ctx, pool)
	case map[string]any:
		return resolveMap(node, ctx, pool)
	default:
		return v
	}
}

func resolveMap(m map[string]any, ctx *Context, pool Pool) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Resolve(v, ctx, pool)
	}
	return out
}

// resolvePlan resolves every dynamic field of a compiled plan into a fresh
// property map. Static fields are not included; they live on the owning
// Element or Projection.
func resolvePlan(plan *Plan, ctx *Context, pool Pool) map[string]any {
	props := make(map[string]any, len(plan.dynamics))
	for key, dyn := range plan.dynamics {
		props[key] = Resolve(dyn, ctx, pool)
	}
	return props
}

// --- Property coercion ---

// toFloat converts the numeric types a blueprint value may carry.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// toVector3 coerces a resolved property into a Vector3. Accepts a Vector3
// literal or a map with numeric x/y/z fields (missing fields are zero).
func toVector3(v any) (Vector3, bool) {
	switch val := v.(type) {
	case Vector3:
		return val, true
	case map[string]any:
		var out Vector3
		ok := false
		if x, has := toFloat(val["x"]); has {
			out.X, ok = x, true
		}
		if y, has := toFloat(val["y"]); has {
			out.Y, ok = y, true
		}
		if z, has := toFloat(val["z"]); has {
			out.Z, ok = z, true
		}
		return out, ok
	}
	return Vector3{}, false
}

// toRotation3 coerces a resolved property into a Rotation3. Accepts a
// Rotation3 literal or a map with numeric yaw/pitch/roll fields.
func toRotation3(v any) (Rotation3, bool) {
	switch val := v.(type) {
	case Rotation3:
		return val, true
	case map[string]any:
		var out Rotation3
		ok := false
		if yaw, has := toFloat(val["yaw"]); has {
			out.Yaw, ok = yaw, true
		}
		if pitch, has := toFloat(val["pitch"]); has {
			out.Pitch, ok = pitch, true
		}
		if roll, has := toFloat(val["roll"]); has {
			out.Roll, ok = roll, true
		}
		return out, ok
	}
	return Rotation3{}, false
}
