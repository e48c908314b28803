package gimbal

// DefaultStickDistance is the look distance used when no stick modifier
// succeeds and the projection does not configure its own default.
const DefaultStickDistance = 10.0

// OrientationMode selects how a projection's final orientation is derived
// from the stick result and the authored lookAt property.
type OrientationMode uint8

const (
	// RotationAuthority: the stick's yaw/pitch directly orient the
	// projection, and the look point is projected forward at the stick's
	// distance. The default mode.
	RotationAuthority OrientationMode = iota
	// LookAtAuthority: the authored lookAt point drives yaw/pitch; the
	// stick result only contributes roll. Falls back to RotationAuthority
	// behavior on frames where no lookAt is authored.
	LookAtAuthority
)

// resolveCar scans cars in descending priority order and returns the first
// active success. Inactive cars are skipped silently; failures are recorded
// to the audit log (when non-nil) and the scan continues. If nothing
// succeeds the anchor position is kept unchanged.
func resolveCar(cars []CarModifier, ctx *Context, anchor Vector3, audit *AuditLog) Vector3 {
	for _, car := range sortModifiers(cars) {
		if !car.Active() {
			continue
		}
		pos, err := car.CarPosition(ctx)
		if err != nil {
			audit.record(car.Name(), err)
			continue
		}
		return pos
	}
	return anchor
}

// resolveNudge collects a partial vote from every active nudge that
// succeeds and returns the per-axis arithmetic mean. Each axis is averaged
// over the votes cast for that axis only; an axis nobody voted on
// contributes zero offset.
func resolveNudge(nudges []NudgeModifier, ctx *Context, audit *AuditLog) Vector3 {
	var sum Vector3
	var nx, ny, nz int
	for _, nudge := range nudges {
		if !nudge.Active() {
			continue
		}
		vote, err := nudge.Nudge(ctx)
		if err != nil {
			audit.record(nudge.Name(), err)
			continue
		}
		if vote.HasX {
			sum.X += vote.X
			nx++
		}
		if vote.HasY {
			sum.Y += vote.Y
			ny++
		}
		if vote.HasZ {
			sum.Z += vote.Z
			nz++
		}
	}
	var out Vector3
	if nx > 0 {
		out.X = sum.X / float64(nx)
	}
	if ny > 0 {
		out.Y = sum.Y / float64(ny)
	}
	if nz > 0 {
		out.Z = sum.Z / float64(nz)
	}
	return out
}

// resolveStick scans sticks in descending priority order and returns the
// first active success, exactly like resolveCar. With no winner the result
// is the documented default: yaw 0, pitch 0, the given default distance.
func resolveStick(sticks []StickModifier, ctx *Context, defaultDistance float64, audit *AuditLog) StickResult {
	for _, stick := range sortModifiers(sticks) {
		if !stick.Active() {
			continue
		}
		res, err := stick.Stick(ctx)
		if err != nil {
			audit.record(stick.Name(), err)
			continue
		}
		return res
	}
	return StickResult{Distance: defaultDistance}
}

// deriveOrientation combines the stick result with the authored lookAt
// according to the projection's orientation mode, producing the final
// rotation and look point for a projection at the given position.
func deriveOrientation(mode OrientationMode, position Vector3, lookAt Vector3, hasLookAt bool, stick StickResult) (Rotation3, Vector3) {
	if mode == LookAtAuthority && hasLookAt {
		yaw, pitch := LookRotation(position, lookAt)
		return Rotation3{Yaw: yaw, Pitch: pitch, Roll: stick.Roll}, lookAt
	}
	rot := Rotation3{Yaw: stick.Yaw, Pitch: stick.Pitch, Roll: stick.Roll}
	look := position.Add(Forward(stick.Yaw, stick.Pitch).Scale(stick.Distance))
	return rot, look
}
