package gimbal

import "math"

// Vector3 is a 3D vector used for positions, offsets, and directions
// throughout the API.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of v and o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v with every component multiplied by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the Euclidean length of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Rotation3 is an orientation as yaw/pitch/roll Euler angles in radians.
// Yaw rotates about +Y, pitch about +X, roll about +Z. The neutral forward
// direction is -Z (see Forward).
type Rotation3 struct {
	Yaw, Pitch, Roll float64
}

// Add returns the component-wise sum of r and o.
func (r Rotation3) Add(o Rotation3) Rotation3 {
	return Rotation3{r.Yaw + o.Yaw, r.Pitch + o.Pitch, r.Roll + o.Roll}
}

// Apply rotates v by r, applying roll, then pitch, then yaw.
func (r Rotation3) Apply(v Vector3) Vector3 {
	// Roll about +Z.
	sr, cr := math.Sincos(r.Roll)
	x := cr*v.X - sr*v.Y
	y := sr*v.X + cr*v.Y
	z := v.Z

	// Pitch about +X.
	sp, cp := math.Sincos(r.Pitch)
	y, z = cp*y-sp*z, sp*y+cp*z

	// Yaw about +Y.
	sy, cy := math.Sincos(r.Yaw)
	x, z = cy*x+sy*z, -sy*x+cy*z

	return Vector3{x, y, z}
}

// Forward returns the unit direction faced by a yaw/pitch pair. With
// yaw=0, pitch=0 the result is exactly (0, 0, -1); positive pitch looks up.
func Forward(yaw, pitch float64) Vector3 {
	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)
	return Vector3{-sy * cp, sp, -cy * cp}
}

// LookRotation returns the yaw and pitch that face from eye toward target.
// The inverse of Forward; roll is always zero. If eye and target coincide
// the result is the neutral orientation.
func LookRotation(eye, target Vector3) (yaw, pitch float64) {
	d := target.Sub(eye)
	if d.X == 0 && d.Y == 0 && d.Z == 0 {
		return 0, 0
	}
	yaw = math.Atan2(-d.X, -d.Z)
	pitch = math.Atan2(d.Y, math.Hypot(d.X, d.Z))
	return yaw, pitch
}

// Pose is a resolved position and orientation pair.
type Pose struct {
	Position Vector3
	Rotation Rotation3
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default element tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ElementKind distinguishes rendering behavior for a registered element.
// A closed set: the renderer matches exhaustively and panics on anything
// outside it.
type ElementKind uint8

const (
	KindSprite     ElementKind = iota // textured camera-facing billboard
	KindPanel                         // untextured tinted quad
	KindText                          // text rendered with a hydrated font face
	KindProjection                    // camera-like entity (never drawn itself)
)

// String returns the kind name for error messages and debug output.
func (k ElementKind) String() string {
	switch k {
	case KindSprite:
		return "sprite"
	case KindPanel:
		return "panel"
	case KindText:
		return "text"
	case KindProjection:
		return "projection"
	default:
		return "unknown"
	}
}
