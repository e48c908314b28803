package gimbal

// ResolvedElement is one frame's concrete value tree for a registered
// element: plain data, no tags, ready for a renderer. Resolved values are
// rebuilt every frame and discarded; only Slots persists across frames
// (shared with the owning Element).
type ResolvedElement struct {
	ID   string
	Kind ElementKind
	// Position, Rotation, Scale, and Color are extracted from the resolved
	// property map for renderer convenience.
	Position Vector3
	Rotation Rotation3
	Scale    float64
	Color    Color
	// Props is the full resolved property map, including any author-defined
	// fields the renderer does not know about.
	Props map[string]any
	// Slots holds the element's asset hydration slots. Never nil.
	Slots *AssetSlots
}

// Prop returns a resolved property by key, or nil.
func (r *ResolvedElement) Prop(key string) any {
	return r.Props[key]
}

// Pose returns the element's resolved position and rotation as one value.
func (r *ResolvedElement) Pose() Pose {
	return Pose{Position: r.Position, Rotation: r.Rotation}
}

// ResolvedProjection is one frame's final camera pose for a projection,
// after the car/nudge/stick stages and hierarchy composition.
type ResolvedProjection struct {
	ResolvedElement
	// LookAt is the point the projection faces. Derived from the stick
	// result under RotationAuthority, or taken from the authored lookAt
	// property under LookAtAuthority.
	LookAt Vector3
	// HasLookAt reports whether the blueprint authored a lookAt value this
	// frame.
	HasLookAt bool
	// Distance is the stick-provided look distance.
	Distance float64
	// Confidence is the winning stick's reported confidence. Informational.
	Confidence float64
}

// Snapshot is a fully-resolved frame: every element and projection as plain
// data. Handed to the renderer and retained as Context.Previous for the
// next frame.
type Snapshot struct {
	Frame       uint64
	Elements    map[string]*ResolvedElement
	Projections map[string]*ResolvedProjection
	// Order lists element ids in registration order, for consumers that
	// need a deterministic iteration over Elements.
	Order []string
}

// Element returns the resolved element with the given id, or nil.
func (s *Snapshot) Element(id string) *ResolvedElement {
	if s == nil {
		return nil
	}
	return s.Elements[id]
}

// Projection returns the resolved projection with the given id, or nil.
func (s *Snapshot) Projection(id string) *ResolvedProjection {
	if s == nil {
		return nil
	}
	return s.Projections[id]
}

// extractPose fills the well-known pose fields of a ResolvedElement from
// its resolved property map. Defaults: origin, neutral rotation, scale 1,
// white color.
func extractPose(r *ResolvedElement) {
	r.Scale = 1
	r.Color = ColorWhite
	if pos, ok := toVector3(r.Props["position"]); ok {
		r.Position = pos
	}
	if rot, ok := toRotation3(r.Props["rotation"]); ok {
		r.Rotation = rot
	}
	if s, ok := toFloat(r.Props["scale"]); ok {
		r.Scale = s
	}
	if c, ok := r.Props["color"].(Color); ok {
		r.Color = c
	}
}
