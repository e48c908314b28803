package gimbal

import (
	"math"
	"testing"
)

func TestCameraSpaceIdentity(t *testing.T) {
	got := cameraSpace(Vector3{1, 2, -3}, Vector3{}, Rotation3{})
	if got != (Vector3{1, 2, -3}) {
		t.Errorf("identity camera = %v, want unchanged", got)
	}
}

func TestCameraSpaceTranslation(t *testing.T) {
	got := cameraSpace(Vector3{5, 0, 0}, Vector3{5, 0, 10}, Rotation3{})
	if got != (Vector3{0, 0, -10}) {
		t.Errorf("translated = %v, want {0 0 -10}", got)
	}
}

func TestCameraSpaceYawUndo(t *testing.T) {
	// A camera yawed toward -X sees a point on -X as straight ahead.
	world := Vector3{-10, 0, 0}
	got := cameraSpace(world, Vector3{}, Rotation3{Yaw: math.Pi / 2})
	if !vecApprox(got, Vector3{0, 0, -10}, epsilon) {
		t.Errorf("yawed camera space = %v, want {0 0 -10}", got)
	}
}

func TestCameraSpaceInvertsRotationApply(t *testing.T) {
	rot := Rotation3{Yaw: 0.7, Pitch: -0.2, Roll: 0.4}
	local := Vector3{1, 2, -3}
	world := rot.Apply(local).Add(Vector3{5, 6, 7})
	back := cameraSpace(world, Vector3{5, 6, 7}, rot)
	if !vecApprox(back, local, 1e-9) {
		t.Errorf("round trip = %v, want %v", back, local)
	}
}

func TestCameraSpaceForwardTargetIsAhead(t *testing.T) {
	// Whatever the pose, the point Forward(yaw,pitch)*d ahead of the
	// camera lands on the -Z axis at distance d in camera space.
	pos := Vector3{3, 1, -2}
	yaw, pitch := 1.1, 0.3
	world := pos.Add(Forward(yaw, pitch).Scale(8))
	got := cameraSpace(world, pos, Rotation3{Yaw: yaw, Pitch: pitch})
	if !vecApprox(got, Vector3{0, 0, -8}, 1e-9) {
		t.Errorf("ahead point = %v, want {0 0 -8}", got)
	}
}

func TestDrawOrderUsesSnapshotOrder(t *testing.T) {
	snap := &Snapshot{
		Elements: map[string]*ResolvedElement{
			"a": {ID: "a"},
			"b": {ID: "b"},
			"c": {ID: "c"},
		},
		Order: []string{"c", "a", "b"},
	}
	got := drawOrder(snap)
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDrawOrderFallsBackToSortedIDs(t *testing.T) {
	snap := &Snapshot{
		Elements: map[string]*ResolvedElement{
			"b": {ID: "b"},
			"a": {ID: "a"},
		},
	}
	got := drawOrder(snap)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("order = %v, want sorted ids", got)
	}
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer("main")
	if r.ProjectionID != "main" {
		t.Errorf("ProjectionID = %q", r.ProjectionID)
	}
	if !approxEqual(r.FOV, 60*math.Pi/180, epsilon) {
		t.Errorf("FOV = %v, want 60 degrees", r.FOV)
	}
	if r.Near != 0.1 {
		t.Errorf("Near = %v, want 0.1", r.Near)
	}
}
