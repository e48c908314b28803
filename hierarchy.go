package gimbal

import "fmt"

// validateTarget checks a projection's parent reference at registration:
// the target must exist, must not be the projection itself, and must not
// close a cycle through the existing target chain. Walks the chain with a
// visited set so a corrupt registry can never hang the walk.
func validateTarget(id, targetID string, projections map[string]*Projection) error {
	if targetID == "" {
		return nil
	}
	if targetID == id {
		return fmt.Errorf("gimbal: projection %q targets itself", id)
	}
	if _, ok := projections[targetID]; !ok {
		return fmt.Errorf("gimbal: projection %q targets unregistered projection %q", id, targetID)
	}

	visited := map[string]bool{id: true}
	for cur := targetID; cur != ""; {
		if visited[cur] {
			return fmt.Errorf("gimbal: projection %q would close a target cycle through %q", id, cur)
		}
		visited[cur] = true
		parent, ok := projections[cur]
		if !ok {
			return nil // chain ends at an id registered later; nothing to walk
		}
		cur = parent.TargetID
	}
	return nil
}

// composeHierarchy runs the second resolution pass: every projection with a
// parent target has its local pose composed into the parent's space — the
// local position rotated by the parent's rotation and translated by the
// parent's position, with yaw/pitch/roll summed. The parent pose is looked
// up in the current frame's pool first, then the previous snapshot, so
// registration order within a frame does not matter.
//
// Chains compose root-first so grandchildren see their parent's already-
// composed pose.
func composeHierarchy(projections map[string]*Projection, resolved map[string]*ResolvedProjection, previous *Snapshot) {
	composed := make(map[string]bool, len(resolved))
	var compose func(id string)
	compose = func(id string) {
		if composed[id] {
			return
		}
		composed[id] = true

		p := projections[id]
		r := resolved[id]
		if p == nil || r == nil || p.TargetID == "" {
			return
		}

		parent := resolved[p.TargetID]
		if parent != nil {
			compose(p.TargetID)
		}
		pp, ok := parentPose(p.TargetID, parent, previous)
		if !ok {
			return // parent absent this frame and last; keep local pose
		}

		r.Position = pp.Rotation.Apply(r.Position).Add(pp.Position)
		r.Rotation = r.Rotation.Add(pp.Rotation)
		r.LookAt = pp.Rotation.Apply(r.LookAt).Add(pp.Position)
	}
	for id := range resolved {
		compose(id)
	}
}

// parentPose returns the parent's resolved pose: the current frame's value
// when available, otherwise the previous snapshot's.
func parentPose(id string, current *ResolvedProjection, previous *Snapshot) (Pose, bool) {
	if current != nil {
		return current.Pose(), true
	}
	if prev := previous.Projection(id); prev != nil {
		return prev.Pose(), true
	}
	return Pose{}, false
}
