package frame

import "github.com/frametree/tfcache/geom"

// Transform is both spec's TransformStorage (a raw sample on one edge) and
// its StampedTransform (a composed lookup result) — the two differ only in
// how Parent/Child are populated, not in shape, so one struct serves both.
//
// Parent and Child are frame handles: plain canonical IDs rather than
// pointers into Registry. This removes the parent/child/registry reference
// cycle spec §9 calls out and keeps TransformStorage trivially comparable
// and copyable; Frame and Child outlive any individual sample regardless.
type Transform struct {
	Translation geom.Vector3
	Rotation    geom.Quaternion
	Stamp       Stamp
	Parent      ID
	Child       ID
}

// StampedVector3 is spec §6.3's out_stamped shape for transform_point: the
// transformed point together with the frame it now lives in and the time
// it was produced at, so a caller chaining lookups doesn't have to thread
// those two alongside the bare geometry itself.
type StampedVector3 struct {
	Point geom.Vector3
	Frame ID
	Stamp Stamp
}

// StampedPose is transform_pose's out_stamped shape, the Pose analogue of
// StampedVector3.
type StampedPose struct {
	Pose  geom.Pose
	Frame ID
	Stamp Stamp
}

// Identity returns a zero-translation, zero-rotation transform stamped at t
// with the given parent/child handles.
func Identity(parent, child ID, t Stamp) Transform {
	return Transform{Rotation: geom.Identity(), Stamp: t, Parent: parent, Child: child}
}

// Mul composes transforms: applying t.Mul(o) means "o, then t" — i.e. if t
// maps frame B into frame A and o maps frame C into frame B, t.Mul(o) maps
// frame C into frame A. Parent/Child of the result follow (t.Parent, o.Child).
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		Translation: t.Translation.Add(t.Rotation.Rotate(o.Translation)),
		Rotation:    t.Rotation.Mul(o.Rotation),
		Stamp:       t.Stamp,
		Parent:      t.Parent,
		Child:       o.Child,
	}
}

// Inverse returns the rigid inverse: (-q^-1*t, q^-1), per spec §4.5.
// Parent/Child are swapped.
func (t Transform) Inverse() Transform {
	qInv := t.Rotation.Conjugate()
	return Transform{
		Translation: qInv.Rotate(t.Translation.Scale(-1)),
		Rotation:    qInv,
		Stamp:       t.Stamp,
		Parent:      t.Child,
		Child:       t.Parent,
	}
}

// TransformPoint applies the rigid transform to a point.
func (t Transform) TransformPoint(p geom.Vector3) geom.Vector3 {
	return t.Translation.Add(t.Rotation.Rotate(p))
}

// TransformPose applies the rigid transform to a pose (translation+rotation).
func (t Transform) TransformPose(p geom.Pose) geom.Pose {
	return geom.Pose{
		Translation: t.TransformPoint(p.Translation),
		Rotation:    t.Rotation.Mul(p.Rotation),
	}
}
