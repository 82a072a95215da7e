package frame

import (
	"math"
	"testing"

	"github.com/frametree/tfcache/geom"
)

func TestTransform_MulChainsTranslation(t *testing.T) {
	mapToOdom := Transform{Translation: geom.Vector3{X: 1}, Rotation: geom.Identity(), Parent: "/map", Child: "/odom"}
	odomToBase := Transform{Translation: geom.Vector3{Y: 1}, Rotation: geom.Identity(), Parent: "/odom", Child: "/base"}

	got := mapToOdom.Mul(odomToBase)
	if got.Translation.X != 1 || got.Translation.Y != 1 {
		t.Fatalf("expected (1,1,0), got %+v", got.Translation)
	}
	if got.Parent != "/map" || got.Child != "/base" {
		t.Fatalf("expected parent=/map child=/base, got parent=%s child=%s", got.Parent, got.Child)
	}
}

func TestTransform_InverseRoundTrips(t *testing.T) {
	tr := Transform{
		Translation: geom.Vector3{X: 1, Y: 2, Z: 3},
		Rotation:    geom.Quaternion{Z: 0.7071067811865476, W: 0.7071067811865476},
		Parent:      "/map",
		Child:       "/base",
	}

	id := tr.Mul(tr.Inverse())
	if math.Abs(id.Translation.X) > 1e-9 || math.Abs(id.Translation.Y) > 1e-9 || math.Abs(id.Translation.Z) > 1e-9 {
		t.Fatalf("expected zero translation, got %+v", id.Translation)
	}
	if math.Abs(id.Rotation.W-1) > 1e-9 {
		t.Fatalf("expected identity rotation, got %+v", id.Rotation)
	}
}

func TestTransform_TransformPoint(t *testing.T) {
	tr := Transform{Translation: geom.Vector3{X: 1, Y: 2, Z: 3}, Rotation: geom.Identity()}
	got := tr.TransformPoint(geom.Vector3{X: 1})
	if got != (geom.Vector3{X: 2, Y: 2, Z: 3}) {
		t.Fatalf("expected (2,2,3), got %+v", got)
	}
}
