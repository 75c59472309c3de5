package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTransform_PointRoundtrip(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{3, -1, 7},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(30), mgl32.Vec3{0, 1, 0}),
		Scale:    mgl32.Vec3{2, 0.5, 1.5},
	}
	p := mgl32.Vec3{1.25, -4, 0.5}
	if got := tr.InverseTransformPoint(tr.TransformPoint(p)); !vecNear(got, p) {
		t.Fatalf("roundtrip = %v, want %v", got, p)
	}
}

func TestTransform_Order(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{10, 0, 0},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
		Scale:    mgl32.Vec3{2, 2, 2},
	}
	// scale, then rotate +x onto -z, then translate
	if got := tr.TransformPoint(mgl32.Vec3{1, 0, 0}); !vecNear(got, mgl32.Vec3{10, 0, -2}) {
		t.Fatalf("got %v, want [10 0 -2]", got)
	}
}

func TestIdentityTransform(t *testing.T) {
	p := mgl32.Vec3{4, 5, 6}
	if got := IdentityTransform().TransformPoint(p); got != p {
		t.Fatalf("identity moved %v to %v", p, got)
	}
}
