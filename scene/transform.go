package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform is an entity's placement in world space.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func IdentityTransform() Transform {
	return Transform{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix is the local-to-world matrix T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	s := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).Mul4(t.Rotation.Normalize().Mat4()).Mul4(s)
}

func (t Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, t.Matrix())
}

func (t Transform) InverseTransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, t.Matrix().Inv())
}
