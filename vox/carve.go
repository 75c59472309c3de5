package vox

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	minVoxelSize = 0.0001
	minScale     = 0.0001
)

// LossyScale returns the length of each basis column of m, which is the
// world scale of an object with local-to-world transform m.
func LossyScale(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()}
}

// CarveSphere deactivates every active voxel whose center lies within
// worldRadius of worldPoint and returns how many were deactivated.
//
// The radius is converted to voxel units with the largest world-scale axis,
// so under non-uniform scale the carved region never exceeds the requested
// world sphere. Voxel centers sit on integer coordinates in local voxel space.
func CarveSphere(g *VoxelGrid, worldPoint mgl32.Vec3, worldRadius float32, localToWorld mgl32.Mat4, voxelSize float32) int {
	if g == nil {
		return 0
	}
	voxelSize = max(voxelSize, minVoxelSize)

	local := mgl32.TransformCoordinate(worldPoint, localToWorld.Inv())
	c := local.Mul(1 / voxelSize)

	s := LossyScale(localToWorld)
	scaleMax := max(s[0], s[1], s[2], minScale)

	r := worldRadius / (voxelSize * scaleMax)
	r2 := r * r

	var lo, hi [3]int
	for a := 0; a < 3; a++ {
		lo[a] = int(math.Floor(float64(c[a] - r - 0.5)))
		hi[a] = int(math.Ceil(float64(c[a] + r + 0.5)))
	}

	carved := 0
	for z := lo[2]; z <= hi[2]; z++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for x := lo[0]; x <= hi[0]; x++ {
				if !g.InBounds(x, y, z) {
					continue
				}
				dx := float32(x) - c[0]
				dy := float32(y) - c[1]
				dz := float32(z) - c[2]
				if dx*dx+dy*dy+dz*dz > r2 {
					continue
				}
				i := g.ToIndex(x, y, z)
				if !g.Voxels[i].Active {
					continue
				}
				g.Voxels[i].Active = false
				carved++
			}
		}
	}
	return carved
}
