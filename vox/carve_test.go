package vox

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// checkSphere verifies that exactly the voxels within r of c were removed.
func checkSphere(t *testing.T, g *VoxelGrid, c [3]int, r float32) {
	t.Helper()
	for i, v := range g.Voxels {
		x, y, z := g.ToCoords(i)
		dx, dy, dz := float32(x-c[0]), float32(y-c[1]), float32(z-c[2])
		inside := dx*dx+dy*dy+dz*dz <= r*r
		if v.Active == inside {
			t.Fatalf("voxel (%d,%d,%d) active=%v, inside=%v", x, y, z, v.Active, inside)
		}
	}
}

func TestCarveSphere_Identity(t *testing.T) {
	g := solidGrid(t, 5, 5, 5)
	n := CarveSphere(g, mgl32.Vec3{2, 2, 2}, 1.5, mgl32.Ident4(), 1)
	// d² ∈ {0, 1, 2}: 1 + 6 + 12
	if n != 19 {
		t.Fatalf("carved %d, want 19", n)
	}
	checkSphere(t, g, [3]int{2, 2, 2}, 1.5)

	before := g.Hash()
	if n := CarveSphere(g, mgl32.Vec3{2, 2, 2}, 1.5, mgl32.Ident4(), 1); n != 0 {
		t.Fatalf("second carve removed %d voxels", n)
	}
	if g.Hash() != before {
		t.Fatalf("second carve changed the grid")
	}
}

func TestCarveSphere_MissIsNoop(t *testing.T) {
	g := solidGrid(t, 4, 4, 4)
	before := g.Hash()
	if n := CarveSphere(g, mgl32.Vec3{50, 50, 50}, 2, mgl32.Ident4(), 1); n != 0 {
		t.Fatalf("carved %d voxels far outside the grid", n)
	}
	if g.Hash() != before {
		t.Fatalf("grid changed after a miss")
	}
}

func TestCarveSphere_VoxelSizeAndTranslation(t *testing.T) {
	g := solidGrid(t, 5, 5, 5)
	m := mgl32.Translate3D(10, 0, -4)
	// local (1,1,1) with voxel size 0.5 is voxel (2,2,2); radius 0.75 = 1.5 voxels
	n := CarveSphere(g, mgl32.Vec3{11, 1, -3}, 0.75, m, 0.5)
	if n != 19 {
		t.Fatalf("carved %d, want 19", n)
	}
	checkSphere(t, g, [3]int{2, 2, 2}, 1.5)
}

func TestCarveSphere_NonUniformScaleUsesLargestAxis(t *testing.T) {
	g := solidGrid(t, 5, 5, 5)
	m := mgl32.Scale3D(2, 1, -1)
	// world x=4 maps to local x=2; radius 3 / max scale 2 = 1.5 voxels
	n := CarveSphere(g, mgl32.Vec3{4, 2, -2}, 3, m, 1)
	if n != 19 {
		t.Fatalf("carved %d, want 19", n)
	}
	checkSphere(t, g, [3]int{2, 2, 2}, 1.5)
}

func TestCarveSphere_RotationAndClipping(t *testing.T) {
	g := solidGrid(t, 3, 3, 3)
	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(90))
	// corner voxel (0,0,0) sits at the origin under any rotation
	n := CarveSphere(g, mgl32.Vec3{0, 0, 0}, 1.2, rot, 1)
	// (0,0,0) and its three in-bounds face neighbours
	if n != 4 {
		t.Fatalf("carved %d, want 4", n)
	}
	checkSphere(t, g, [3]int{0, 0, 0}, 1.2)
}

func TestCarveSphere_Deterministic(t *testing.T) {
	a := solidGrid(t, 8, 6, 7)
	b := a.Clone()
	m := mgl32.Translate3D(0.3, -1.2, 2).Mul4(mgl32.Scale3D(1.5, 0.7, 1.1))
	p := mgl32.Vec3{3.1, 1.7, 5.2}
	na := CarveSphere(a, p, 2.2, m, 0.8)
	nb := CarveSphere(b, p, 2.2, m, 0.8)
	if na != nb || a.Hash() != b.Hash() {
		t.Fatalf("identical inputs gave different results")
	}
}

func TestCarveSphere_PreservesVoxelData(t *testing.T) {
	g := solidGrid(t, 3, 3, 3)
	g.Voxels[g.ToIndex(1, 1, 1)].Normal = 42
	CarveSphere(g, mgl32.Vec3{1, 1, 1}, 0.1, mgl32.Ident4(), 1)
	v := g.Get(1, 1, 1)
	if v.Active || v.Normal != 42 || v.ColorIndex == 0 {
		t.Fatalf("carved voxel = %+v, want inactive with color and normal kept", v)
	}
}

func TestCarveSphere_NilGrid(t *testing.T) {
	if n := CarveSphere(nil, mgl32.Vec3{}, 1, mgl32.Ident4(), 1); n != 0 {
		t.Fatalf("nil grid carved %d", n)
	}
}
