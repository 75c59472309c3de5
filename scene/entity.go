package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxdestruct/vox"
)

// MeshBuilder turns a grid into renderable surface geometry.
type MeshBuilder interface {
	Build(grid *vox.VoxelGrid, voxelSize float32) *vox.Mesh
}

// GreedyMesher is the default MeshBuilder.
type GreedyMesher struct{}

func (GreedyMesher) Build(grid *vox.VoxelGrid, voxelSize float32) *vox.Mesh {
	return vox.GenerateMesh(grid, voxelSize)
}

// Body describes the physics body a host engine should attach.
type Body struct {
	Dynamic        bool
	Interpolate    bool
	ConvexCollider bool
}

// Entity is a live destructible object. It exclusively owns its grid;
// components borrow it only for the duration of one call.
type Entity struct {
	Name      string
	Transform Transform
	VoxelSize float32
	Material  string
	Body      *Body
	// Origin is the voxel-space min corner of this entity inside the root
	// entity it was split from; zero for root entities.
	Origin [3]int

	Mesher MeshBuilder
	Mesh   *vox.Mesh
	// Rebuilds counts mesh rebuilds.
	Rebuilds int

	Destructor *Destructor
	Isolation  *Isolation

	grid *vox.VoxelGrid
}

// NewEntity creates a static entity with an identity transform and no grid.
func NewEntity(name string, voxelSize float32) *Entity {
	return &Entity{
		Name:      name,
		Transform: IdentityTransform(),
		VoxelSize: voxelSize,
		Mesher:    GreedyMesher{},
	}
}

func (e *Entity) Grid() *vox.VoxelGrid { return e.grid }

// AssignGrid hands grid to the entity and rebuilds its mesh.
func (e *Entity) AssignGrid(grid *vox.VoxelGrid) {
	e.grid = grid
	e.RebuildMesh()
}

// RebuildMesh regenerates the surface mesh from the current grid. A nil grid
// clears the mesh.
func (e *Entity) RebuildMesh() {
	e.Rebuilds++
	if e.grid == nil {
		e.Mesh = nil
		return
	}
	m := e.Mesher
	if m == nil {
		m = GreedyMesher{}
	}
	e.Mesh = m.Build(e.grid, e.VoxelSize)
}

// CopySettingsFrom copies voxel size, material and mesher from src.
func (e *Entity) CopySettingsFrom(src *Entity) {
	if src == nil {
		return
	}
	e.VoxelSize = src.VoxelSize
	if src.Material != "" {
		e.Material = src.Material
	}
	if src.Mesher != nil {
		e.Mesher = src.Mesher
	}
}

func (e *Entity) LocalToWorld() mgl32.Mat4 { return e.Transform.Matrix() }

// ContainsPoint reports whether the world point p lies within radius of the
// entity's grid volume, measured in the entity's local space.
func (e *Entity) ContainsPoint(p mgl32.Vec3, radius float32) bool {
	if e.grid == nil {
		return false
	}
	local := e.Transform.InverseTransformPoint(p)
	size := max(e.VoxelSize, 0.0001)
	s := vox.LossyScale(e.LocalToWorld())
	r := radius / max(s[0], s[1], s[2], 0.0001)
	x, y, z := e.grid.Dims()
	dims := [3]int{x, y, z}
	for a := 0; a < 3; a++ {
		lo := -0.5*size - r
		hi := (float32(dims[a])-0.5)*size + r
		if local[a] < lo || local[a] > hi {
			return false
		}
	}
	return true
}

// NearestActive returns the world distance from p to the closest active voxel
// center that lies within radius plus half a voxel of p.
func (e *Entity) NearestActive(p mgl32.Vec3, radius float32) (float32, bool) {
	if !e.ContainsPoint(p, radius) {
		return 0, false
	}
	size := max(e.VoxelSize, 0.0001)
	s := vox.LossyScale(e.LocalToWorld())
	unit := size * max(s[0], s[1], s[2], 0.0001)
	c := e.Transform.InverseTransformPoint(p).Mul(1 / size)
	reach := radius/unit + 0.5

	x, y, z := e.grid.Dims()
	dims := [3]int{x, y, z}
	var lo, hi [3]int
	for a := 0; a < 3; a++ {
		lo[a] = max(int(math.Floor(float64(c[a]-reach))), 0)
		hi[a] = min(int(math.Ceil(float64(c[a]+reach))), dims[a]-1)
	}

	best := reach * reach
	found := false
	for vz := lo[2]; vz <= hi[2]; vz++ {
		for vy := lo[1]; vy <= hi[1]; vy++ {
			for vx := lo[0]; vx <= hi[0]; vx++ {
				if !e.grid.Get(vx, vy, vz).Active {
					continue
				}
				dx, dy, dz := float32(vx)-c[0], float32(vy)-c[1], float32(vz)-c[2]
				if d2 := dx*dx + dy*dy + dz*dz; d2 <= best {
					best, found = d2, true
				}
			}
		}
	}
	if !found {
		return 0, false
	}
	return float32(math.Sqrt(float64(best))) * unit, true
}
