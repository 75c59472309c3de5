package vox

import (
	"encoding/binary"
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

// Voxel is a single cell. Normal is owned by the mesher and is copied verbatim
// everywhere else.
type Voxel struct {
	Active     bool
	ColorIndex uint8
	Normal     int32
}

// Color is a normalized RGBA palette entry.
type Color [4]float32

// Palette is the fixed 256-entry color table indexed by Voxel.ColorIndex.
type Palette [256]Color

// VoxelGrid is a dense x-fastest array of voxels: index = x + lenX*(y + lenY*z).
// Dimensions never change after construction.
type VoxelGrid struct {
	Voxels  []Voxel
	Palette Palette

	lenX, lenY, lenZ int
}

// maxGridCells bounds the voxel count of any grid built from file data.
const maxGridCells = 1 << 26

func checkDims(x, y, z int) error {
	if x <= 0 || y <= 0 || z <= 0 {
		return fmt.Errorf("invalid grid dimensions %dx%dx%d", x, y, z)
	}
	// short-circuit order keeps every product below 2^52
	if x > maxGridCells || y > maxGridCells || z > maxGridCells ||
		uint64(x)*uint64(y) > maxGridCells ||
		uint64(x)*uint64(y)*uint64(z) > maxGridCells {
		return fmt.Errorf("grid dimensions %dx%dx%d exceed %d cells", x, y, z, maxGridCells)
	}
	return nil
}

// NewVoxelGrid allocates an all-inactive grid.
func NewVoxelGrid(x, y, z int, pal Palette) (*VoxelGrid, error) {
	if err := checkDims(x, y, z); err != nil {
		return nil, err
	}
	return &VoxelGrid{
		Voxels:  make([]Voxel, x*y*z),
		Palette: pal,
		lenX:    x,
		lenY:    y,
		lenZ:    z,
	}, nil
}

// NewVoxelGridFrom wraps an existing voxel slice; its length must match the dimensions.
func NewVoxelGridFrom(voxels []Voxel, pal Palette, x, y, z int) (*VoxelGrid, error) {
	if err := checkDims(x, y, z); err != nil {
		return nil, err
	}
	if len(voxels) != x*y*z {
		return nil, fmt.Errorf("voxel count %d does not match %dx%dx%d", len(voxels), x, y, z)
	}
	return &VoxelGrid{Voxels: voxels, Palette: pal, lenX: x, lenY: y, lenZ: z}, nil
}

// Dims returns (lenX, lenY, lenZ).
func (g *VoxelGrid) Dims() (int, int, int) { return g.lenX, g.lenY, g.lenZ }

// Volume is lenX*lenY*lenZ.
func (g *VoxelGrid) Volume() int { return g.lenX * g.lenY * g.lenZ }

func (g *VoxelGrid) InBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < g.lenX && y < g.lenY && z < g.lenZ
}

func (g *VoxelGrid) ToIndex(x, y, z int) int {
	return x + g.lenX*(y+g.lenY*z)
}

func (g *VoxelGrid) ToCoords(index int) (x, y, z int) {
	x = index % g.lenX
	y = (index / g.lenX) % g.lenY
	z = index / (g.lenX * g.lenY)
	return
}

// Get returns the zero (inactive) voxel for out-of-range coordinates.
func (g *VoxelGrid) Get(x, y, z int) Voxel {
	if !g.InBounds(x, y, z) {
		return Voxel{}
	}
	return g.Voxels[g.ToIndex(x, y, z)]
}

// Set ignores out-of-range coordinates.
func (g *VoxelGrid) Set(x, y, z int, v Voxel) {
	if !g.InBounds(x, y, z) {
		return
	}
	g.Voxels[g.ToIndex(x, y, z)] = v
}

// IsEmpty reports whether no voxel is active.
func (g *VoxelGrid) IsEmpty() bool {
	for i := range g.Voxels {
		if g.Voxels[i].Active {
			return false
		}
	}
	return true
}

func (g *VoxelGrid) ActiveCount() int {
	n := 0
	for i := range g.Voxels {
		if g.Voxels[i].Active {
			n++
		}
	}
	return n
}

// Clone returns a deep copy that shares no storage with g.
func (g *VoxelGrid) Clone() *VoxelGrid {
	c := *g
	c.Voxels = make([]Voxel, len(g.Voxels))
	copy(c.Voxels, g.Voxels)
	return &c
}

// Hash is an xxhash64 digest over dimensions and voxel contents (palette excluded).
func (g *VoxelGrid) Hash() uint64 {
	d := xxhash.New()
	var b [12]byte
	binary.LittleEndian.PutUint32(b[0:], uint32(g.lenX))
	binary.LittleEndian.PutUint32(b[4:], uint32(g.lenY))
	binary.LittleEndian.PutUint32(b[8:], uint32(g.lenZ))
	_, _ = d.Write(b[:])
	var vb [6]byte
	for _, v := range g.Voxels {
		vb[0] = 0
		if v.Active {
			vb[0] = 1
		}
		vb[1] = v.ColorIndex
		binary.LittleEndian.PutUint32(vb[2:], uint32(v.Normal))
		_, _ = d.Write(vb[:])
	}
	return d.Sum64()
}
