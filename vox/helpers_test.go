package vox

import (
	"bytes"
	"encoding/binary"
	"testing"
)

type testChunk struct {
	id       string
	content  []byte
	children []byte
}

func chunkBytes(c testChunk) []byte {
	var b bytes.Buffer
	b.WriteString(c.id)
	_ = binary.Write(&b, binary.LittleEndian, int32(len(c.content)))
	_ = binary.Write(&b, binary.LittleEndian, int32(len(c.children)))
	b.Write(c.content)
	b.Write(c.children)
	return b.Bytes()
}

func sizeChunk(x, y, z int32) testChunk {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.LittleEndian, [3]int32{x, y, z})
	return testChunk{id: "SIZE", content: b.Bytes()}
}

func xyziChunk(recs ...XYZI) testChunk {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.LittleEndian, int32(len(recs)))
	for _, r := range recs {
		b.Write([]byte{r.X, r.Y, r.Z, r.ColorIndex})
	}
	return testChunk{id: "XYZI", content: b.Bytes()}
}

// buildVox assembles a .vox file whose MAIN chunk holds the given children.
func buildVox(chunks ...testChunk) []byte {
	var children bytes.Buffer
	for _, c := range chunks {
		children.Write(chunkBytes(c))
	}
	var b bytes.Buffer
	b.WriteString("VOX ")
	_ = binary.Write(&b, binary.LittleEndian, int32(150))
	b.Write(chunkBytes(testChunk{id: "MAIN", children: children.Bytes()}))
	return b.Bytes()
}

func solidGrid(t *testing.T, x, y, z int) *VoxelGrid {
	t.Helper()
	g, err := NewVoxelGrid(x, y, z, DefaultPalette())
	if err != nil {
		t.Fatalf("NewVoxelGrid: %v", err)
	}
	for i := range g.Voxels {
		g.Voxels[i] = Voxel{Active: true, ColorIndex: uint8(1 + i%7)}
	}
	return g
}

func emptyGrid(t *testing.T, x, y, z int) *VoxelGrid {
	t.Helper()
	g, err := NewVoxelGrid(x, y, z, DefaultPalette())
	if err != nil {
		t.Fatalf("NewVoxelGrid: %v", err)
	}
	return g
}

// fill activates every voxel of the inclusive box [lo, hi].
func fill(g *VoxelGrid, lo, hi [3]int, color uint8) {
	for z := lo[2]; z <= hi[2]; z++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for x := lo[0]; x <= hi[0]; x++ {
				g.Set(x, y, z, Voxel{Active: true, ColorIndex: color})
			}
		}
	}
}

func activeSet(g *VoxelGrid) map[[3]int]Voxel {
	out := map[[3]int]Voxel{}
	for i, v := range g.Voxels {
		if v.Active {
			x, y, z := g.ToCoords(i)
			out[[3]int{x, y, z}] = v
		}
	}
	return out
}
