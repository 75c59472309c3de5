package vox

import "testing"

func quadCount(m *Mesh) int { return len(m.Indices) / 6 }

func TestGenerateMesh_SingleVoxel(t *testing.T) {
	g := emptyGrid(t, 1, 1, 1)
	g.Set(0, 0, 0, Voxel{Active: true, ColorIndex: 4})

	m := GenerateMesh(g, 2)
	if len(m.Vertices) != 24 || len(m.Indices) != 36 {
		t.Fatalf("got %d vertices / %d indices, want 24 / 36", len(m.Vertices), len(m.Indices))
	}
	for _, v := range m.Vertices {
		for a := 0; a < 3; a++ {
			if v.Position[a] != -1 && v.Position[a] != 1 {
				t.Fatalf("vertex %v outside the voxel cube", v.Position)
			}
		}
		if v.Color != 4 {
			t.Fatalf("vertex color %d, want 4", v.Color)
		}
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestGenerateMesh_MergesEqualColors(t *testing.T) {
	g := emptyGrid(t, 2, 1, 1)
	fill(g, [3]int{0, 0, 0}, [3]int{1, 0, 0}, 7)
	if got := quadCount(GenerateMesh(g, 1)); got != 6 {
		t.Fatalf("got %d quads, want 6", got)
	}

	g.Set(1, 0, 0, Voxel{Active: true, ColorIndex: 8})
	if got := quadCount(GenerateMesh(g, 1)); got != 10 {
		t.Fatalf("got %d quads with two colors, want 10", got)
	}
}

func TestGenerateMesh_HidesInteriorFaces(t *testing.T) {
	g := emptyGrid(t, 3, 3, 3)
	fill(g, [3]int{0, 0, 0}, [3]int{2, 2, 2}, 1)
	m := GenerateMesh(g, 1)
	if got := quadCount(m); got != 6 {
		t.Fatalf("solid cube gave %d quads, want 6", got)
	}
	for _, v := range m.Vertices {
		for a := 0; a < 3; a++ {
			if v.Position[a] < -0.5 || v.Position[a] > 2.5 {
				t.Fatalf("vertex %v outside the grid bounds", v.Position)
			}
		}
	}
}

func TestGenerateMesh_Empty(t *testing.T) {
	if m := GenerateMesh(emptyGrid(t, 4, 4, 4), 1); !m.Empty() {
		t.Fatalf("empty grid produced %d indices", len(m.Indices))
	}
	if m := GenerateMesh(nil, 1); !m.Empty() {
		t.Fatalf("nil grid produced a mesh")
	}
}

func TestMesh_VertexColors(t *testing.T) {
	g := emptyGrid(t, 1, 1, 1)
	g.Set(0, 0, 0, Voxel{Active: true, ColorIndex: 9})
	m := GenerateMesh(g, 1)
	cols := m.VertexColors(&g.Palette)
	if len(cols) != len(m.Vertices) {
		t.Fatalf("got %d colors for %d vertices", len(cols), len(m.Vertices))
	}
	if cols[0] != g.Palette[9] {
		t.Fatalf("color = %v, want %v", cols[0], g.Palette[9])
	}
}
