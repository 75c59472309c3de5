package vox

// Vertex is a mesh vertex in local object space. Color is a palette index.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    uint8
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Empty reports whether the mesh has no triangles.
func (m *Mesh) Empty() bool { return len(m.Indices) == 0 }

// VertexColors resolves each vertex color through pal.
func (m *Mesh) VertexColors(pal *Palette) [][4]float32 {
	out := make([][4]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = pal[v.Color]
	}
	return out
}

type dirSpec struct {
	normal [3]float32
	u, v   int
	du, dv [3]int
}

var directions = []dirSpec{
	{[3]float32{1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{-1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, -1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 0, 1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
	{[3]float32{0, 0, -1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
}

func addQuad(mesh *Mesh, dir dirSpec, start [3]int, w, h int, color uint8, perp int, voxelSize float32) {
	base := [3]float32{}
	base[perp] = float32(start[0])
	if dir.normal[perp] > 0 {
		base[perp] += 1
	}
	base[dir.u] = float32(start[1])
	base[dir.v] = float32(start[2])

	corner := func(a, b int) Vertex {
		var p [3]float32
		for i := range p {
			// voxel (x,y,z) spans [x-0.5, x+0.5] on each axis
			p[i] = (base[i] + float32(dir.du[i]*a) + float32(dir.dv[i]*b) - 0.5) * voxelSize
		}
		return Vertex{Position: p, Normal: dir.normal, Color: color}
	}
	verts := [4]Vertex{corner(0, 0), corner(h, 0), corner(h, w), corner(0, w)}

	swap := (dir.normal[perp] < 0) != (perp == 1)
	if swap {
		verts[1], verts[3] = verts[3], verts[1]
	}

	baseIdx := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices, verts[:]...)
	mesh.Indices = append(mesh.Indices, baseIdx, baseIdx+1, baseIdx+2, baseIdx, baseIdx+2, baseIdx+3)
}

// GenerateMesh emits quads for every face of an active voxel that does not
// touch another active voxel, merging coplanar faces of equal color. An empty
// grid gives an empty mesh.
func GenerateMesh(grid *VoxelGrid, voxelSize float32) *Mesh {
	mesh := &Mesh{}
	if grid == nil {
		return mesh
	}
	voxelSize = max(voxelSize, minVoxelSize)
	dims := [3]int{grid.lenX, grid.lenY, grid.lenZ}

	for _, dir := range directions {
		perp := 3 - dir.u - dir.v
		nu, nv := dims[dir.u], dims[dir.v]
		// mask holds colorIndex+1 of exposed faces, 0 where there is none
		mask := make([]uint16, nu*nv)
		visited := make([]bool, nu*nv)

		for p := 0; p < dims[perp]; p++ {
			clear(mask)
			clear(visited)

			for u := 0; u < nu; u++ {
				for v := 0; v < nv; v++ {
					pos := [3]int{}
					pos[dir.u] = u
					pos[dir.v] = v
					pos[perp] = p

					voxel := grid.Get(pos[0], pos[1], pos[2])
					if !voxel.Active {
						continue
					}

					adj := pos
					if dir.normal[perp] < 0 {
						adj[perp] = p - 1
					} else {
						adj[perp] = p + 1
					}
					if !grid.Get(adj[0], adj[1], adj[2]).Active {
						mask[u*nv+v] = uint16(voxel.ColorIndex) + 1
					}
				}
			}

			for u := 0; u < nu; u++ {
				for v := 0; v < nv; {
					if mask[u*nv+v] == 0 || visited[u*nv+v] {
						v++
						continue
					}
					color := mask[u*nv+v]
					width := 1
					for w := v + 1; w < nv && mask[u*nv+w] == color && !visited[u*nv+w]; w++ {
						width++
					}
					height := 1
					stop := false
					for h := u + 1; h < nu && !stop; h++ {
						for w := v; w < v+width; w++ {
							if mask[h*nv+w] != color || visited[h*nv+w] {
								stop = true
								break
							}
						}
						if !stop {
							height++
						}
					}
					for hu := u; hu < u+height; hu++ {
						for hv := v; hv < v+width; hv++ {
							visited[hu*nv+hv] = true
						}
					}
					addQuad(mesh, dir, [3]int{p, u, v}, width, height, uint8(color-1), perp, voxelSize)
					v += width
				}
			}
		}
	}
	return mesh
}
