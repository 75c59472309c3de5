package api

import (
	"bytes"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelsplace/voxdestruct/audio"
	"github.com/voxelsplace/voxdestruct/scene"
	"github.com/voxelsplace/voxdestruct/vox"
)

// VOXToGLB takes .vox file bytes and returns .glb bytes built with the greedy mesher.
func VOXToGLB(voxBytes []byte, voxelSize float32) ([]byte, error) {
	grid, err := vox.LoadVoxFromBytes(voxBytes)
	if err != nil {
		return nil, err
	}
	doc := newDocument("VOX -> GLB")
	addMeshNode(doc, "VoxelMesh", vox.GenerateMesh(grid, voxelSize), &grid.Palette, scene.IdentityTransform())
	return encodeGLB(doc)
}

// VOXToPack converts .vox bytes into a single-entry .voxpack.
func VOXToPack(voxBytes []byte, name string, comp vox.PackCompression) ([]byte, error) {
	grid, err := vox.LoadVoxFromBytes(voxBytes)
	if err != nil {
		return nil, err
	}
	pack := &vox.Pack{Entries: []vox.PackEntry{{Name: name, Grid: grid}}}
	return pack.Marshal(comp)
}

// PackToGLB meshes every entry of a .voxpack. Each entry becomes one node
// placed at its voxel offset.
func PackToGLB(packBytes []byte, voxelSize float32) ([]byte, error) {
	pack, _, err := vox.UnmarshalPack(packBytes)
	if err != nil {
		return nil, err
	}
	if len(pack.Entries) == 0 {
		return nil, fmt.Errorf("empty pack: no entries")
	}
	doc := newDocument("VOXPACK -> GLB")
	for _, e := range pack.Entries {
		t := scene.IdentityTransform()
		t.Position = [3]float32{float32(e.Offset[0]) * voxelSize, float32(e.Offset[1]) * voxelSize, float32(e.Offset[2]) * voxelSize}
		addMeshNode(doc, e.Name, vox.GenerateMesh(e.Grid, voxelSize), &e.Grid.Palette, t)
	}
	return encodeGLB(doc)
}

// Destroy loads a .vox model into a fresh world, plays the destruction
// requests against it and returns the resulting world. Sounds go to player
// when it is not nil.
func Destroy(voxBytes []byte, reqs []scene.Request, cfg scene.Config, player audio.Player) (*scene.World, error) {
	grid, err := vox.LoadVoxFromBytes(voxBytes)
	if err != nil {
		return nil, err
	}
	w := scene.NewWorld(cfg, player, nil)
	w.Spawn("body", grid, scene.IdentityTransform())
	d := scene.NewDispatcher(w)
	for _, r := range reqs {
		d.Dispatch(r)
	}
	return w, nil
}

// WorldToGLB exports every non-empty entity of w as a mesh node with the
// entity's transform.
func WorldToGLB(w *scene.World) ([]byte, error) {
	doc := newDocument("voxdestruct world -> GLB")
	for _, e := range w.Entities() {
		if e.Grid() == nil || e.Mesh == nil {
			continue
		}
		addMeshNode(doc, e.Name, e.Mesh, &e.Grid().Palette, e.Transform)
	}
	return encodeGLB(doc)
}

// WorldToPack saves every non-empty entity of w with its origin inside the root body.
func WorldToPack(w *scene.World, comp vox.PackCompression) ([]byte, error) {
	pack := &vox.Pack{}
	for _, e := range w.Entities() {
		g := e.Grid()
		if g == nil || g.IsEmpty() {
			continue
		}
		pack.Entries = append(pack.Entries, vox.PackEntry{
			Name:   e.Name,
			Offset: [3]int32{int32(e.Origin[0]), int32(e.Origin[1]), int32(e.Origin[2])},
			Grid:   g,
		})
	}
	return pack.Marshal(comp)
}

func newDocument(generator string) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator
	pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 1, 1, 1}, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	doc.Materials = []*gltf.Material{{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}
	return doc
}

// addMeshNode appends mesh as a node. Empty meshes are skipped since glTF
// does not allow zero-length accessors.
func addMeshNode(doc *gltf.Document, name string, mesh *vox.Mesh, pal *vox.Palette, t scene.Transform) {
	if mesh == nil || mesh.Empty() {
		return
	}
	positions := make([][3]float32, len(mesh.Vertices))
	normals := make([][3]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
	}
	indices := make([]uint32, len(mesh.Indices))
	copy(indices, mesh.Indices)

	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	colorAccessor := modeler.WriteColor(doc, mesh.VertexColors(pal))
	indicesAccessor := modeler.WriteIndices(doc, indices)

	prim := &gltf.Primitive{
		Attributes: map[string]int{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(0),
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})

	q := t.Rotation.Normalize()
	node := &gltf.Node{
		Name:        name,
		Mesh:        gltf.Index(len(doc.Meshes) - 1),
		Translation: [3]float64{float64(t.Position[0]), float64(t.Position[1]), float64(t.Position[2])},
		Rotation:    [4]float64{float64(q.V[0]), float64(q.V[1]), float64(q.V[2]), float64(q.W)},
		Scale:       [3]float64{float64(t.Scale[0]), float64(t.Scale[1]), float64(t.Scale[2])},
	}
	doc.Nodes = append(doc.Nodes, node)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
}

func encodeGLB(doc *gltf.Document) ([]byte, error) {
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
