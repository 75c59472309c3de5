package scene

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxdestruct/vox"
)

func TestSpawnFragment_Placement(t *testing.T) {
	var logs bytes.Buffer
	w := NewWorld(testConfig(), nil, log.New(&logs, "", 0))
	src := NewEntity("rock", 0.5)
	src.Material = "stone"
	src.Origin = [3]int{1, 2, 3}
	src.Transform = Transform{
		Position: mgl32.Vec3{10, 0, 0},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
		Scale:    mgl32.Vec3{2, 2, 2},
	}
	src.AssignGrid(boxGrid(t, 8, 2, 2))

	frag := w.Spawner.SpawnFragment(boxGrid(t, 2, 2, 2), src, [3]int{6, 0, 0})
	if frag == nil {
		t.Fatalf("SpawnFragment returned nil")
	}
	// local 6*0.5 = 3, scaled to 6, rotated onto -z, moved by +10 x
	if !vecNear(frag.Transform.Position, mgl32.Vec3{10, 0, -6}) {
		t.Fatalf("position = %v, want [10 0 -6]", frag.Transform.Position)
	}
	if frag.Transform.Rotation != src.Transform.Rotation {
		t.Fatalf("rotation not copied")
	}
	if !vecNear(frag.Transform.Scale, mgl32.Vec3{2, 2, 2}) {
		t.Fatalf("scale = %v, want source world scale", frag.Transform.Scale)
	}
	if frag.Origin != [3]int{7, 2, 3} {
		t.Fatalf("origin = %v, want [7 2 3]", frag.Origin)
	}
	if frag.VoxelSize != 0.5 || frag.Material != "stone" {
		t.Fatalf("settings not copied: size %v material %q", frag.VoxelSize, frag.Material)
	}
	if frag.Body == nil || !frag.Body.Dynamic || !frag.Body.Interpolate || !frag.Body.ConvexCollider {
		t.Fatalf("body = %+v, want dynamic interpolated convex", frag.Body)
	}
	if frag.Mesh == nil || frag.Mesh.Empty() {
		t.Fatalf("fragment mesh not built")
	}
	if w.Find(frag.Name) != frag {
		t.Fatalf("fragment not registered in the world")
	}
	if !strings.Contains(logs.String(), frag.Name) {
		t.Fatalf("spawn not logged: %q", logs.String())
	}
}

func TestSpawnFragment_InheritsComponents(t *testing.T) {
	w := NewWorld(testConfig(), &recordingPlayer{}, nil)
	src := w.Spawn("rock", boxGrid(t, 4, 4, 4), IdentityTransform())
	src.Destructor.Audio.Volume = 0.3
	src.Isolation.MinClusterSize = 7
	src.Isolation.MaxFragmentsPerCall = 2

	frag := w.Spawner.SpawnFragment(boxGrid(t, 1, 1, 1), src, [3]int{})
	if frag.Name != "rock/frag-1" {
		t.Fatalf("name = %q", frag.Name)
	}
	if frag.Destructor == nil || frag.Destructor.Target() != frag {
		t.Fatalf("fragment destructor missing or aimed elsewhere")
	}
	if frag.Destructor.Audio.Volume != 0.3 {
		t.Fatalf("audio settings not copied")
	}
	if frag.Isolation == nil || frag.Isolation.MinClusterSize != 7 || frag.Isolation.MaxFragmentsPerCall != 2 {
		t.Fatalf("isolation = %+v, want inherited parameters", frag.Isolation)
	}

	w.Config.AddDestructorToFragments = false
	w.Spawner.Config.AddDestructorToFragments = false
	second := w.Spawner.SpawnFragment(boxGrid(t, 1, 1, 1), src, [3]int{})
	if second.Destructor != nil {
		t.Fatalf("destructor added although disabled")
	}
	if second.Name != "rock/frag-2" {
		t.Fatalf("name = %q, want rock/frag-2", second.Name)
	}
}

func TestSpawnFragment_NilInputs(t *testing.T) {
	w := NewWorld(testConfig(), nil, nil)
	if e := w.Spawner.SpawnFragment(nil, NewEntity("a", 1), [3]int{}); e != nil {
		t.Fatalf("spawned without a grid")
	}
	g, _ := vox.NewVoxelGrid(1, 1, 1, vox.DefaultPalette())
	if e := w.Spawner.SpawnFragment(g, nil, [3]int{}); e != nil {
		t.Fatalf("spawned without a source")
	}
}
