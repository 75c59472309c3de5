package scene

import (
	"fmt"
	"io"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxdestruct/audio"
	"github.com/voxelsplace/voxdestruct/vox"
)

// Spawner turns extracted grids into live entities registered in a world.
type Spawner struct {
	Config Config
	Player audio.Player
	Logger *log.Logger

	world *World
	count int
}

func NewSpawner(w *World, cfg Config, player audio.Player, logger *log.Logger) *Spawner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Spawner{Config: cfg.Normalize(), Player: player, Logger: logger, world: w}
}

// SpawnFragment creates the entity for grid. It sits at the source's local
// point voxelOffset*voxelSize, shares the source rotation and world scale, and
// gets a dynamic convex body. The new entity can itself be carved and split.
func (s *Spawner) SpawnFragment(grid *vox.VoxelGrid, source *Entity, voxelOffset [3]int) *Entity {
	if grid == nil || source == nil {
		return nil
	}
	s.count++
	e := NewEntity(fmt.Sprintf("%s/frag-%d", source.Name, s.count), source.VoxelSize)
	e.CopySettingsFrom(source)

	local := mgl32.Vec3{float32(voxelOffset[0]), float32(voxelOffset[1]), float32(voxelOffset[2])}.Mul(e.VoxelSize)
	e.Transform = Transform{
		Position: source.Transform.TransformPoint(local),
		Rotation: source.Transform.Rotation,
		Scale:    vox.LossyScale(source.LocalToWorld()),
	}
	e.Origin = [3]int{source.Origin[0] + voxelOffset[0], source.Origin[1] + voxelOffset[1], source.Origin[2] + voxelOffset[2]}
	e.Body = &Body{Dynamic: true, Interpolate: true, ConvexCollider: true}
	e.AssignGrid(grid)

	if s.Config.AddDestructorToFragments {
		e.Destructor = NewDestructor(e, s.Player)
		e.Destructor.CopyAudioFrom(source.Destructor)
	}
	e.Isolation = NewIsolation(e, s, s.Config.MinClusterSize, s.Config.MaxFragmentsPerCall)
	if source.Isolation != nil {
		e.Isolation.MinClusterSize = source.Isolation.MinClusterSize
		e.Isolation.MaxFragmentsPerCall = source.Isolation.MaxFragmentsPerCall
	}

	if s.world != nil {
		s.world.Add(e)
	}
	x, y, z := grid.Dims()
	s.Logger.Printf("spawned %s: %dx%dx%d, %d voxels at %v", e.Name, x, y, z, grid.ActiveCount(), e.Transform.Position)
	return e
}
