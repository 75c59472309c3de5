package scene

import (
	"io"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxdestruct/audio"
	"github.com/voxelsplace/voxdestruct/vox"
)

// World is the set of live entities plus the spawner that adds fragments.
type World struct {
	Config  Config
	Spawner *Spawner

	entities []*Entity
	logger   *log.Logger
}

func NewWorld(cfg Config, player audio.Player, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	w := &World{Config: cfg.Normalize(), logger: logger}
	w.Spawner = NewSpawner(w, w.Config, player, logger)
	return w
}

func (w *World) Add(e *Entity) {
	if e == nil {
		return
	}
	w.entities = append(w.entities, e)
}

// Spawn creates a root entity from a loaded grid and equips it with a
// destructor and isolation configured from the world config.
func (w *World) Spawn(name string, grid *vox.VoxelGrid, t Transform) *Entity {
	e := NewEntity(name, w.Config.VoxelSize)
	e.Transform = t
	e.AssignGrid(grid)
	e.Destructor = NewDestructor(e, w.Spawner.Player)
	e.Isolation = NewIsolation(e, w.Spawner, w.Config.MinClusterSize, w.Config.MaxFragmentsPerCall)
	w.Add(e)
	x, y, z := grid.Dims()
	w.logger.Printf("spawned %s: %dx%dx%d, %d voxels", name, x, y, z, grid.ActiveCount())
	return e
}

// Entities returns the live entities in creation order.
func (w *World) Entities() []*Entity {
	return w.entities
}

func (w *World) Find(name string) *Entity {
	for _, e := range w.entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Pick returns the entity with the active voxel nearest to p, among voxels
// within radius plus half a voxel. Equal distances keep creation order.
func (w *World) Pick(p mgl32.Vec3, radius float32) *Entity {
	var hit *Entity
	var best float32
	for _, e := range w.entities {
		if e.grid == nil {
			continue
		}
		d, ok := e.NearestActive(p, radius)
		if ok && (hit == nil || d < best) {
			hit, best = e, d
		}
	}
	return hit
}

// Prune drops entities whose grid has no active voxels left and returns how
// many were removed.
func (w *World) Prune() int {
	kept := w.entities[:0]
	removed := 0
	for _, e := range w.entities {
		if e.grid == nil || e.grid.IsEmpty() {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	clear(w.entities[len(kept):])
	w.entities = kept
	return removed
}
