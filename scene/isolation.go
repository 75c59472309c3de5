package scene

import (
	"github.com/voxelsplace/voxdestruct/vox"
)

// Isolation splits disconnected pieces off its target and hands each one to
// the spawner as a new entity.
type Isolation struct {
	MinClusterSize      int
	MaxFragmentsPerCall int

	target  *Entity
	spawner *Spawner
}

func NewIsolation(target *Entity, spawner *Spawner, minClusterSize, maxFragments int) *Isolation {
	return &Isolation{
		MinClusterSize:      minClusterSize,
		MaxFragmentsPerCall: maxFragments,
		target:              target,
		spawner:             spawner,
	}
}

func (iso *Isolation) SetTarget(e *Entity) { iso.target = e }

// Isolate extracts up to MaxFragmentsPerCall fragments from the target and
// spawns one entity for each. The target mesh is rebuilt once afterwards.
// A missing target, grid or spawner makes this a no-op.
func (iso *Isolation) Isolate() []*Entity {
	if iso == nil || iso.target == nil || iso.spawner == nil {
		return nil
	}
	t := iso.target
	if t.grid == nil {
		return nil
	}
	frags := vox.Isolate(t.grid, max(iso.MinClusterSize, 1), max(iso.MaxFragmentsPerCall, 1))
	if len(frags) == 0 {
		return nil
	}
	spawned := make([]*Entity, 0, len(frags))
	for _, f := range frags {
		if e := iso.spawner.SpawnFragment(f.Grid, t, f.Offset); e != nil {
			spawned = append(spawned, e)
		}
	}
	t.RebuildMesh()
	return spawned
}
