package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxdestruct/audio"
	"github.com/voxelsplace/voxdestruct/vox"
)

// Destructor carves spheres out of its target entity.
type Destructor struct {
	Audio  audio.Settings
	Player audio.Player

	target *Entity
}

func NewDestructor(target *Entity, player audio.Player) *Destructor {
	return &Destructor{Audio: audio.DefaultSettings(), Player: player, target: target}
}

func (d *Destructor) SetTarget(e *Entity) { d.target = e }

func (d *Destructor) Target() *Entity { return d.target }

// CopyAudioFrom copies the sound settings of another destructor.
func (d *Destructor) CopyAudioFrom(other *Destructor) {
	if other == nil {
		return
	}
	d.Audio = other.Audio
	if d.Player == nil {
		d.Player = other.Player
	}
}

// DestroySphere deactivates the voxels of the target inside the world-space
// sphere. When anything was removed the target mesh is rebuilt once and the
// destruction sound is played; otherwise nothing happens. A missing target or
// grid is a silent no-op.
func (d *Destructor) DestroySphere(worldPoint mgl32.Vec3, radius float32) int {
	if d == nil || d.target == nil || d.target.grid == nil {
		return 0
	}
	t := d.target
	n := vox.CarveSphere(t.grid, worldPoint, radius, t.LocalToWorld(), t.VoxelSize)
	if n == 0 {
		return 0
	}
	t.RebuildMesh()

	if d.Player != nil && d.Audio.Enabled {
		at := worldPoint
		if !d.Audio.AtHitPoint {
			at = t.Transform.Position
		}
		d.Player.PlayDestroy(at, d.Audio)
	}
	return n
}
