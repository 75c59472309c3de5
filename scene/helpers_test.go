package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxdestruct/audio"
	"github.com/voxelsplace/voxdestruct/vox"
)

type playCall struct {
	at mgl32.Vec3
	s  audio.Settings
}

type recordingPlayer struct {
	calls []playCall
}

func (p *recordingPlayer) PlayDestroy(at mgl32.Vec3, s audio.Settings) {
	p.calls = append(p.calls, playCall{at: at, s: s})
}

// boxGrid returns an x*y*z grid with every voxel active.
func boxGrid(t *testing.T, x, y, z int) *vox.VoxelGrid {
	t.Helper()
	g, err := vox.NewVoxelGrid(x, y, z, vox.DefaultPalette())
	if err != nil {
		t.Fatalf("NewVoxelGrid: %v", err)
	}
	for i := range g.Voxels {
		g.Voxels[i] = vox.Voxel{Active: true, ColorIndex: 1}
	}
	return g
}

// testConfig keeps every cluster eligible so small grids split.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MinClusterSize = 1
	return cfg
}

func vecNear(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-4)
}
