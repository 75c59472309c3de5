package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTarget(t *testing.T, player *recordingPlayer) (*Entity, *Destructor) {
	t.Helper()
	e := NewEntity("rock", 1)
	e.Transform.Position = mgl32.Vec3{100, 0, 0}
	e.AssignGrid(boxGrid(t, 5, 5, 5))
	d := NewDestructor(e, player)
	e.Destructor = d
	return e, d
}

func TestDestroySphere_CarvesRebuildsAndPlays(t *testing.T) {
	player := &recordingPlayer{}
	e, d := newTarget(t, player)
	rebuilds := e.Rebuilds

	hit := mgl32.Vec3{102, 2, 2}
	if n := d.DestroySphere(hit, 1.5); n != 19 {
		t.Fatalf("carved %d, want 19", n)
	}
	if e.Rebuilds != rebuilds+1 {
		t.Fatalf("mesh rebuilt %d times, want once", e.Rebuilds-rebuilds)
	}
	if len(player.calls) != 1 || player.calls[0].at != hit {
		t.Fatalf("sound calls = %+v, want one at %v", player.calls, hit)
	}
}

func TestDestroySphere_MissDoesNothing(t *testing.T) {
	player := &recordingPlayer{}
	e, d := newTarget(t, player)
	rebuilds := e.Rebuilds
	before := e.Grid().Hash()

	if n := d.DestroySphere(mgl32.Vec3{0, 0, 0}, 2); n != 0 {
		t.Fatalf("carved %d, want 0", n)
	}
	if e.Rebuilds != rebuilds || len(player.calls) != 0 || e.Grid().Hash() != before {
		t.Fatalf("a miss must not rebuild, play or modify")
	}
}

func TestDestroySphere_SoundAtEntity(t *testing.T) {
	player := &recordingPlayer{}
	e, d := newTarget(t, player)
	d.Audio.AtHitPoint = false
	d.DestroySphere(mgl32.Vec3{101, 1, 1}, 1)
	if len(player.calls) != 1 || player.calls[0].at != e.Transform.Position {
		t.Fatalf("sound calls = %+v, want one at the entity", player.calls)
	}

	d.Audio.Enabled = false
	d.DestroySphere(mgl32.Vec3{103, 3, 3}, 1)
	if len(player.calls) != 1 {
		t.Fatalf("disabled audio still played")
	}
}

func TestDestroySphere_NoTarget(t *testing.T) {
	d := NewDestructor(nil, nil)
	if n := d.DestroySphere(mgl32.Vec3{}, 5); n != 0 {
		t.Fatalf("carved %d without a target", n)
	}
	d.SetTarget(NewEntity("empty", 1))
	if n := d.DestroySphere(mgl32.Vec3{}, 5); n != 0 {
		t.Fatalf("carved %d without a grid", n)
	}
	var nilD *Destructor
	if n := nilD.DestroySphere(mgl32.Vec3{}, 5); n != 0 {
		t.Fatalf("nil destructor carved %d", n)
	}
}
