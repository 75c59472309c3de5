package audio

import "github.com/go-gl/mathgl/mgl32"

// Settings is the per-entity destruction sound configuration. It is copied
// from a source entity to the fragments split off it.
type Settings struct {
	Enabled bool
	Volume  float64 // 0..1

	// AtHitPoint plays the clip at the carve position with distance
	// attenuation; otherwise it plays unattenuated on the entity itself.
	AtHitPoint   bool
	SpatialBlend float64 // 0 = 2D, 1 = fully positional
	MinDistance  float64
	MaxDistance  float64
}

func DefaultSettings() Settings {
	return Settings{
		Enabled:      true,
		Volume:       1,
		AtHitPoint:   true,
		SpatialBlend: 1,
		MinDistance:  1,
		MaxDistance:  25,
	}
}

// Player plays destruction one-shots. Implementations must not block.
type Player interface {
	PlayDestroy(at mgl32.Vec3, s Settings)
}

// Gain is the linear amplitude for a clip played at distance dist from the
// listener: full volume inside MinDistance, silent past MaxDistance, linear
// in between, mixed with the 2D level by SpatialBlend.
func (s Settings) Gain(dist float64) float64 {
	vol := clamp01(s.Volume)
	if !s.AtHitPoint {
		return vol
	}
	roll := 1.0
	switch {
	case dist <= s.MinDistance:
	case dist >= s.MaxDistance:
		roll = 0
	default:
		roll = 1 - (dist-s.MinDistance)/(s.MaxDistance-s.MinDistance)
	}
	blend := clamp01(s.SpatialBlend)
	return vol * ((1 - blend) + blend*roll)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
