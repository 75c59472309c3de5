package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// CrackDuration is the length of one destruction one-shot.
const CrackDuration = 300 * time.Millisecond

// CrackGenerator generates a breaking/crumbling sound: filtered noise over a
// low rumble with a fast exponential decay.
type CrackGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
	lp   float64
}

// NewCrackGenerator creates a crack generator. Equal seeds give equal samples.
func NewCrackGenerator(sr beep.SampleRate, seed int64) *CrackGenerator {
	return &CrackGenerator{sr: sr, seed: seed & 0x7fffffff}
}

func (g *CrackGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 10)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		g.lp += 0.35 * (noise - g.lp)

		rumble := 0.3 * math.Sin(2*math.Pi*65*t)

		sample := envelope * (0.4*g.lp + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrackGenerator) Err() error {
	return nil
}

// Clip returns a finite destruction one-shot.
func Clip(sr beep.SampleRate, seed int64) beep.Streamer {
	return beep.Take(sr.N(CrackDuration), NewCrackGenerator(sr, seed))
}
