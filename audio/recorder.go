package audio

import (
	"io"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
)

const DefaultSampleRate = beep.SampleRate(48000)

type cue struct {
	at   int // sample offset
	gain float64
	seed int64
}

// Recorder collects destruction one-shots on a timeline instead of sending
// them to a sound device, and renders the mix as a WAV file.
type Recorder struct {
	mu       sync.Mutex
	sr       beep.SampleRate
	listener mgl32.Vec3
	now      time.Duration
	cues     []cue
}

func NewRecorder(sr beep.SampleRate, listener mgl32.Vec3) *Recorder {
	return &Recorder{sr: sr, listener: listener}
}

// Advance moves the timeline cursor forward; later cues start at the new time.
func (r *Recorder) Advance(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d > 0 {
		r.now += d
	}
}

func (r *Recorder) PlayDestroy(at mgl32.Vec3, s Settings) {
	if !s.Enabled {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	gain := s.Gain(float64(at.Sub(r.listener).Len()))
	if gain <= 0 {
		return
	}
	r.cues = append(r.cues, cue{at: r.sr.N(r.now), gain: gain, seed: int64(len(r.cues) + 1)})
}

// Len is the number of recorded one-shots.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cues)
}

// Duration is the length of the rendered mix.
func (r *Recorder) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sr.D(r.samples())
}

func (r *Recorder) samples() int {
	end := 0
	clip := r.sr.N(CrackDuration)
	for _, c := range r.cues {
		end = max(end, c.at+clip)
	}
	return end
}

// Streamer returns a finite stream of all recorded one-shots mixed together.
func (r *Recorder) Streamer() beep.Streamer {
	r.mu.Lock()
	defer r.mu.Unlock()
	mixer := &beep.Mixer{}
	for _, c := range r.cues {
		clip := &effects.Gain{Streamer: Clip(r.sr, c.seed), Gain: c.gain - 1}
		mixer.Add(beep.Seq(beep.Silence(c.at), clip))
	}
	return beep.Take(r.samples(), mixer)
}

// WriteWAV renders the mix as 16-bit stereo WAV.
func (r *Recorder) WriteWAV(w io.WriteSeeker) error {
	format := beep.Format{SampleRate: r.sr, NumChannels: 2, Precision: 2}
	return wav.Encode(w, r.Streamer(), format)
}
