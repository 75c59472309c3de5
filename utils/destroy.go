package utils

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxdestruct/api"
	"github.com/voxelsplace/voxdestruct/audio"
	"github.com/voxelsplace/voxdestruct/scene"
	"github.com/voxelsplace/voxdestruct/vox"
)

// RequestInterval is the simulated time between two destruction requests
// when rendering their sounds.
const RequestInterval = 250 * time.Millisecond

// DestroyOptions selects the outputs of RunDestroy. Empty paths are skipped.
type DestroyOptions struct {
	Config   scene.Config
	GLBPath  string
	PackPath string
	WAVPath  string
	Logger   *log.Logger
}

// RunDestroy loads a .vox model, applies the JSON destruction requests and
// writes the resulting world (body plus fragments).
// The requests format is: [ {"point":[x,y,z], "radius":r, "target":"name"}, ... ]
func RunDestroy(inputPath string, requestsJSON []byte, opts DestroyOptions) error {
	grid, err := vox.LoadVox(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load input VOX: %w", err)
	}
	reqs, err := scene.ParseRequests(requestsJSON)
	if err != nil {
		return err
	}

	rec := audio.NewRecorder(audio.DefaultSampleRate, mgl32.Vec3{})
	w := scene.NewWorld(opts.Config, rec, opts.Logger)
	w.Spawn("body", grid, scene.IdentityTransform())
	d := scene.NewDispatcher(w)
	carved, spawned := 0, 0
	for _, r := range reqs {
		res := d.Dispatch(r)
		carved += res.Carved
		spawned += len(res.Fragments)
		rec.Advance(RequestInterval)
	}
	pruned := w.Prune()
	fmt.Printf("%d requests: %d voxels removed, %d fragments spawned, %d empty entities dropped\n", len(reqs), carved, spawned, pruned)

	if opts.GLBPath != "" {
		glb, err := api.WorldToGLB(w)
		if err != nil {
			return fmt.Errorf("failed to export GLB: %w", err)
		}
		if err := os.WriteFile(opts.GLBPath, glb, 0o644); err != nil {
			return err
		}
		fmt.Printf(".glb saved (%d bytes)\n", len(glb))
	}
	if opts.PackPath != "" {
		data, err := api.WorldToPack(w, vox.PackCompZstd)
		if err != nil {
			return fmt.Errorf("failed to save VOXPACK: %w", err)
		}
		if err := os.WriteFile(opts.PackPath, data, 0o644); err != nil {
			return err
		}
		fmt.Printf(".voxpack saved (%d bytes, %d entries)\n", len(data), len(w.Entities()))
	}
	if opts.WAVPath != "" {
		f, err := os.Create(opts.WAVPath)
		if err != nil {
			return err
		}
		if err := rec.WriteWAV(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to render WAV: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to save WAV: %w", err)
		}
		fmt.Printf(".wav saved (%d sounds, %s)\n", rec.Len(), rec.Duration())
	}
	return nil
}

// RunDestroyFile reads the requests from a JSON file.
func RunDestroyFile(inputPath, requestsPath string, opts DestroyOptions) error {
	data, err := os.ReadFile(requestsPath)
	if err != nil {
		return err
	}
	return RunDestroy(inputPath, data, opts)
}
