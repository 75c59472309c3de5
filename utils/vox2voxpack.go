package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/voxelsplace/voxdestruct/vox"
)

// CreatePack decodes .vox files in parallel and writes them as one .voxpack.
// Entry names are the input base names without extension.
func CreatePack(inputFiles []string, outputFile string, comp vox.PackCompression) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("no .vox files provided")
	}
	type item struct {
		name string
		grid *vox.VoxelGrid
		err  error
	}
	items := make([]item, len(inputFiles))

	var wg sync.WaitGroup
	for i := range inputFiles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := inputFiles[i]
			grid, err := vox.LoadVox(path)
			if err != nil {
				items[i].err = fmt.Errorf("%s: %w", path, err)
				return
			}
			items[i] = item{name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), grid: grid}
		}(i)
	}
	wg.Wait()

	pack := &vox.Pack{Entries: make([]vox.PackEntry, len(items))}
	for i, it := range items {
		if it.err != nil {
			return it.err
		}
		pack.Entries[i] = vox.PackEntry{Name: it.name, Grid: it.grid}
	}
	start := time.Now()
	data, err := pack.Marshal(comp)
	if err != nil {
		return err
	}
	fmt.Printf("vox2voxpack compression took %d ms\n", time.Since(start).Milliseconds())
	return os.WriteFile(outputFile, data, 0o644)
}

// UnpackToDir writes every entry of a .voxpack as <name>.vox into outputDir.
func UnpackToDir(packFile, outputDir string) error {
	data, err := os.ReadFile(packFile)
	if err != nil {
		return err
	}
	pack, _, err := vox.UnmarshalPack(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	names := entryFileNames(pack.Entries)
	var wg sync.WaitGroup
	errCh := make(chan error, len(pack.Entries))
	for i, e := range pack.Entries {
		wg.Add(1)
		go func(e vox.PackEntry, name string) {
			defer wg.Done()
			if err := vox.SaveVox(e.Grid, filepath.Join(outputDir, name)); err != nil {
				errCh <- fmt.Errorf("%s: %w", e.Name, err)
			}
		}(e, names[i])
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// entryFileNames maps entries to distinct .vox file names. Repeated names get
// a -<index> suffix so no two goroutines write the same file.
func entryFileNames(entries []vox.PackEntry) []string {
	out := make([]string, len(entries))
	used := make(map[string]bool, len(entries))
	for i, e := range entries {
		base := strings.ReplaceAll(e.Name, "/", "_")
		name := base
		for n := i; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		used[name] = true
		out[i] = name + ".vox"
	}
	return out
}
