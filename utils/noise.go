package utils

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/voxelsplace/voxdestruct/vox"
)

// generateNoiseGrid creates a grid with the given percentage of voxels active,
// each with a random palette index in [1..254].
func generateNoiseGrid(sx, sy, sz int, percentage float64, r *rand.Rand) (*vox.VoxelGrid, error) {
	grid, err := vox.NewVoxelGrid(sx, sy, sz, vox.DefaultPalette())
	if err != nil {
		return nil, err
	}
	percentage = min(max(percentage, 0), 100)
	total := grid.Volume()
	want := min(int(float64(total)*(percentage/100.0)+0.5), total)

	idx := make([]int, total)
	for i := range idx {
		idx[i] = i
	}
	// Fisher-Yates shuffle only first 'want' items
	for i := 0; i < want; i++ {
		j := i + r.Intn(total-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	for k := 0; k < want; k++ {
		grid.Voxels[idx[k]] = vox.Voxel{Active: true, ColorIndex: uint8(1 + r.Intn(254))}
	}
	return grid, nil
}

// RunGenerateNoiseVOX writes amount random .vox files named 0.vox..(amount-1).vox
// into outDir. seed makes the output reproducible.
func RunGenerateNoiseVOX(sx, sy, sz int, percentage float64, amount int, seed int64, outDir string) error {
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	const weyl = uint64(0x9e3779b97f4a7c15)
	for i := 0; i < amount; i++ {
		s := uint64(seed) ^ (uint64(i)+1)*weyl
		r := rand.New(rand.NewSource(int64(s & 0x7fffffffffffffff)))
		grid, err := generateNoiseGrid(sx, sy, sz, percentage, r)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, fmt.Sprintf("%d.vox", i))
		if err := vox.SaveVox(grid, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
	}
	return nil
}
