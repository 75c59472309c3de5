package utils

import (
	"fmt"
	"os"

	"github.com/voxelsplace/voxdestruct/api"
)

// RunVOXPACK2GLB converts a .voxpack into a .glb with one node per entry,
// each placed at its voxel offset.
func RunVOXPACK2GLB(inPackPath, outGlbPath string, voxelSize float32) error {
	data, err := os.ReadFile(inPackPath)
	if err != nil {
		return err
	}
	glb, err := api.PackToGLB(data, voxelSize)
	if err != nil {
		return fmt.Errorf("convert %s: %w", inPackPath, err)
	}
	if err := os.WriteFile(outGlbPath, glb, 0o644); err != nil {
		return err
	}
	fmt.Printf(".glb saved (%d bytes)\n", len(glb))
	return nil
}
