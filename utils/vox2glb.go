package utils

import (
	"fmt"
	"os"

	"github.com/voxelsplace/voxdestruct/api"
)

// RunVOX2GLB converts a .vox file into a .glb using the greedy mesher.
func RunVOX2GLB(inPath, outPath string, voxelSize float32) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	glb, err := api.VOXToGLB(data, voxelSize)
	if err != nil {
		return fmt.Errorf("convert %s: %w", inPath, err)
	}
	if err := os.WriteFile(outPath, glb, 0o644); err != nil {
		return err
	}
	fmt.Printf(".glb saved (%d bytes)\n", len(glb))
	return nil
}
