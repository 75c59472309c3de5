package utils

// RunVOXPACK2VOX extracts all grids of a .voxpack into the output directory as .vox files.
func RunVOXPACK2VOX(inPackPath, outDir string) error {
	return UnpackToDir(inPackPath, outDir)
}
