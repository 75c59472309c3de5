package vox

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

const voxVersion = 150

// SaveVoxToBytes writes the active voxels of grid as a .vox file with a
// SIZE, XYZI and RGBA chunk. Each axis must fit in 256. Normals are not part
// of the format and are dropped. Records are 1-based, so color index 255 has
// no slot and is written as 254.
func SaveVoxToBytes(grid *VoxelGrid) ([]byte, error) {
	x, y, z := grid.Dims()
	if x > maxVoxAxis || y > maxVoxAxis || z > maxVoxAxis {
		return nil, fmt.Errorf("grid %dx%dx%d too large for .vox", x, y, z)
	}

	var size bytes.Buffer
	_ = binary.Write(&size, binary.LittleEndian, [3]int32{int32(x), int32(y), int32(z)})

	var xyzi bytes.Buffer
	_ = binary.Write(&xyzi, binary.LittleEndian, int32(grid.ActiveCount()))
	for i, v := range grid.Voxels {
		if !v.Active {
			continue
		}
		vx, vy, vz := grid.ToCoords(i)
		c := min(int(v.ColorIndex)+1, 255)
		xyzi.Write([]byte{byte(vx), byte(vy), byte(vz), byte(c)})
	}

	var rgba bytes.Buffer
	for _, c := range grid.Palette {
		rgba.Write([]byte{to8(c[0]), to8(c[1]), to8(c[2]), 255})
	}

	var children bytes.Buffer
	writeChunk(&children, chunkSize, size.Bytes())
	writeChunk(&children, chunkXYZI, xyzi.Bytes())
	writeChunk(&children, chunkRGBA, rgba.Bytes())

	var out bytes.Buffer
	out.WriteString(voxMagic)
	_ = binary.Write(&out, binary.LittleEndian, int32(voxVersion))
	out.WriteString(chunkMain)
	_ = binary.Write(&out, binary.LittleEndian, [2]int32{0, int32(children.Len())})
	out.Write(children.Bytes())
	return out.Bytes(), nil
}

func SaveVox(grid *VoxelGrid, filename string) error {
	data, err := SaveVoxToBytes(grid)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

func writeChunk(buf *bytes.Buffer, id string, content []byte) {
	buf.WriteString(id)
	_ = binary.Write(buf, binary.LittleEndian, [2]int32{int32(len(content)), 0})
	buf.Write(content)
}

func to8(c float32) uint8 {
	v := math.Round(float64(c) * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
