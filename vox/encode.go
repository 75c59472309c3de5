package vox

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Grid payload encodings. The low bits select the layout, the high bits are flags.
const (
	encDense  = 0 // occupancy bitmap + color of every voxel
	encSparse = 1 // occupancy bitmap + color of active voxels only

	encNormals = 0x40 // zigzag uvarint normal per encoded voxel follows the colors
	encZlib    = 0x80
	encMask    = 0x3F
)

type encoded struct {
	encoding uint8
	payload  []byte
}

func hasNormals(grid *VoxelGrid, activeOnly bool) bool {
	for _, v := range grid.Voxels {
		if v.Normal != 0 && (v.Active || !activeOnly) {
			return true
		}
	}
	return false
}

func encodeVoxels(grid *VoxelGrid, activeOnly bool) encoded {
	out := appendOccupancy(make([]byte, 0, bitmapLen(len(grid.Voxels))), grid.Voxels)
	enc := uint8(encDense)
	if activeOnly {
		enc = encSparse
	}
	for _, v := range grid.Voxels {
		if activeOnly && !v.Active {
			continue
		}
		out = append(out, v.ColorIndex)
	}
	if hasNormals(grid, activeOnly) {
		enc |= encNormals
		for _, v := range grid.Voxels {
			if activeOnly && !v.Active {
				continue
			}
			out = appendNormal(out, v.Normal)
		}
	}
	return encoded{encoding: enc, payload: out}
}

// sparseIsLossless reports whether dropping inactive voxels loses nothing,
// i.e. every inactive voxel is the zero value.
func sparseIsLossless(grid *VoxelGrid) bool {
	for _, v := range grid.Voxels {
		if !v.Active && v != (Voxel{}) {
			return false
		}
	}
	return true
}

func zlibCompress(b []byte) []byte {
	var buf bytes.Buffer
	zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	_, _ = zw.Write(b)
	_ = zw.Close()
	return buf.Bytes()
}

func zlibDecompress(b []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// bestEncoding picks the smallest lossless payload, compressed or not.
func bestEncoding(grid *VoxelGrid) encoded {
	candidates := []encoded{encodeVoxels(grid, false)}
	if sparseIsLossless(grid) {
		candidates = append(candidates, encodeVoxels(grid, true))
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.payload) < len(best.payload) {
			best = c
		}
	}
	for _, c := range candidates {
		zb := zlibCompress(c.payload)
		if len(zb) < len(best.payload) {
			best = encoded{encoding: c.encoding | encZlib, payload: zb}
		}
	}
	return best
}

// decodeVoxels fills grid.Voxels from a payload produced by bestEncoding.
func decodeVoxels(grid *VoxelGrid, enc uint8, payload []byte) error {
	if enc&encZlib != 0 {
		var err error
		payload, err = zlibDecompress(payload)
		if err != nil {
			return err
		}
	}
	layout := enc & encMask
	if layout != encDense && layout != encSparse {
		return fmt.Errorf("unknown voxel encoding: %d", layout)
	}

	p, err := readOccupancy(payload, grid.Voxels)
	if err != nil {
		return err
	}

	for i := range grid.Voxels {
		if layout == encSparse && !grid.Voxels[i].Active {
			continue
		}
		if p >= len(payload) {
			return io.ErrUnexpectedEOF
		}
		grid.Voxels[i].ColorIndex = payload[p]
		p++
	}
	if enc&encNormals == 0 {
		return nil
	}
	for i := range grid.Voxels {
		if layout == encSparse && !grid.Voxels[i].Active {
			continue
		}
		n, err := readNormal(payload, &p)
		if err != nil {
			return err
		}
		grid.Voxels[i].Normal = n
	}
	return nil
}
