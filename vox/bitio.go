package vox

import (
	"fmt"
	"io"
)

// bitmapLen is the byte length of an occupancy bitmap for n voxels.
func bitmapLen(n int) int { return (n + 7) / 8 }

// appendOccupancy appends one bit per voxel, LSB first, set when the voxel is active.
func appendOccupancy(dst []byte, voxels []Voxel) []byte {
	var acc byte
	var n uint8
	for _, v := range voxels {
		if v.Active {
			acc |= 1 << n
		}
		n++
		if n == 8 {
			dst = append(dst, acc)
			acc, n = 0, 0
		}
	}
	if n > 0 {
		dst = append(dst, acc)
	}
	return dst
}

// readOccupancy resets voxels to inactive/active from the bitmap at the start
// of src and returns the number of bytes it used.
func readOccupancy(src []byte, voxels []Voxel) (int, error) {
	size := bitmapLen(len(voxels))
	if len(src) < size {
		return 0, fmt.Errorf("occupancy bitmap: %w", io.ErrUnexpectedEOF)
	}
	for i := range voxels {
		voxels[i] = Voxel{Active: src[i>>3]&(1<<(i&7)) != 0}
	}
	return size, nil
}

// appendNormal writes n as a zigzag uvarint so small negative values stay short.
func appendNormal(dst []byte, n int32) []byte {
	v := uint32(n<<1) ^ uint32(n>>31)
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

func readNormal(src []byte, pos *int) (int32, error) {
	var v uint32
	i := *pos
	for s := uint(0); ; s += 7 {
		if i >= len(src) || s > 28 {
			return 0, io.ErrUnexpectedEOF
		}
		b := src[i]
		i++
		v |= uint32(b&0x7F) << s
		if b < 0x80 {
			break
		}
	}
	*pos = i
	return int32(v>>1) ^ -int32(v&1), nil
}
