package vox

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrNotVox        = errors.New("not a VOX file (missing 'VOX ')")
	ErrMissingMain   = errors.New("VOX missing MAIN chunk")
	ErrMissingChunks = errors.New("VOX missing SIZE or XYZI chunk")
	ErrBadSize       = errors.New("VOX SIZE out of range")
)

const (
	voxMagic  = "VOX "
	chunkMain = "MAIN"
	chunkSize = "SIZE"
	chunkXYZI = "XYZI"
	chunkRGBA = "RGBA"

	// XYZI coordinates are single bytes
	maxVoxAxis = 256
)

// XYZI is one raw voxel record. ColorIndex is 1-based; 0 means "no color".
type XYZI struct {
	X, Y, Z    uint8
	ColorIndex uint8
}

// Model is the raw content of a .vox file before it is turned into a grid.
// Palette is nil when the file carries no RGBA chunk.
type Model struct {
	Version int32
	SizeX   int32
	SizeY   int32
	SizeZ   int32
	Voxels  []XYZI
	Palette *[256][4]uint8
}

func LoadVox(filename string) (*VoxelGrid, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return LoadVoxFromBytes(data)
}

// DecodeVox reads a whole .vox stream and builds its grid.
func DecodeVox(r io.Reader) (*VoxelGrid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadVoxFromBytes(data)
}

func LoadVoxFromBytes(data []byte) (*VoxelGrid, error) {
	m, err := ParseVoxModel(data)
	if err != nil {
		return nil, err
	}
	return m.Grid()
}

// ParseVoxModel walks the chunk tree. Chunks it does not know are skipped by
// their declared content and children sizes. When a file holds several SIZE or
// XYZI chunks the last one read wins.
func ParseVoxModel(data []byte) (*Model, error) {
	if len(data) < 4 || string(data[:4]) != voxMagic {
		return nil, ErrNotVox
	}
	r := bytes.NewReader(data[4:])
	m := &Model{}
	if err := binary.Read(r, binary.LittleEndian, &m.Version); err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}

	id, mainContent, mainChildren, err := readChunkHeader(r)
	if err != nil || id != chunkMain {
		return nil, ErrMissingMain
	}
	if err := skip(r, int64(mainContent)); err != nil {
		return nil, err
	}
	mainEnd := pos(r) + int64(mainChildren)

	gotSize, gotXYZI := false, false
	for pos(r) < mainEnd {
		id, contentSize, childrenSize, err := readChunkHeader(r)
		if err != nil {
			return nil, fmt.Errorf("read chunk header: %w", err)
		}
		contentStart := pos(r)

		switch id {
		case chunkSize:
			var dims [3]int32
			if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
				return nil, fmt.Errorf("read SIZE: %w", err)
			}
			for _, d := range dims {
				if d <= 0 || d > maxVoxAxis {
					return nil, fmt.Errorf("SIZE %v: %w", dims, ErrBadSize)
				}
			}
			m.SizeX, m.SizeY, m.SizeZ = dims[0], dims[1], dims[2]
			gotSize = true
		case chunkXYZI:
			var n int32
			if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
				return nil, fmt.Errorf("read XYZI count: %w", err)
			}
			if n < 0 || int64(n)*4 > int64(r.Len()) {
				return nil, fmt.Errorf("XYZI count %d exceeds data: %w", n, io.ErrUnexpectedEOF)
			}
			raw := make([]byte, int(n)*4)
			if _, err := io.ReadFull(r, raw); err != nil {
				return nil, fmt.Errorf("read XYZI: %w", err)
			}
			m.Voxels = make([]XYZI, n)
			for i := range m.Voxels {
				m.Voxels[i] = XYZI{X: raw[i*4], Y: raw[i*4+1], Z: raw[i*4+2], ColorIndex: raw[i*4+3]}
			}
			gotXYZI = true
		case chunkRGBA:
			var pal [256][4]uint8
			if err := binary.Read(r, binary.LittleEndian, &pal); err != nil {
				return nil, fmt.Errorf("read RGBA: %w", err)
			}
			for i := range pal {
				pal[i][3] = 255
			}
			m.Palette = &pal
		}

		if rest := int64(contentSize) - (pos(r) - contentStart); rest > 0 {
			if err := skip(r, rest); err != nil {
				return nil, err
			}
		}
		if childrenSize > 0 {
			if err := skip(r, int64(childrenSize)); err != nil {
				return nil, err
			}
		}
	}

	if !gotSize || !gotXYZI {
		return nil, ErrMissingChunks
	}
	return m, nil
}

// Grid converts the raw model. Records outside the declared size are dropped.
func (m *Model) Grid() (*VoxelGrid, error) {
	var raw [256][4]uint8
	if m.Palette != nil {
		raw = *m.Palette
	} else {
		raw = DefaultPalette256()
	}
	g, err := NewVoxelGrid(int(m.SizeX), int(m.SizeY), int(m.SizeZ), NormalizePalette(raw))
	if err != nil {
		return nil, err
	}
	for _, rec := range m.Voxels {
		x, y, z := int(rec.X), int(rec.Y), int(rec.Z)
		if !g.InBounds(x, y, z) {
			continue
		}
		g.Voxels[g.ToIndex(x, y, z)] = Voxel{Active: true, ColorIndex: paletteIndex(rec.ColorIndex)}
	}
	return g, nil
}

func paletteIndex(c uint8) uint8 {
	i := int(c) - 1
	if i < 0 {
		i = 0
	}
	if i > 255 {
		i = 255
	}
	return uint8(i)
}

// DefaultPalette256 is used when a file has no RGBA chunk: entry 0 is fully
// transparent, entry i is gray (i,i,i).
func DefaultPalette256() [256][4]uint8 {
	var p [256][4]uint8
	for i := 1; i < 256; i++ {
		v := uint8(i)
		p[i] = [4]uint8{v, v, v, 255}
	}
	return p
}

// NormalizePalette maps 0..255 channels into [0,1]. Alpha is always 1.
func NormalizePalette(raw [256][4]uint8) Palette {
	var p Palette
	for i, c := range raw {
		p[i] = Color{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255, 1}
	}
	return p
}

// DefaultPalette is the normalized form of DefaultPalette256.
func DefaultPalette() Palette {
	return NormalizePalette(DefaultPalette256())
}

func readChunkHeader(r *bytes.Reader) (string, int32, int32, error) {
	var id [4]byte
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return "", 0, 0, err
	}
	var sizes [2]int32
	if err := binary.Read(r, binary.LittleEndian, &sizes); err != nil {
		return "", 0, 0, err
	}
	return string(id[:]), sizes[0], sizes[1], nil
}

func skip(r *bytes.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	if n > int64(r.Len()) {
		return fmt.Errorf("skip %d bytes: %w", n, io.ErrUnexpectedEOF)
	}
	_, err := r.Seek(n, io.SeekCurrent)
	return err
}

func pos(r *bytes.Reader) int64 {
	return r.Size() - int64(r.Len())
}
