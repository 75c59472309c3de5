package vox

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// PackCompression indicates the compression used for the pack content section.
type PackCompression uint8

const (
	PackCompNone PackCompression = 0
	PackCompZlib PackCompression = 1
	PackCompZstd PackCompression = 2
)

const (
	packMagicStr = "VOXDPACK"
	packVersion1 = 1
)

var ErrChecksum = errors.New("voxpack entry checksum mismatch")

// PackEntry is one grid inside a pack. Offset places the grid in the voxel
// space of the pack's first entry (the body a fragment was cut from).
type PackEntry struct {
	Name   string
	Offset [3]int32
	Grid   *VoxelGrid
}

// Pack is a set of grids saved together, typically a carved body and the
// fragments split off it.
type Pack struct {
	Entries []PackEntry
}

// Marshal encodes the pack with the given compression codec.
func (p *Pack) Marshal(comp PackCompression) ([]byte, error) {
	var content bytes.Buffer
	_ = binary.Write(&content, binary.LittleEndian, uint32(len(p.Entries)))
	for _, e := range p.Entries {
		if e.Grid == nil {
			return nil, fmt.Errorf("entry %q has no grid", e.Name)
		}
		nb := []byte(e.Name)
		if len(nb) > 0xFFFF {
			return nil, fmt.Errorf("name too long: %s", e.Name)
		}
		x, y, z := e.Grid.Dims()
		enc := bestEncoding(e.Grid)

		_ = binary.Write(&content, binary.LittleEndian, uint16(len(nb)))
		_, _ = content.Write(nb)
		_ = binary.Write(&content, binary.LittleEndian, e.Offset)
		_ = binary.Write(&content, binary.LittleEndian, [3]uint32{uint32(x), uint32(y), uint32(z)})
		_ = binary.Write(&content, binary.LittleEndian, e.Grid.Palette)
		_ = binary.Write(&content, binary.LittleEndian, enc.encoding)
		_ = binary.Write(&content, binary.LittleEndian, uint32(len(enc.payload)))
		_, _ = content.Write(enc.payload)
		_ = binary.Write(&content, binary.LittleEndian, xxhash.Sum64(enc.payload))
	}

	var finalContent []byte
	switch comp {
	case PackCompNone:
		finalContent = content.Bytes()
	case PackCompZlib:
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if _, err := zw.Write(content.Bytes()); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		finalContent = buf.Bytes()
	case PackCompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		finalContent = enc.EncodeAll(content.Bytes(), nil)
		_ = enc.Close()
	default:
		return nil, fmt.Errorf("unsupported compression: %d", comp)
	}

	var out bytes.Buffer
	out.WriteString(packMagicStr)
	_ = binary.Write(&out, binary.LittleEndian, uint8(packVersion1))
	_ = binary.Write(&out, binary.LittleEndian, uint8(comp))
	_, _ = out.Write(finalContent)
	return out.Bytes(), nil
}

// UnmarshalPack parses a .voxpack and returns the pack and the compression used.
func UnmarshalPack(data []byte) (*Pack, PackCompression, error) {
	if len(data) < 10 || string(data[:8]) != packMagicStr {
		return nil, 0, fmt.Errorf("not a valid .voxpack")
	}
	if version := data[8]; version != packVersion1 {
		return nil, 0, fmt.Errorf("unsupported pack version: %d", version)
	}
	comp := PackCompression(data[9])
	contentBytes := data[10:]
	switch comp {
	case PackCompNone:
	case PackCompZlib:
		b, err := zlibDecompress(contentBytes)
		if err != nil {
			return nil, 0, err
		}
		contentBytes = b
	case PackCompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, 0, err
		}
		defer dec.Close()
		b, err := dec.DecodeAll(contentBytes, nil)
		if err != nil {
			return nil, 0, err
		}
		contentBytes = b
	default:
		return nil, 0, fmt.Errorf("unsupported compression: %d", comp)
	}

	r := bytes.NewReader(contentBytes)
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, 0, err
	}
	pack := &Pack{}
	for i := uint32(0); i < n; i++ {
		e, err := readPackEntry(r)
		if err != nil {
			return nil, 0, fmt.Errorf("entry %d: %w", i, err)
		}
		pack.Entries = append(pack.Entries, e)
	}
	return pack, comp, nil
}

func readPackEntry(r *bytes.Reader) (PackEntry, error) {
	var e PackEntry
	var nameLen uint16
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return e, err
	}
	nameBytes := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBytes); err != nil {
		return e, err
	}
	e.Name = string(nameBytes)
	if err := binary.Read(r, binary.LittleEndian, &e.Offset); err != nil {
		return e, err
	}
	var dims [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return e, err
	}
	if err := checkDims(int(dims[0]), int(dims[1]), int(dims[2])); err != nil {
		return e, err
	}
	var pal Palette
	if err := binary.Read(r, binary.LittleEndian, &pal); err != nil {
		return e, err
	}
	var enc uint8
	if err := binary.Read(r, binary.LittleEndian, &enc); err != nil {
		return e, err
	}
	var plen uint32
	if err := binary.Read(r, binary.LittleEndian, &plen); err != nil {
		return e, err
	}
	if int64(plen) > int64(r.Len()) {
		return e, io.ErrUnexpectedEOF
	}
	payload := make([]byte, plen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return e, err
	}
	var sum uint64
	if err := binary.Read(r, binary.LittleEndian, &sum); err != nil {
		return e, err
	}
	if xxhash.Sum64(payload) != sum {
		return e, ErrChecksum
	}

	grid, err := NewVoxelGrid(int(dims[0]), int(dims[1]), int(dims[2]), pal)
	if err != nil {
		return e, err
	}
	if err := decodeVoxels(grid, enc, payload); err != nil {
		return e, err
	}
	e.Grid = grid
	return e, nil
}
