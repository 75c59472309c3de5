package vox

import "testing"

func TestOccupancyBitmap(t *testing.T) {
	voxels := make([]Voxel, 11)
	for _, i := range []int{0, 3, 8, 10} {
		voxels[i] = Voxel{Active: true, ColorIndex: 9}
	}
	data := appendOccupancy(nil, voxels)
	if len(data) != 2 || data[0] != 0b00001001 || data[1] != 0b00000101 {
		t.Fatalf("bitmap = %08b", data)
	}

	got := make([]Voxel, len(voxels))
	n, err := readOccupancy(append(data, 0xAA), got)
	if err != nil || n != 2 {
		t.Fatalf("readOccupancy = %d, %v", n, err)
	}
	for i := range voxels {
		if got[i].Active != voxels[i].Active || got[i].ColorIndex != 0 {
			t.Fatalf("voxel %d = %+v", i, got[i])
		}
	}
	if _, err := readOccupancy(data[:1], got); err == nil {
		t.Fatalf("short bitmap accepted")
	}
}

func TestNormalVarint(t *testing.T) {
	values := []int32{0, 1, -1, 63, -64, 64, 300, -70000, 1<<31 - 1, -1 << 31}
	var buf []byte
	for _, v := range values {
		buf = appendNormal(buf, v)
	}
	if got := len(appendNormal(nil, -1)); got != 1 {
		t.Fatalf("-1 takes %d bytes, want 1", got)
	}
	p := 0
	for _, want := range values {
		got, err := readNormal(buf, &p)
		if err != nil {
			t.Fatalf("readNormal: %v", err)
		}
		if got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
	}
	if p != len(buf) {
		t.Fatalf("consumed %d of %d bytes", p, len(buf))
	}
	if _, err := readNormal([]byte{0x80, 0x80}, new(int)); err == nil {
		t.Fatalf("truncated varint accepted")
	}
}
