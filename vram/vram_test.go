package vram

import "testing"

func TestRGBA5551ToRGBA8888(t *testing.T) {
	tests := []struct {
		name string
		cell uint16
		want uint32
	}{
		{"black, STP set", 0x8000, 0xFF000000},
		{"black, STP clear", 0x0000, 0xFF000000},
		{"white, STP set", 0xFFFF, 0xFFFFFFFF},
		{"white, STP clear", 0x7FFF, 0xFFFFFFFF},
		{"pure red", 0x801F, 0xFF0000FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBA5551ToRGBA8888(tt.cell); got != tt.want {
				t.Errorf("RGBA5551ToRGBA8888(%#04x) = %#08x, want %#08x", tt.cell, got, tt.want)
			}
		})
	}
}

func TestRGBA5551ChannelReplication(t *testing.T) {
	// A fully-set 5-bit channel must replicate to 0xFF, not 0xF8.
	const allBitsSet = 0x1F
	cell := uint16(allBitsSet) | uint16(allBitsSet<<5) | uint16(allBitsSet<<10)
	got := RGBA5551ToRGBA8888(cell)

	r := got & 0xFF
	g := (got >> 8) & 0xFF
	b := (got >> 16) & 0xFF

	if r != 0xFF || g != 0xFF || b != 0xFF {
		t.Errorf("got r=%#02x g=%#02x b=%#02x, want all 0xff", r, g, b)
	}
}

func TestPageLayout(t *testing.T) {
	if NumPages != PagesWide*PagesHigh {
		t.Fatalf("NumPages = %d, want %d", NumPages, PagesWide*PagesHigh)
	}

	for pn := 0; pn < NumPages; pn++ {
		x, y := PageStartX(pn), PageStartY(pn)
		if got := PageIndex(x/PageWidth, y/PageHeight); got != pn {
			t.Errorf("page %d starts at (%d,%d), PageIndex roundtrips to %d", pn, x, y, got)
		}
	}
}

func TestPageOfCoordinate(t *testing.T) {
	if got := PageOfCoordinate(0, 0); got != 0 {
		t.Errorf("PageOfCoordinate(0,0) = %d, want 0", got)
	}
	if got := PageOfCoordinate(PageWidth, 0); got != 1 {
		t.Errorf("PageOfCoordinate(%d,0) = %d, want 1", PageWidth, got)
	}
	if got := PageOfCoordinate(0, PageHeight); got != PagesWide {
		t.Errorf("PageOfCoordinate(0,%d) = %d, want %d", PageHeight, got, PagesWide)
	}
}

func TestBufferFillAndCell(t *testing.T) {
	b := NewBuffer()
	b.Fill(4, 4, 8, 8, 0x1234)

	if got := b.Cell(4, 4); got != 0x1234 {
		t.Errorf("Cell(4,4) = %#04x, want 0x1234", got)
	}
	if got := b.Cell(3, 4); got != 0 {
		t.Errorf("Cell(3,4) = %#04x, want 0 (outside fill)", got)
	}
	if got := b.Cell(11, 11); got != 0x1234 {
		t.Errorf("Cell(11,11) = %#04x, want 0x1234", got)
	}
	if got := b.Cell(12, 11); got != 0 {
		t.Errorf("Cell(12,11) = %#04x, want 0 (outside fill)", got)
	}
}

func TestBufferLoadBadSize(t *testing.T) {
	b := NewBuffer()
	if err := b.Load(make([]byte, 4)); err == nil {
		t.Fatal("Load with wrong size: want error, got nil")
	}
}

func TestBufferLoadRoundtrip(t *testing.T) {
	data := make([]byte, Size*2)
	data[0], data[1] = 0x34, 0x12
	data[2*(Width+1)], data[2*(Width+1)+1] = 0xCD, 0xAB

	b := NewBuffer()
	if err := b.Load(data); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := b.Cell(0, 0); got != 0x1234 {
		t.Errorf("Cell(0,0) = %#04x, want 0x1234", got)
	}
	if got := b.Cell(1, 1); got != 0xABCD {
		t.Errorf("Cell(1,1) = %#04x, want 0xabcd", got)
	}
}

func TestBufferRow(t *testing.T) {
	b := NewBuffer()
	b.Set(10, 2, 0x1111)
	b.Set(11, 2, 0x2222)
	b.Set(12, 2, 0x3333)

	row := b.Row(10, 2, 3)
	want := []uint16{0x1111, 0x2222, 0x3333}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("Row[%d] = %#04x, want %#04x", i, row[i], want[i])
		}
	}
}
