package texcache

import (
	"testing"

	"github.com/arl/vramcache/vram"
)

func TestHashPageDeterministic(t *testing.T) {
	buf := vram.NewBuffer()
	buf.Fill(0, 0, vram.PageWidth, vram.PageHeight, 0xBEEF)

	h1 := HashPage(buf, 0, Direct16Bit)
	h2 := HashPage(buf, 0, Direct16Bit)
	if h1 != h2 {
		t.Errorf("HashPage is not deterministic: %#x != %#x", h1, h2)
	}
}

func TestHashPageDiffersOnContentChange(t *testing.T) {
	buf := vram.NewBuffer()
	buf.Fill(0, 0, vram.PageWidth, vram.PageHeight, 0x1111)
	before := HashPage(buf, 0, Direct16Bit)

	buf.Set(0, 0, 0x2222)
	after := HashPage(buf, 0, Direct16Bit)

	if before == after {
		t.Error("HashPage should change when page content changes")
	}
}

func TestHashPageDiffersOnMode(t *testing.T) {
	buf := vram.NewBuffer()
	buf.Fill(0, 0, vram.PageWidth, vram.PageHeight, 0x4242)

	h4 := HashPage(buf, 0, Palette4Bit)
	h16 := HashPage(buf, 0, Direct16Bit)
	if h4 == h16 {
		t.Error("same VRAM bytes read as two different modes should hash differently")
	}
}

func TestHashPaletteZeroForDirectModes(t *testing.T) {
	buf := vram.NewBuffer()
	buf.Fill(0, 0, 16, 1, 0x3333)

	if got := HashPalette(buf, NewPaletteReg(0, 0), Direct16Bit); got != 0 {
		t.Errorf("HashPalette for a direct mode = %#x, want 0", got)
	}
}

func TestHashPaletteDiffersOnContentChange(t *testing.T) {
	buf := vram.NewBuffer()
	buf.Fill(0, 0, 16, 1, 0x1111)
	before := HashPalette(buf, NewPaletteReg(0, 0), Palette4Bit)

	buf.Set(0, 0, 0x2222)
	after := HashPalette(buf, NewPaletteReg(0, 0), Palette4Bit)

	if before == after {
		t.Error("HashPalette should change when CLUT content changes")
	}
}
