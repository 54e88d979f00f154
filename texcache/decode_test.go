package texcache

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arl/vramcache/device/software"
	"github.com/arl/vramcache/vram"
)

func TestDecodeIntoTextureDirect16Bit(t *testing.T) {
	buf := vram.NewBuffer()
	buf.Set(0, 0, 0x8000) // black, opaque
	buf.Set(1, 0, 0xFFFF) // white, opaque

	dev := software.New()
	tex := dev.FetchTexture(vram.TexturePageWidth, vram.TexturePageHeight, 1, 1, 1)
	decodeIntoTexture(buf, 0, 0, Direct16Bit, tex)

	img, ok := software.Image(tex)
	if !ok {
		t.Fatal("software.Image: not a software texture")
	}

	got := img.Pix[0:8]
	want := []byte{0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeIntoTextureIgnoresSemiTransparencyFlag(t *testing.T) {
	buf := vram.NewBuffer()
	buf.Fill(0, 0, vram.TexturePageWidth, vram.PageHeight, 0x7FFF) // white, STP flag clear

	dev := software.New()
	tex := dev.FetchTexture(vram.TexturePageWidth, vram.TexturePageHeight, 1, 1, 1)
	decodeIntoTexture(buf, 0, 0, Direct16Bit, tex)

	img, ok := software.Image(tex)
	if !ok {
		t.Fatal("software.Image: not a software texture")
	}

	for i := 0; i < len(img.Pix); i += 4 {
		px := img.Pix[i : i+4]
		if px[0] != 0xFF || px[1] != 0xFF || px[2] != 0xFF || px[3] != 0xFF {
			t.Fatalf("pixel %d = %#v, want opaque white regardless of the STP bit", i/4, px)
		}
	}
}

func TestDecodeIntoTexturePalette4Bit(t *testing.T) {
	buf := vram.NewBuffer()
	// CLUT row at (0,0): index 0 -> black opaque, index 1 -> white opaque.
	buf.Set(0, 0, 0x8000)
	buf.Set(1, 0, 0xFFFF)
	// Texture page starts at (64, 0) (page 1): one cell packs 4 indices.
	buf.Set(vram.PageWidth, 0, 0x0010) // nibbles: 0,1,0,0

	dev := software.New()
	tex := dev.FetchTexture(vram.TexturePageWidth, vram.TexturePageHeight, 1, 1, 1)
	decodeIntoTexture(buf, 1, NewPaletteReg(0, 0), Palette4Bit, tex)

	img, ok := software.Image(tex)
	if !ok {
		t.Fatal("software.Image: not a software texture")
	}

	got := img.Pix[0:16]
	want := []byte{
		0x00, 0x00, 0x00, 0xFF, // index 0: black
		0xFF, 0xFF, 0xFF, 0xFF, // index 1: white
		0x00, 0x00, 0x00, 0xFF, // index 0
		0x00, 0x00, 0x00, 0xFF, // index 0
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded pixels mismatch (-want +got):\n%s", diff)
	}
}
