package texcache

import "github.com/arl/vramcache/vram"

// Mode is the texture color mode a draw call samples a page in.
type Mode uint8

const (
	Palette4Bit Mode = iota
	Palette8Bit
	Direct16Bit
	ReservedDirect16Bit
)

// Normalize maps ReservedDirect16Bit onto Direct16Bit: the two decode
// identically, so treating them as distinct would let two SourceKeys with
// the same effective content coexist on the same page's front-of-list slot.
// Every SourceKey constructor calls this.
func (m Mode) Normalize() Mode {
	if m == ReservedDirect16Bit {
		return Direct16Bit
	}
	return m
}

func (m Mode) String() string {
	switch m {
	case Palette4Bit:
		return "Palette4Bit"
	case Palette8Bit:
		return "Palette8Bit"
	case Direct16Bit:
		return "Direct16Bit"
	case ReservedDirect16Bit:
		return "Reserved_Direct16Bit"
	default:
		return "Mode(?)"
	}
}

// Paletted reports whether mode indexes through a CLUT.
func (m Mode) Paletted() bool {
	return m < Direct16Bit
}

// WidthForMode is the VRAM-column footprint of a texture page in this mode:
// 64 for 4-bit, 128 for 8-bit, 256 for 16-bit.
func WidthForMode(m Mode) int {
	if m.Paletted() {
		return vram.TexturePageWidth >> (2 - uint(m))
	}
	return vram.TexturePageWidth
}
