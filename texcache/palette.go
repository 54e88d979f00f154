package texcache

// PaletteReg is the opaque 16-bit draw-state field encoding the VRAM
// location of a CLUT row: bits [0:6) hold x/16, bits [6:15) hold y. Matches
// the console's texture-page color-lookup-table register layout.
type PaletteReg uint16

func NewPaletteReg(xBase, yBase int) PaletteReg {
	return PaletteReg(((xBase / 16) & 0x3F) | ((yBase & 0x1FF) << 6))
}

// GetXBase and GetYBase return the VRAM coordinate of the CLUT row's first
// cell.
func (p PaletteReg) GetXBase() int { return int(p&0x3F) * 16 }
func (p PaletteReg) GetYBase() int { return int(p>>6) & 0x1FF }

// GetWidth returns the number of contiguous VRAM cells that make up the
// CLUT for mode: 16 for 4-bit, 256 for 8-bit. Meaningless for direct modes.
func (p PaletteReg) GetWidth(mode Mode) int {
	if mode == Palette4Bit {
		return 16
	}
	return 256
}
