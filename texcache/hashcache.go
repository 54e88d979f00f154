package texcache

import (
	"github.com/cespare/xxhash/v2"

	"github.com/arl/vramcache/device"
	"github.com/arl/vramcache/vram"
)

// hashType is the content-addressing hash width, using cespare/xxhash/v2's
// 64-bit XXH64 (see DESIGN.md) — any collision-resistant 64-bit hash
// satisfies the cache's actual requirement, which is "identical VRAM bytes
// produce identical keys," not a specific algorithm.
type hashType = uint64

// HashCacheKey content-addresses one decoded texture page: its pixel
// content, its CLUT content (zero for direct modes), and its mode, so a
// 4-bit and an 8-bit read of coincidentally identical VRAM bytes never
// alias onto the same entry.
type HashCacheKey struct {
	TextureHash hashType
	PaletteHash hashType
	Mode        hashType
}

// hashCacheEntry owns one host texture and is kept alive by outstanding
// Sources. It outlives any single Source: destroying a Source only
// decrements RefCount, so the next near-future reupload of identical
// content is a cache hit rather than a redecode.
type hashCacheEntry struct {
	texture  device.Texture
	refCount int
	age      int
}

// HashPage incrementally hashes page's VRAM footprint in mode, row by row,
// to avoid a staging buffer: VRAM pages aren't contiguous in memory, so a
// one-shot hash would first have to gather every row into one buffer.
func HashPage(r vram.Reader, page uint8, mode Mode) hashType {
	h := xxhash.New()

	startX := vram.PageStartX(int(page))
	startY := vram.PageStartY(int(page))
	width := vram.PageWidth
	switch mode {
	case Palette8Bit:
		width *= 2
	case Direct16Bit, ReservedDirect16Bit:
		width *= 4
	}

	var rowBytes [vram.PageWidth * 4 * 2]byte
	for y := 0; y < vram.PageHeight; y++ {
		row := r.Row(startX, startY+y, width)
		for i, cell := range row {
			rowBytes[2*i] = byte(cell)
			rowBytes[2*i+1] = byte(cell >> 8)
		}
		h.Write(rowBytes[:width*2])
	}

	return h.Sum64()
}

// HashPalette one-shot hashes the CLUT row for mode; 0 for direct modes,
// which have no CLUT.
func HashPalette(r vram.Reader, palette PaletteReg, mode Mode) hashType {
	if !mode.Paletted() {
		return 0
	}

	width := palette.GetWidth(mode)
	row := r.Row(palette.GetXBase(), palette.GetYBase(), width)

	var buf [256 * 2]byte
	for i, cell := range row {
		buf[2*i] = byte(cell)
		buf[2*i+1] = byte(cell >> 8)
	}
	return xxhash.Sum64(buf[:width*2])
}
