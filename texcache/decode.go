package texcache

import (
	"encoding/binary"

	"github.com/arl/vramcache/device"
	"github.com/arl/vramcache/vram"
)

// stagingBuffer is the single reusable region decoders write into when a
// texture can't be mapped directly. Single-threaded use makes reuse across
// calls safe: no decode outlives the call that produced it.
var stagingBuffer [vram.TexturePageWidth * vram.TexturePageHeight * 4]byte

const stagingStride = vram.TexturePageWidth * 4

// decodeRow4 expands one VRAM cell (4 nibbles) through a 16-entry palette
// into 4 consecutive RGBA8888 texels starting at dst.
func decodeRow4(cell uint16, palette []uint16, dst []byte) {
	putPixel(dst[0:4], vram.RGBA5551ToRGBA8888(palette[cell&0x0F]))
	putPixel(dst[4:8], vram.RGBA5551ToRGBA8888(palette[(cell>>4)&0x0F]))
	putPixel(dst[8:12], vram.RGBA5551ToRGBA8888(palette[(cell>>8)&0x0F]))
	putPixel(dst[12:16], vram.RGBA5551ToRGBA8888(palette[cell>>12]))
}

// decodeRow8 expands one VRAM cell (low byte, high byte) through a
// 256-entry palette into 2 consecutive RGBA8888 texels starting at dst.
func decodeRow8(cell uint16, palette []uint16, dst []byte) {
	putPixel(dst[0:4], vram.RGBA5551ToRGBA8888(palette[cell&0xFF]))
	putPixel(dst[4:8], vram.RGBA5551ToRGBA8888(palette[cell>>8]))
}

func putPixel(dst []byte, rgba uint32) {
	binary.LittleEndian.PutUint32(dst, rgba)
}

func decodeTexture4(page vram.Reader, startX, startY int, palette []uint16, dst []byte, stride int) {
	for y := 0; y < vram.TexturePageHeight; y++ {
		row := page.Row(startX, startY+y, vram.TexturePageWidth/4)
		dstRow := dst[y*stride:]
		for x, cell := range row {
			decodeRow4(cell, palette, dstRow[x*16:x*16+16])
		}
	}
}

func decodeTexture8(page vram.Reader, startX, startY int, palette []uint16, dst []byte, stride int) {
	for y := 0; y < vram.TexturePageHeight; y++ {
		row := page.Row(startX, startY+y, vram.TexturePageWidth/2)
		dstRow := dst[y*stride:]
		for x, cell := range row {
			decodeRow8(cell, palette, dstRow[x*8:x*8+8])
		}
	}
}

func decodeTexture16(page vram.Reader, startX, startY int, dst []byte, stride int) {
	for y := 0; y < vram.TexturePageHeight; y++ {
		row := page.Row(startX, startY+y, vram.TexturePageWidth)
		dstRow := dst[y*stride:]
		for x, cell := range row {
			putPixel(dstRow[x*4:x*4+4], vram.RGBA5551ToRGBA8888(cell))
		}
	}
}

// decodeTexture writes the decoded RGBA8888 content of page's footprint in
// mode (and, if paletted, palette's CLUT) to dst at the given row stride.
func decodeTexture(r vram.Reader, page uint8, palette PaletteReg, mode Mode, dst []byte, stride int) {
	startX, startY := vram.PageStartX(int(page)), vram.PageStartY(int(page))

	switch mode {
	case Palette4Bit:
		clut := r.Row(palette.GetXBase(), palette.GetYBase(), 16)
		decodeTexture4(r, startX, startY, clut, dst, stride)
	case Palette8Bit:
		clut := r.Row(palette.GetXBase(), palette.GetYBase(), 256)
		decodeTexture8(r, startX, startY, clut, dst, stride)
	case Direct16Bit, ReservedDirect16Bit:
		decodeTexture16(r, startX, startY, dst, stride)
	}
}

// decodeIntoTexture decodes page/palette/mode directly into tex, mapping it
// when possible and otherwise falling back to the shared staging buffer
// followed by an Update upload.
func decodeIntoTexture(r vram.Reader, page uint8, palette PaletteReg, mode Mode, tex device.Texture) {
	dst, stride, mapped := tex.Map(0, 0, vram.TexturePageWidth, vram.TexturePageHeight)
	if !mapped {
		dst = stagingBuffer[:]
		stride = stagingStride
	}

	decodeTexture(r, page, palette, mode, dst, stride)

	if mapped {
		tex.Unmap()
	} else {
		tex.Update(0, 0, vram.TexturePageWidth, vram.TexturePageHeight, dst, stride)
	}
}
