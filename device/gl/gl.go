// Package gl implements device.Device on top of a real OpenGL 3.3
// core-profile context, allocating and uploading textures the way a
// typical emulator front end manages its framebuffer texture. Here the
// same calls allocate and stream many small texture-cache pages instead of
// one framebuffer.
//
// Requires an OpenGL context to already be current on the calling thread
// (see cmd/vramcache, which creates one via SDL2) before any Device method
// is called.
package gl

import (
	"fmt"
	"unsafe"

	glcore "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/arl/vramcache/device"
)

// Device allocates RGBA8 GL_TEXTURE_2D objects and streams into them via a
// pixel-buffer object, mapped with glMapBufferRange for the cache's
// direct-map decode path and glTexSubImage2D for the staging-buffer path.
type Device struct {
	pbo uint32
}

func New() *Device {
	var pbo uint32
	glcore.GenBuffers(1, &pbo)
	return &Device{pbo: pbo}
}

func (d *Device) FetchTexture(width, height, layers, levels, samples int) device.Texture {
	var id uint32
	glcore.GenTextures(1, &id)
	if id == 0 {
		return nil
	}

	glcore.BindTexture(glcore.TEXTURE_2D, id)
	glcore.TexParameteri(glcore.TEXTURE_2D, glcore.TEXTURE_MIN_FILTER, glcore.NEAREST)
	glcore.TexParameteri(glcore.TEXTURE_2D, glcore.TEXTURE_MAG_FILTER, glcore.NEAREST)
	glcore.TexParameteri(glcore.TEXTURE_2D, glcore.TEXTURE_WRAP_S, glcore.CLAMP_TO_EDGE)
	glcore.TexParameteri(glcore.TEXTURE_2D, glcore.TEXTURE_WRAP_T, glcore.CLAMP_TO_EDGE)
	glcore.TexImage2D(glcore.TEXTURE_2D, 0, glcore.RGBA8, int32(width), int32(height), 0,
		glcore.RGBA, glcore.UNSIGNED_BYTE, nil)
	glcore.BindTexture(glcore.TEXTURE_2D, 0)

	if err := glcore.GetError(); err != glcore.NO_ERROR {
		glcore.DeleteTextures(1, &id)
		return nil
	}

	return &texture{dev: d, id: id, width: width, height: height}
}

func (d *Device) RecycleTexture(tex device.Texture) {
	t, ok := tex.(*texture)
	if !ok || t == nil {
		return
	}
	glcore.DeleteTextures(1, &t.id)
	t.id = 0
}

type texture struct {
	dev        *Device
	id         uint32
	width      int
	height     int
	mapX, mapY int
	mapW, mapH int
	mapped     bool
}

func (t *texture) Width() int  { return t.width }
func (t *texture) Height() int { return t.height }

// Map orphans and maps the shared streaming PBO for w*h RGBA8 texels. The
// PBO is reused across Map calls (single-threaded, one decode in flight at
// a time), so Unmap must be called before the next Map.
func (t *texture) Map(x, y, w, h int) ([]byte, int, bool) {
	size := w * h * 4
	glcore.BindBuffer(glcore.PIXEL_UNPACK_BUFFER, t.dev.pbo)
	glcore.BufferData(glcore.PIXEL_UNPACK_BUFFER, size, nil, glcore.STREAM_DRAW)
	ptr := glcore.MapBufferRange(glcore.PIXEL_UNPACK_BUFFER, 0, size,
		glcore.MAP_WRITE_BIT|glcore.MAP_INVALIDATE_BUFFER_BIT)
	if ptr == nil {
		glcore.BindBuffer(glcore.PIXEL_UNPACK_BUFFER, 0)
		return nil, 0, false
	}

	t.mapX, t.mapY, t.mapW, t.mapH = x, y, w, h
	t.mapped = true
	return unsafe.Slice((*byte)(ptr), size), w * 4, true
}

func (t *texture) Unmap() {
	if !t.mapped {
		return
	}
	glcore.UnmapBuffer(glcore.PIXEL_UNPACK_BUFFER)

	glcore.BindTexture(glcore.TEXTURE_2D, t.id)
	glcore.TexSubImage2D(glcore.TEXTURE_2D, 0, int32(t.mapX), int32(t.mapY),
		int32(t.mapW), int32(t.mapH), glcore.RGBA, glcore.UNSIGNED_BYTE, nil)
	glcore.BindTexture(glcore.TEXTURE_2D, 0)
	glcore.BindBuffer(glcore.PIXEL_UNPACK_BUFFER, 0)
	t.mapped = false
}

func (t *texture) Update(x, y, w, h int, src []byte, stride int) {
	glcore.BindTexture(glcore.TEXTURE_2D, t.id)
	if stride == w*4 {
		glcore.TexSubImage2D(glcore.TEXTURE_2D, 0, int32(x), int32(y), int32(w), int32(h),
			glcore.RGBA, glcore.UNSIGNED_BYTE, glcore.Ptr(&src[0]))
	} else {
		// Rows aren't tightly packed: upload one row at a time.
		for row := 0; row < h; row++ {
			rowSrc := src[row*stride : row*stride+w*4]
			glcore.TexSubImage2D(glcore.TEXTURE_2D, 0, int32(x), int32(y+row), int32(w), 1,
				glcore.RGBA, glcore.UNSIGNED_BYTE, glcore.Ptr(&rowSrc[0]))
		}
	}
	glcore.BindTexture(glcore.TEXTURE_2D, 0)
}

// ID exposes the raw GL texture name for the harness's display path.
func ID(tex device.Texture) (uint32, error) {
	t, ok := tex.(*texture)
	if !ok {
		return 0, fmt.Errorf("gl: not a gl texture")
	}
	return t.id, nil
}
