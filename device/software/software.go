// Package software is a pure-Go reference implementation of device.Device,
// backed by image.RGBA. It fails to allocate only when Device.FailNext asks
// it to, and never maps a texture directly, so it exercises the
// cache's Update-based decode path on every test run.
package software

import (
	"image"

	"github.com/arl/vramcache/device"
)

// Device is a device.Device that hands out image.RGBA-backed textures.
// It tracks every texture it has fetched, purely so tests can assert on
// fetch/recycle counts without the cache exposing that bookkeeping itself.
type Device struct {
	Fetched  int
	Recycled int
	// FailNext, if > 0, makes the next N FetchTexture calls return nil,
	// simulating host resource exhaustion.
	FailNext int
}

func New() *Device {
	return &Device{}
}

func (d *Device) FetchTexture(width, height, layers, levels, samples int) device.Texture {
	if d.FailNext > 0 {
		d.FailNext--
		return nil
	}
	d.Fetched++
	return &texture{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (d *Device) RecycleTexture(tex device.Texture) {
	d.Recycled++
}

// texture never maps: Map always reports !ok, forcing callers through
// Update, matching the decoder's fallback-to-staging-buffer path.
type texture struct {
	img *image.RGBA
}

func (t *texture) Width() int  { return t.img.Rect.Dx() }
func (t *texture) Height() int { return t.img.Rect.Dy() }

func (t *texture) Map(x, y, w, h int) ([]byte, int, bool) {
	return nil, 0, false
}

func (t *texture) Unmap() {}

func (t *texture) Update(x, y, w, h int, src []byte, stride int) {
	for row := 0; row < h; row++ {
		srcRow := src[row*stride : row*stride+w*4]
		dstOff := t.img.PixOffset(x, y+row)
		copy(t.img.Pix[dstOff:dstOff+w*4], srcRow)
	}
}

// Image exposes the decoded contents for inspection (CLI PNG dump, tests).
func (t *texture) Image() *image.RGBA { return t.img }

// Image is a convenience for callers (tests, the CLI) that hold a
// device.Texture known to have come from this package and want to inspect
// its pixels without a type assertion on the unexported type.
func Image(tex device.Texture) (*image.RGBA, bool) {
	t, ok := tex.(*texture)
	if !ok {
		return nil, false
	}
	return t.img, true
}
