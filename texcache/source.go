package texcache

import "github.com/arl/vramcache/device"

// MaxPageRefsPerSource bounds how many page lists one Source can
// participate in: up to 4 pages for a 16-bit footprint, or up to 2 texture
// pages + up to 4 CLUT-row pages for 8-bit, or up to 1 + 1 for 4-bit.
const MaxPageRefsPerSource = 6

// Source is one live cache entry for a (page, mode, palette) draw state. It
// borrows its texture from a HashCacheEntry; it never owns one directly in
// this implementation (a replacement-texture-pack variant that owns its
// texture outright is out of scope).
type Source struct {
	Key     SourceKey
	Texture device.Texture

	fromHashCache *hashCacheEntry
	numPageRefs   int
	pageRefs      [MaxPageRefsPerSource]listNode
}
