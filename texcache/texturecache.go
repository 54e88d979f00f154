// Package texcache caches decoded host textures for (page, mode, palette)
// draw states, keyed first by where they live in VRAM and second by what
// they actually contain, so that redundant decodes of identical content are
// served from a single shared host texture.
package texcache

import (
	"sort"

	"github.com/arl/vramcache/device"
	"github.com/arl/vramcache/emu/log"
	"github.com/arl/vramcache/vram"
)

// TextureCache is the top-level collaborator: it borrows a vram.Reader and a
// device.Device and owns every Source and hashCacheEntry it hands out. Not
// safe for concurrent use: callers drive lookups, invalidations and aging
// from a single draw-call thread.
type TextureCache struct {
	device device.Device
	vram   vram.Reader

	pageSources [vram.NumPages]pageList
	hashCache   map[HashCacheKey]*hashCacheEntry

	drawnRect Rect

	maxHashCacheAge  int
	maxHashCacheSize int

	purgeList []purgeCandidate
}

type purgeCandidate struct {
	key   HashCacheKey
	entry *hashCacheEntry
}

// Default hash-cache aging parameters, overridable via SetHashCacheLimits
// (directly, or through tcconfig.Config.ApplyTo).
const (
	DefaultMaxHashCacheAge  = 600
	DefaultMaxHashCacheSize = 200
)

func New(dev device.Device, r vram.Reader) *TextureCache {
	return &TextureCache{
		device:           dev,
		vram:             r,
		hashCache:        make(map[HashCacheKey]*hashCacheEntry),
		maxHashCacheAge:  DefaultMaxHashCacheAge,
		maxHashCacheSize: DefaultMaxHashCacheSize,
	}
}

// SetHashCacheLimits overrides the aging thresholds AgeHashCache enforces.
func (c *TextureCache) SetHashCacheLimits(maxAge, maxSize int) {
	c.maxHashCacheAge = maxAge
	c.maxHashCacheSize = maxSize
}

// LookupSource returns the Source for (page, mode, palette), reusing one
// already resident on page if its key matches, creating one otherwise.
// Returns nil only if the device refuses to allocate a texture.
func (c *TextureCache) LookupSource(page uint8, mode Mode, palette PaletteReg) *Source {
	key := NewSourceKey(page, mode, palette)
	list := &c.pageSources[key.Page]
	for n := list.head; n != nil; n = n.next {
		if n.source.Key == key {
			if n != list.head {
				listMoveToFront(list, n)
			}
			return n.source
		}
	}
	return c.CreateSource(key)
}

// CreateSource decodes key's content fresh, or reuses a hash-cache entry
// whose content happens to already match, and registers the resulting
// Source on every VRAM page its texture footprint and (if paletted) its
// CLUT footprint touch. Returns nil if the device is out of textures.
func (c *TextureCache) CreateSource(key SourceKey) *Source {
	textureHash := HashPage(c.vram, key.Page, key.Mode)
	paletteHash := HashPalette(c.vram, key.Palette, key.Mode)
	hashKey := HashCacheKey{TextureHash: textureHash, PaletteHash: paletteHash, Mode: hashType(key.Mode)}

	entry, found := c.LookupHashCache(hashKey)
	if !found {
		tex := c.device.FetchTexture(vram.TexturePageWidth, vram.TexturePageHeight, 1, 1, 1)
		if tex == nil {
			log.ModTexCache.Warnf("device refused to allocate a texture for %s", key)
			return nil
		}
		decodeIntoTexture(c.vram, key.Page, key.Palette, key.Mode, tex)

		entry = &hashCacheEntry{texture: tex}
		c.hashCache[hashKey] = entry
	}
	entry.refCount++
	entry.age = 0

	src := &Source{Key: key, Texture: entry.texture, fromHashCache: entry}

	dedup := make(map[uint8]bool, MaxPageRefsPerSource)
	refIdx := 0
	for _, pn := range footprintPages(key) {
		if dedup[pn] {
			continue
		}
		dedup[pn] = true
		assertf(refIdx < MaxPageRefsPerSource, "footprint page ref overflow for key %+v", key)
		listPrepend(&c.pageSources[pn], src, &src.pageRefs[refIdx])
		refIdx++
	}
	for _, pn := range palettePages(key) {
		if dedup[pn] {
			continue
		}
		dedup[pn] = true
		assertf(refIdx < MaxPageRefsPerSource, "palette page ref overflow for key %+v", key)
		listAppend(&c.pageSources[pn], src, &src.pageRefs[refIdx])
		refIdx++
	}
	src.numPageRefs = refIdx
	return src
}

// LookupHashCache returns the entry content-addressed by key, if any.
func (c *TextureCache) LookupHashCache(key HashCacheKey) (*hashCacheEntry, bool) {
	entry, ok := c.hashCache[key]
	return entry, ok
}

// footprintPages lists the VRAM pages key's decoded texture spans: one page
// for 4-bit, two for 8-bit, four for 16-bit, all in key.Page's row.
func footprintPages(key SourceKey) []uint8 {
	px := int(key.Page) % vram.PagesWide
	py := int(key.Page) / vram.PagesWide
	n := WidthForMode(key.Mode) / vram.PageWidth

	pages := make([]uint8, n)
	for i := 0; i < n; i++ {
		pages[i] = uint8(py*vram.PagesWide + (px+i)%vram.PagesWide)
	}
	return pages
}

// palettePages lists the VRAM pages key's CLUT row spans. Empty for direct
// modes, which have no CLUT.
func palettePages(key SourceKey) []uint8 {
	if !key.Mode.Paletted() {
		return nil
	}

	width := key.Palette.GetWidth(key.Mode)
	startPage := vram.PageOfCoordinate(key.Palette.GetXBase(), key.Palette.GetYBase())
	px := startPage % vram.PagesWide
	py := startPage / vram.PagesWide
	n := (width + vram.PageWidth - 1) / vram.PageWidth

	pages := make([]uint8, n)
	for i := 0; i < n; i++ {
		pages[i] = uint8(py*vram.PagesWide + (px+i)%vram.PagesWide)
	}
	return pages
}

// destroySource unlinks every page reference src holds and releases its
// claim on the shared hash-cache entry. The entry itself survives: a
// refCount of zero just makes it eligible for AgeHashCache to reclaim.
func (c *TextureCache) destroySource(src *Source) {
	for i := 0; i < src.numPageRefs; i++ {
		listUnlink(&src.pageRefs[i])
	}
	if src.fromHashCache != nil {
		assertf(src.fromHashCache.refCount > 0, "refCount underflow destroying source for key %+v", src.Key)
		src.fromHashCache.refCount--
	}
}

// InvalidatePage destroys every Source registered on page, whether through
// its texture footprint or its CLUT footprint.
func (c *TextureCache) InvalidatePage(page uint8) {
	list := &c.pageSources[page]
	for list.head != nil {
		c.destroySource(list.head.source)
	}
}

// InvalidatePages destroys every Source touching any VRAM page overlapping
// rect.
func (c *TextureCache) InvalidatePages(rect Rect) {
	if rect.Empty() {
		return
	}

	startPX := int(rect.Left) / vram.PageWidth
	endPX := int(rect.Right-1) / vram.PageWidth
	startPY := int(rect.Top) / vram.PageHeight
	endPY := int(rect.Bottom-1) / vram.PageHeight

	for py := startPY; py <= endPY; py++ {
		for px := startPX; px <= endPX; px++ {
			c.InvalidatePage(uint8(py*vram.PagesWide + px))
		}
	}
}

// InvalidatePagesXYWH is InvalidatePages for callers that carry a VRAM
// write region as (x, y, w, h) rather than a Rect.
func (c *TextureCache) InvalidatePagesXYWH(x, y, w, h uint32) {
	c.InvalidatePages(NewRect(x, y, w, h))
}

// UpdateDrawnRect records rect as having just been rendered to, so a
// subsequent overlapping VRAM write is recognized as self-modifying-texture
// behavior by InvalidateFromWrite.
func (c *TextureCache) UpdateDrawnRect(rect Rect) {
	c.drawnRect = c.drawnRect.Include(rect)
}

// InvalidateFromWrite invalidates the pages a VRAM write region touches.
// If the write overlaps the most recently drawn-to region, the game is
// assumed to be reading back and altering its own rendered output, so the
// drawn rect is widened to cover the write and every page the widened rect
// touches is invalidated, not just the write itself. An ordinary write that
// doesn't overlap the drawn region still invalidates the pages it touches.
func (c *TextureCache) InvalidateFromWrite(rect Rect) {
	if c.drawnRect.Intersects(rect) {
		c.drawnRect = c.drawnRect.Include(rect)
		c.InvalidatePages(c.drawnRect)
		return
	}
	c.InvalidatePages(rect)
}

// AgeHashCache ages every unreferenced hash-cache entry by one generation
// (entries still referenced by a Source are skipped and keep their age), immediately
// reclaiming unreferenced entries past maxHashCacheAge, then — only if the
// cache is still over maxHashCacheSize — reclaims the oldest unreferenced
// survivors until it isn't.
func (c *TextureCache) AgeHashCache() {
	c.purgeList = c.purgeList[:0]

	for key, entry := range c.hashCache {
		if entry.refCount > 0 {
			continue
		}
		entry.age++
		if entry.age > c.maxHashCacheAge {
			c.device.RecycleTexture(entry.texture)
			delete(c.hashCache, key)
			continue
		}
		c.purgeList = append(c.purgeList, purgeCandidate{key: key, entry: entry})
	}

	if len(c.hashCache) <= c.maxHashCacheSize {
		return
	}

	sort.Slice(c.purgeList, func(i, j int) bool {
		return c.purgeList[i].entry.age > c.purgeList[j].entry.age
	})

	for _, cand := range c.purgeList {
		if len(c.hashCache) <= c.maxHashCacheSize {
			break
		}
		c.device.RecycleTexture(cand.entry.texture)
		delete(c.hashCache, cand.key)
	}
}

// Clear drops every Source and hash-cache entry, recycling their textures
// back to the device. Used on mode changes that invalidate the entire VRAM
// contents' meaning (e.g. a display-format switch).
func (c *TextureCache) Clear() {
	for i := range c.pageSources {
		c.pageSources[i] = pageList{}
	}
	for _, entry := range c.hashCache {
		c.device.RecycleTexture(entry.texture)
	}
	c.hashCache = make(map[HashCacheKey]*hashCacheEntry)
	c.drawnRect = Rect{}
}

// HashCacheSize reports the number of distinct decoded textures currently
// resident, for stats reporting.
func (c *TextureCache) HashCacheSize() int {
	return len(c.hashCache)
}
