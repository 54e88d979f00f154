package main

import (
	"fmt"
	"os"

	"github.com/go-faster/jx"

	"github.com/arl/vramcache/device/software"
	"github.com/arl/vramcache/emu/log"
	"github.com/arl/vramcache/texcache"
	"github.com/arl/vramcache/vram"
)

type BenchCmd struct {
	Pages      int  `name:"pages" default:"32" help:"Distinct VRAM pages to draw from."`
	Iterations int  `name:"iterations" default:"100000" help:"Number of LookupSource calls to perform."`
	AgeEvery   int  `name:"age-every" default:"1000" help:"Call AgeHashCache once every N iterations."`
	StatsJSON  bool `name:"stats-json" help:"Print the resulting counters as JSON instead of text."`
}

func (c *BenchCmd) Run() error {
	buf := vram.NewBuffer()
	for pn := 0; pn < c.Pages && pn < vram.NumPages; pn++ {
		x, y := vram.PageStartX(pn), vram.PageStartY(pn)
		buf.Fill(x, y, vram.PageWidth, vram.PageHeight, uint16(pn*7919))
	}

	dev := software.New()
	cache := texcache.New(dev, buf)

	for i := 0; i < c.Iterations; i++ {
		page := uint8(i % c.Pages)
		cache.LookupSource(page, texcache.Direct16Bit, 0)

		if c.AgeEvery > 0 && i%c.AgeEvery == 0 {
			cache.AgeHashCache()
		}
	}

	log.ModCLI.Infof("ran %d lookups over %d pages: fetched=%d recycled=%d hash_cache_size=%d",
		c.Iterations, c.Pages, dev.Fetched, dev.Recycled, cache.HashCacheSize())

	if !c.StatsJSON {
		fmt.Printf("iterations=%d pages=%d fetched=%d recycled=%d hash_cache_size=%d\n",
			c.Iterations, c.Pages, dev.Fetched, dev.Recycled, cache.HashCacheSize())
		return nil
	}

	var w jx.Writer
	w.ObjStart()
	w.FieldStart("iterations")
	w.Int(c.Iterations)
	w.FieldStart("pages")
	w.Int(c.Pages)
	w.FieldStart("fetched")
	w.Int(dev.Fetched)
	w.FieldStart("recycled")
	w.Int(dev.Recycled)
	w.FieldStart("hash_cache_size")
	w.Int(cache.HashCacheSize())
	w.ObjEnd()

	_, err := os.Stdout.Write(w.Buf)
	return err
}
