package main

import (
	"fmt"
	"os"

	"github.com/go-faster/jx"

	"github.com/arl/vramcache/emu/log"
	"github.com/arl/vramcache/texcache"
	"github.com/arl/vramcache/vram"
)

type LoadCmd struct {
	VramPath  string `arg:"" name:"vram-dump" help:"Raw little-endian 16-bit VRAM dump, ${vram_size} bytes." type:"existingfile"`
	StatsJSON bool   `name:"stats-json" help:"Print per-page content hashes as JSON instead of text."`
}

func (c *LoadCmd) Run() error {
	buf, err := loadVRAM(c.VramPath)
	if err != nil {
		return err
	}

	type pageStat struct {
		page uint8
		hash uint64
	}
	stats := make([]pageStat, vram.NumPages)
	for pn := 0; pn < vram.NumPages; pn++ {
		stats[pn] = pageStat{
			page: uint8(pn),
			hash: texcache.HashPage(buf, uint8(pn), texcache.Direct16Bit),
		}
	}

	if !c.StatsJSON {
		for _, s := range stats {
			fmt.Printf("page %3d: hash=%016x\n", s.page, s.hash)
		}
		log.ModCLI.Infof("loaded %d pages from %s", len(stats), c.VramPath)
		return nil
	}

	var w jx.Writer
	w.ObjStart()
	w.FieldStart("pages")
	w.ArrStart()
	for _, s := range stats {
		w.ObjStart()
		w.FieldStart("page")
		w.UInt8(s.page)
		w.FieldStart("hash")
		w.UInt64(s.hash)
		w.ObjEnd()
	}
	w.ArrEnd()
	w.ObjEnd()

	_, err = os.Stdout.Write(w.Buf)
	return err
}
