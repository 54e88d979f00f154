package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/arl/vramcache/device/software"
	"github.com/arl/vramcache/emu/log"
	"github.com/arl/vramcache/texcache"
)

type LookupCmd struct {
	VramPath string `arg:"" name:"vram-dump" help:"Raw little-endian 16-bit VRAM dump." type:"existingfile"`

	Page   uint8  `name:"page" required:"" help:"VRAM page number."`
	Mode   string `name:"mode" enum:"4bit,8bit,16bit" default:"16bit" help:"Texture color mode."`
	ClutX  int    `name:"clut-x" help:"CLUT row x coordinate, in VRAM cells."`
	ClutY  int    `name:"clut-y" help:"CLUT row y coordinate, in VRAM cells."`
	DumpTo string `name:"dump-to" help:"Write the decoded page as a PNG to this path." type:"path"`
	Scale  int    `name:"scale" default:"1" help:"Integer upscale factor applied to --dump-to output."`
}

func (c *LookupCmd) Run() error {
	buf, err := loadVRAM(c.VramPath)
	if err != nil {
		return err
	}

	mode, err := parseMode(c.Mode)
	if err != nil {
		return err
	}

	dev := software.New()
	cache := texcache.New(dev, buf)

	palette := texcache.NewPaletteReg(c.ClutX, c.ClutY)
	src := cache.LookupSource(c.Page, mode, palette)
	if src == nil {
		return fmt.Errorf("device refused to allocate a texture")
	}

	log.ModCLI.Infof("decoded page %d mode=%s into a %dx%d texture",
		c.Page, mode, src.Texture.Width(), src.Texture.Height())
	fmt.Printf("source key: %s\n", src.Key)

	if c.DumpTo == "" {
		return nil
	}
	return dumpSourcePNG(src, c.Scale, c.DumpTo)
}

func parseMode(s string) (texcache.Mode, error) {
	switch s {
	case "4bit":
		return texcache.Palette4Bit, nil
	case "8bit":
		return texcache.Palette8Bit, nil
	case "16bit":
		return texcache.Direct16Bit, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// dumpSourcePNG writes src's decoded texture to path as a PNG, upscaled by
// scale using a Catmull-Rom resampler. scale <= 1 copies the pixels as-is.
func dumpSourcePNG(src *texcache.Source, scale int, path string) error {
	img, ok := software.Image(src.Texture)
	if !ok {
		return fmt.Errorf("--dump-to requires the software device backend")
	}

	out := image.Image(img)
	if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, img.Rect.Dx()*scale, img.Rect.Dy()*scale))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
		out = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, out)
}
