package main

import (
	"fmt"
	"os"

	"github.com/arl/vramcache/vram"
)

func main() {
	parseArgs(os.Args[1:])
}

// loadVRAM reads a raw little-endian 16-bit cell dump from path into a fresh
// vram.Buffer.
func loadVRAM(path string) (*vram.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	buf := vram.NewBuffer()
	if err := buf.Load(data); err != nil {
		return nil, err
	}
	return buf, nil
}
