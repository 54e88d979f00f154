// Package tcconfig persists the texture cache's tunable parameters to a
// TOML file in the user's config directory, the way an emulator front
// end's settings file persists its own tunables.
package tcconfig

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/arl/vramcache/emu/log"
	"github.com/arl/vramcache/texcache"
)

// Config holds the hash-cache aging parameters and log verbosity. ApplyTo
// pushes the aging parameters into a TextureCache; nothing in this package
// applies LogModules.
type Config struct {
	MaxHashCacheAge  int      `toml:"max_hash_cache_age"`
	MaxHashCacheSize int      `toml:"max_hash_cache_size"`
	LogModules       []string `toml:"log_modules"`
}

// Default returns the configuration LoadOrDefault falls back to when no
// config file exists yet.
func Default() Config {
	return Config{
		MaxHashCacheAge:  texcache.DefaultMaxHashCacheAge,
		MaxHashCacheSize: texcache.DefaultMaxHashCacheSize,
	}
}

// ConfigDir is the directory config.toml lives in, resolved and created when
// the package is initialized.
// No library in the retrieved pack wraps os.UserConfigDir with directory
// creation (see DESIGN.md), so this stays on the standard library.
var ConfigDir string = sync.OnceValue(func() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "vramcache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.ModCLI.Fatalf("failed to create config directory %s: %v", dir, err)
	}
	return dir
})()

const filename = "config.toml"

// LoadOrDefault loads Config from ConfigDir, or returns Default() if no
// config file exists or it fails to parse.
func LoadOrDefault() Config {
	var cfg Config
	_, err := toml.DecodeFile(filepath.Join(ConfigDir, filename), &cfg)
	if err != nil {
		return Default()
	}
	return cfg
}

// Save writes cfg to ConfigDir, overwriting any existing config.toml.
func Save(cfg Config) error {
	f, err := os.Create(filepath.Join(ConfigDir, filename))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ApplyTo pushes cfg's aging parameters into cache.
func (cfg Config) ApplyTo(cache *texcache.TextureCache) {
	age, size := cfg.MaxHashCacheAge, cfg.MaxHashCacheSize
	if age <= 0 {
		age = texcache.DefaultMaxHashCacheAge
	}
	if size <= 0 {
		size = texcache.DefaultMaxHashCacheSize
	}
	cache.SetHashCacheLimits(age, size)
}
