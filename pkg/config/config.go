// Package config loads trailblazer settings from TOML or YAML files.
//
// Files are merged onto [Default], so a file only needs the keys it
// changes:
//
//	[view]
//	width = 1920
//	height = 1080
//
//	[tiles]
//	provider = "openstreetmap"
//	ttl = "72h"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
// The format is chosen by extension: ".yaml" and ".yml" are YAML, anything
// else is TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/trailblazer/pkg/cache"
	errs "github.com/matzehuels/trailblazer/pkg/errors"
	"github.com/matzehuels/trailblazer/pkg/mapview"
	"github.com/matzehuels/trailblazer/pkg/tiles"
)

const appName = "trailblazer"

// Config is the full configuration.
type Config struct {
	View   View   `toml:"view" yaml:"view"`
	Tiles  Tiles  `toml:"tiles" yaml:"tiles"`
	Cache  Cache  `toml:"cache" yaml:"cache"`
	Store  Store  `toml:"store" yaml:"store"`
	Server Server `toml:"server" yaml:"server"`
}

// View sets the rendering panel.
type View struct {
	Width         int     `toml:"width" yaml:"width"`
	Height        int     `toml:"height" yaml:"height"`
	MinPixelWidth float64 `toml:"min_pixel_width" yaml:"min_pixel_width"`
	Zoom          float64 `toml:"zoom" yaml:"zoom"`
}

// Tiles selects the background tile source. URL overrides Provider.
type Tiles struct {
	Provider  string `toml:"provider" yaml:"provider"`
	URL       string `toml:"url" yaml:"url"`
	Subdomain string `toml:"subdomain" yaml:"subdomain"`
	APIKey    string `toml:"api_key" yaml:"api_key"`
	TTL       string `toml:"ttl" yaml:"ttl"`
}

// Cache selects the tile cache backend.
type Cache struct {
	Backend   string `toml:"backend" yaml:"backend"`
	Dir       string `toml:"dir" yaml:"dir"`
	RedisAddr string `toml:"redis_addr" yaml:"redis_addr"`
	RedisDB   int    `toml:"redis_db" yaml:"redis_db"`
	Prefix    string `toml:"prefix" yaml:"prefix"`
}

// Store locates the network document store.
type Store struct {
	URI      string `toml:"uri" yaml:"uri"`
	Database string `toml:"database" yaml:"database"`
}

// Server configures the HTTP API.
type Server struct {
	Addr    string `toml:"addr" yaml:"addr"`
	Network string `toml:"network" yaml:"network"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		View: View{
			Width:         mapview.DefaultPanelWidth,
			Height:        mapview.DefaultPanelHeight,
			MinPixelWidth: mapview.DefaultMinPixelWidth,
		},
		Tiles: Tiles{
			Provider: "openstreetmap",
			TTL:      tiles.DefaultTTL.String(),
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			Prefix:  appName + ":",
		},
		Store: Store{
			Database: appName,
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Load reads the file at path onto [Default] and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Decode(data, isYAML(path))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is like [Load] but returns [Default] when path is empty or
// the file does not exist.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errs.Is(err, errs.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Decode parses TOML, or YAML when yamlFormat is set, onto [Default].
func Decode(data []byte, yamlFormat bool) (Config, error) {
	cfg := Default()
	var err error
	if yamlFormat {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate checks value ranges and cross-field requirements.
func (c Config) Validate() error {
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "view size must be positive, got %dx%d", c.View.Width, c.View.Height)
	}
	if c.View.MinPixelWidth < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "view.min_pixel_width must not be negative")
	}
	if _, err := c.Tiles.TTLDuration(); err != nil {
		return err
	}
	if c.Tiles.URL == "" {
		if _, ok := tiles.Providers[c.Tiles.Provider]; !ok {
			return errs.New(errs.ErrCodeInvalidConfig, "unknown tile provider %q", c.Tiles.Provider)
		}
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	return nil
}

// TTLDuration parses the tile TTL. An empty TTL means [tiles.DefaultTTL].
func (t Tiles) TTLDuration() (time.Duration, error) {
	if t.TTL == "" {
		return tiles.DefaultTTL, nil
	}
	d, err := time.ParseDuration(t.TTL)
	if err != nil || d < 0 {
		return 0, errs.New(errs.ErrCodeInvalidConfig, "tiles.ttl %q is not a non-negative duration", t.TTL)
	}
	return d, nil
}

// Template builds the configured tile URL template.
func (t Tiles) Template() (tiles.Template, error) {
	if t.URL != "" {
		return tiles.NewTemplate(tiles.TemplateConfig{URL: t.URL, Subdomain: t.Subdomain, APIKey: t.APIKey})
	}
	return tiles.Provider(t.Provider, t.Subdomain, t.APIKey)
}

// ProviderName names the tile source for cache keys.
func (t Tiles) ProviderName() string {
	if t.URL != "" {
		return cache.Hash([]byte(t.URL))[:12]
	}
	return t.Provider
}

// Options converts the cache section, filling the directory from
// [CacheDir] when unset.
func (c Cache) Options() cache.Options {
	dir := c.Dir
	if dir == "" && c.Backend != cache.BackendRedis {
		dir = CacheDir()
	}
	return cache.Options{Backend: c.Backend, Dir: dir, RedisAddr: c.RedisAddr, RedisDB: c.RedisDB}
}

// DefaultPath is the user's config file, $XDG_CONFIG_HOME/trailblazer/config.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName, "config.toml")
	}
	return filepath.Join(".", "."+appName+".toml")
}

// CacheDir is the default file cache location, $XDG_CACHE_HOME/trailblazer.
func CacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", appName)
	}
	return filepath.Join(os.TempDir(), appName)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
