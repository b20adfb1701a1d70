package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treeize/pkg/layout"
)

// Config holds settings from the optional config file at
// ~/.config/treeize/config.toml. Flags override config values.
type Config struct {
	// StylePath is the default render style file.
	StylePath string `toml:"style"`

	// CacheDir overrides the XDG cache directory.
	CacheDir string `toml:"cache_dir"`

	// RedisAddr enables the Redis cache backend when set.
	RedisAddr string `toml:"redis_addr"`

	// CachePrefix namespaces cache keys, for shared backends.
	CachePrefix string `toml:"cache_prefix"`

	// MongoURI enables the MongoDB snapshot store when set.
	MongoURI string `toml:"mongo_uri"`

	// MongoDatabase is the database used with MongoURI.
	MongoDatabase string `toml:"mongo_database"`

	// Layout spacing defaults.
	HorizontalSpacing float64 `toml:"horizontal_spacing"`
	VerticalSpacing   float64 `toml:"vertical_spacing"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		MongoDatabase:     appName,
		HorizontalSpacing: layout.DefaultHorizontalSpacing,
		VerticalSpacing:   layout.DefaultVerticalSpacing,
	}
}

// LoadConfig reads the config file at path, or the default location
// when path is empty. A missing file is not an error and yields
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".config", appName, "config.toml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.HorizontalSpacing <= 0 {
		cfg.HorizontalSpacing = layout.DefaultHorizontalSpacing
	}
	if cfg.VerticalSpacing <= 0 {
		cfg.VerticalSpacing = layout.DefaultVerticalSpacing
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = appName
	}
	return cfg, nil
}
