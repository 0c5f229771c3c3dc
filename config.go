package gazetteer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// RunConfig describes a full gazetteer setup in a TOML file: which
// category source files to load plus construction options. Example:
//
//	cache_size = 100000
//	fold_diacritics = false
//
//	[sources]
//	characters = "data/characters.txt"
//	parks = "data/parks.txt"
type RunConfig struct {
	Sources        map[string]string `toml:"sources"`
	CacheSize      int               `toml:"cache_size"`
	FoldDiacritics bool              `toml:"fold_diacritics"`
}

// LoadRunConfig reads and decodes a TOML run config. Relative source
// paths are resolved against the config file's directory.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg RunConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("config %s declares no sources", path)
	}

	base := filepath.Dir(path)
	for category, src := range cfg.Sources {
		if !filepath.IsAbs(src) {
			cfg.Sources[category] = filepath.Join(base, src)
		}
	}
	return &cfg, nil
}

// Options renders the config as constructor options.
func (c *RunConfig) Options() []Option {
	var opts []Option
	if c.FoldDiacritics {
		opts = append(opts, WithDiacriticFolding())
	}
	if c.CacheSize > 0 {
		opts = append(opts, WithCacheSize(c.CacheSize))
	}
	return opts
}

// Build constructs the aggregate view and every per-category gazetteer
// the config names. Categories load in sorted order; any failure aborts.
func (c *RunConfig) Build() (*AggregateGazetteer, []*Gazetteer, error) {
	opts := c.Options()

	ag, err := NewAggregateGazetteer(c.Sources, opts...)
	if err != nil {
		return nil, nil, err
	}

	gazetteers := make([]*Gazetteer, 0, len(c.Sources))
	for _, category := range sortedKeys(c.Sources) {
		g, err := NewGazetteer(category, c.Sources[category], opts...)
		if err != nil {
			return nil, nil, err
		}
		gazetteers = append(gazetteers, g)
	}
	return ag, gazetteers, nil
}
