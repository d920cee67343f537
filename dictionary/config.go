package dictionary

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/forestrie/go-wordtrie/bloom"
)

// DefaultCacheMaxWords bounds the lookup cache when the config is silent.
const DefaultCacheMaxWords = 10_000

// Config locates a dictionary's files and sizes its runtime structures.
type Config struct {
	// Trie is the path of the header prefixed trie file.
	Trie string `toml:"trie"`
	// Probabilities is the path of the probability table. It is created by
	// the first Flush if it does not exist.
	Probabilities string `toml:"probabilities"`

	Table  TableConfig  `toml:"table"`
	Cache  CacheConfig  `toml:"cache"`
	Filter FilterConfig `toml:"filter"`

	// Dir is the directory containing the config file (set at load time).
	Dir string `toml:"-"`
}

type TableConfig struct {
	// MaxGrowth bounds how many bytes the probability table may grow by
	// between loads. Zero selects the buffer default.
	MaxGrowth int `toml:"max_growth"`
}

type CacheConfig struct {
	// MaxWords is the number of word lookups remembered. Zero disables the
	// cache.
	MaxWords int64 `toml:"max_words"`
}

type FilterConfig struct {
	// BitsPerWord sizes the bloom prefilter consulted before a trie
	// descent. Zero disables the filter.
	BitsPerWord uint64 `toml:"bits_per_word"`
	// Hashes is the number of filter bits set per word.
	Hashes uint8 `toml:"hashes"`
}

func defaultFilterConfig() FilterConfig {
	return FilterConfig{BitsPerWord: bloom.DefaultBitsPerElement, Hashes: bloom.DefaultK}
}

// DefaultConfig returns a config for the given files with default sizing.
func DefaultConfig(triePath, probabilitiesPath string) Config {
	return Config{
		Trie:          triePath,
		Probabilities: probabilitiesPath,
		Cache:         CacheConfig{MaxWords: DefaultCacheMaxWords},
		Filter:        defaultFilterConfig(),
	}
}

// LoadConfig parses a TOML config file. Relative file paths are resolved
// against the directory holding the config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := Config{
		Cache:  CacheConfig{MaxWords: DefaultCacheMaxWords},
		Filter: defaultFilterConfig(),
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse error in %s: %w", path, err)
	}

	cfg.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return Config{}, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	cfg.Trie = cfg.resolve(cfg.Trie)
	cfg.Probabilities = cfg.resolve(cfg.Probabilities)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Validate reports the first problem with the config.
func (c Config) Validate() error {
	switch {
	case c.Trie == "":
		return fmt.Errorf("%w: trie path is required", ErrConfig)
	case c.Probabilities == "":
		return fmt.Errorf("%w: probabilities path is required", ErrConfig)
	case c.Table.MaxGrowth < 0:
		return fmt.Errorf("%w: table.max_growth %d", ErrConfig, c.Table.MaxGrowth)
	case c.Cache.MaxWords < 0:
		return fmt.Errorf("%w: cache.max_words %d", ErrConfig, c.Cache.MaxWords)
	case c.Filter.BitsPerWord > 0 && c.Filter.Hashes == 0:
		return fmt.Errorf("%w: filter.hashes must be set with filter.bits_per_word", ErrConfig)
	case c.Filter.Hashes > bloom.MaxK:
		return fmt.Errorf("%w: filter.hashes %d above %d", ErrConfig, c.Filter.Hashes, bloom.MaxK)
	}
	return nil
}
