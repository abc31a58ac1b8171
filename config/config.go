package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the retrieval engine.
type Config struct {
	Corpus   CorpusConfig   `yaml:"corpus"`
	Index    IndexConfig    `yaml:"index"`
	Retrieve RetrieveConfig `yaml:"retrieve"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CorpusConfig locates the document corpus on disk.
type CorpusConfig struct {
	Root string `yaml:"root"`
}

// IndexConfig holds chunking and indexing configuration.
type IndexConfig struct {
	Includes     []string `yaml:"includes"`
	Excludes     []string `yaml:"excludes"`
	ChunkTokens  int      `yaml:"chunk_tokens"`
	ChunkOverlap int      `yaml:"chunk_overlap"`
	Stopwords    bool     `yaml:"stopwords"`
}

// RetrieveConfig holds ranking configuration.
type RetrieveConfig struct {
	TopK        int     `yaml:"top_k"`
	Scorer      string  `yaml:"scorer"`       // "distinct", "weighted", "idf"
	PhraseBonus float64 `yaml:"phrase_bonus"` // added when the whole query phrase occurs in a chunk (0 = disabled)
}

// CacheConfig bounds the response cache.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Root: "data",
		},
		Index: IndexConfig{
			Includes:     []string{"**/*.txt", "**/*.md"},
			Excludes:     []string{},
			ChunkTokens:  500,
			ChunkOverlap: 50,
			Stopwords:    true,
		},
		Retrieve: RetrieveConfig{
			TopK:        5,
			Scorer:      "distinct",
			PhraseBonus: 0,
		},
		Cache: CacheConfig{
			MaxEntries: 256,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports configuration values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Index.ChunkTokens <= 0 {
		return fmt.Errorf("index.chunk_tokens must be positive, got %d", c.Index.ChunkTokens)
	}
	if c.Index.ChunkOverlap < 0 || c.Index.ChunkOverlap >= c.Index.ChunkTokens {
		return fmt.Errorf("index.chunk_overlap must be in [0, chunk_tokens), got %d", c.Index.ChunkOverlap)
	}
	if c.Retrieve.TopK < 0 {
		return fmt.Errorf("retrieve.top_k must not be negative, got %d", c.Retrieve.TopK)
	}
	switch c.Retrieve.Scorer {
	case "distinct", "weighted", "idf":
	default:
		return fmt.Errorf("retrieve.scorer must be one of distinct, weighted, idf; got %q", c.Retrieve.Scorer)
	}
	if c.Retrieve.PhraseBonus < 0 {
		return fmt.Errorf("retrieve.phrase_bonus must not be negative, got %f", c.Retrieve.PhraseBonus)
	}
	return nil
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docsearch.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "docsearch.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".docsearch", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
