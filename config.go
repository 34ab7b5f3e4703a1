package webindex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default pipeline constants. These match the sealed on-disk format the
// query side expects; changing them invalidates existing artifacts.
const (
	// DefaultPartialThreshold is the number of distinct tokens an in-memory
	// partial index may hold before it is spilled to disk.
	DefaultPartialThreshold = 90000

	// DefaultMinFileSize is the undersized cutoff (in bytes): files of this
	// size or smaller are diverted to the undersized list.
	DefaultMinFileSize = 1000

	// DefaultMaxFileSize is the largest corpus file (in bytes) that is
	// indexed. Larger files are diverted to the oversized list.
	DefaultMaxFileSize = 20 << 20

	// DefaultMinDocTokens is the minimum token count for a document to be
	// indexed. Shorter documents are dropped.
	DefaultMinDocTokens = 100

	// DefaultResultLimit is the maximum number of URLs a search returns.
	DefaultResultLimit = 5
)

// Sealed artifact filenames, relative to Config.OutputDir.
const (
	FinalIndexFile   = "final_index"
	OffsetMapFile    = "combined_token_locations.json"
	URLMapFile       = "url_dict.json"
	ResultsFile      = "results.txt"
	SpillOffsetsFile = "token_locations.json"
)

// Config holds all configuration for building and querying an index.
type Config struct {
	// CorpusDir is the root of the crawled corpus tree. Each leaf file is
	// a JSON object with "url" and "content" fields.
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`

	// OutputDir is where sealed artifacts and spill files are written.
	// Defaults to the process working directory.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// CatalogPath is an optional SQLite database recording per-document
	// build outcomes for later inspection. Empty disables the catalog.
	CatalogPath string `json:"catalog_path" yaml:"catalog_path"`

	// PartialThreshold overrides DefaultPartialThreshold when > 0.
	PartialThreshold int `json:"partial_threshold" yaml:"partial_threshold"`

	// MinFileSize / MaxFileSize override the size gate when > 0.
	MinFileSize int64 `json:"min_file_size" yaml:"min_file_size"`
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// MinDocTokens overrides DefaultMinDocTokens when > 0.
	MinDocTokens int `json:"min_doc_tokens" yaml:"min_doc_tokens"`

	// ResultLimit overrides DefaultResultLimit when > 0.
	ResultLimit int `json:"result_limit" yaml:"result_limit"`

	// KeepSpills leaves the transient N.json spill files (and their offset
	// sidecar) on disk after a successful merge instead of deleting them.
	KeepSpills bool `json:"keep_spills" yaml:"keep_spills"`
}

// DefaultConfig returns a Config matching the reference pipeline: corpus
// under DEV/, artifacts in the working directory, catalog disabled.
func DefaultConfig() Config {
	return Config{
		CorpusDir:        "DEV",
		OutputDir:        ".",
		PartialThreshold: DefaultPartialThreshold,
		MinFileSize:      DefaultMinFileSize,
		MaxFileSize:      DefaultMaxFileSize,
		MinDocTokens:     DefaultMinDocTokens,
		ResultLimit:      DefaultResultLimit,
	}
}

// withDefaults fills zero values so a partially-populated Config behaves
// like DefaultConfig for the fields the caller left unset.
func (c Config) withDefaults() Config {
	if c.CorpusDir == "" {
		c.CorpusDir = "DEV"
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.PartialThreshold <= 0 {
		c.PartialThreshold = DefaultPartialThreshold
	}
	if c.MinFileSize <= 0 {
		c.MinFileSize = DefaultMinFileSize
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.MinDocTokens <= 0 {
		c.MinDocTokens = DefaultMinDocTokens
	}
	if c.ResultLimit <= 0 {
		c.ResultLimit = DefaultResultLimit
	}
	return c
}

// artifactPath resolves a sealed artifact filename against OutputDir.
func (c Config) artifactPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}

// LoadConfig reads a config file into DefaultConfig, choosing the decoder
// by extension (.yaml/.yml via YAML, anything else JSON), then applies
// WEBINDEX_* environment overrides. An empty path skips the file and
// applies overrides only.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("WEBINDEX_CORPUS_DIR"); v != "" {
		cfg.CorpusDir = v
	}
	if v := os.Getenv("WEBINDEX_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("WEBINDEX_CATALOG_PATH"); v != "" {
		cfg.CatalogPath = v
	}

	return cfg.withDefaults(), nil
}
