// Package tablecfg loads the build configuration for the cmd/tablewright
// CLI and server/httpdemo front ends: where the grammar definition lives,
// where to cache built tables, and optional signing key material for build
// artifacts. Grounded on the teacher's server.Config/Database flat-struct
// shape (server/config.go), trimmed to this module's own concerns and
// loaded from TOML instead of being assembled in code.
package tablecfg

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is a build configuration for a single grammar.
type Config struct {
	// GrammarFile names which of this module's demo grammars to build:
	// "arithmetic", "arithmetic-precedence", or "json".
	GrammarFile string `toml:"grammar_file"`

	// CacheDBPath is the path to the SQLite database tablestore uses to
	// cache built tables, keyed by grammar content hash.
	CacheDBPath string `toml:"cache_db_path"`

	// SigningKeyFile, if set, names a file containing the HMAC key used to
	// sign build artifacts (see internal/artifact). If unset, artifacts are
	// built with a default development key.
	SigningKeyFile string `toml:"signing_key_file"`

	// HTTPAddr is the listen address for server/httpdemo.
	HTTPAddr string `toml:"http_addr"`
}

// defaultHTTPAddr is used when Config.HTTPAddr is unset.
const defaultHTTPAddr = ":8080"

// Load reads and parses a Config from the TOML file at path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	filled := cfg.FillDefaults()
	return filled, filled.Validate()
}

// FillDefaults returns a copy of cfg with unset fields given their
// defaults.
func (cfg Config) FillDefaults() Config {
	filled := cfg
	if filled.GrammarFile == "" {
		filled.GrammarFile = "arithmetic"
	}
	if filled.CacheDBPath == "" {
		filled.CacheDBPath = "tablewright-cache.db"
	}
	if filled.HTTPAddr == "" {
		filled.HTTPAddr = defaultHTTPAddr
	}
	return filled
}

// Validate returns an error if cfg names a grammar this module does not
// know how to build.
func (cfg Config) Validate() error {
	switch cfg.GrammarFile {
	case "arithmetic", "arithmetic-precedence", "json":
		return nil
	default:
		return fmt.Errorf("unknown grammar_file %q: must be one of arithmetic, arithmetic-precedence, json", cfg.GrammarFile)
	}
}
