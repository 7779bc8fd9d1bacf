package tablecfg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewright/tablewright/internal/tablecfg"
)

func writeConfig(t *testing.T, body string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_FillsDefaults(t *testing.T) {
	path := writeConfig(t, `grammar_file = "json"`)
	cfg, err := tablecfg.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.GrammarFile)
	assert.Equal(t, "tablewright-cache.db", cfg.CacheDBPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoad_RejectsUnknownGrammar(t *testing.T) {
	path := writeConfig(t, `grammar_file = "cobol"`)
	_, err := tablecfg.Load(path)
	require.Error(t, err)
}

func TestLoad_HonorsExplicitValues(t *testing.T) {
	path := writeConfig(t, `
grammar_file = "arithmetic-precedence"
cache_db_path = "/tmp/custom.db"
http_addr = "127.0.0.1:9090"
`)
	cfg, err := tablecfg.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.CacheDBPath)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTPAddr)
}
