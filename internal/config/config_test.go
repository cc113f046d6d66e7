package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.Error(t, err, "explicit missing file must fail")

	// No explicit path and no file at ./config.yaml: defaults apply.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "structured,html", cfg.Sources.Enabled)
	assert.Equal(t, "http://localhost:5000/api/v1/entries", cfg.Structured.BaseURL)
	assert.Equal(t, "Yiddish", cfg.Structured.Language)
	assert.Equal(t, []string{"derived terms", "alternative forms", "see also"}, cfg.Structured.RelationList())
	assert.Equal(t, 10*time.Second, cfg.Structured.Timeout)
	assert.Equal(t, "https://www.cs.uky.edu/~raphael/yiddish/dictionary.cgi", cfg.Kentucky.URL)
	assert.True(t, cfg.Kentucky.Headless)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
sources:
  enabled: html
structured:
  base_url: http://dict.example/api
  timeout: 3s
kentucky:
  headless: false
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "html", cfg.Sources.Enabled)
	assert.Equal(t, "http://dict.example/api", cfg.Structured.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Structured.Timeout)
	assert.False(t, cfg.Kentucky.Headless)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("structured:\n  language: German\n"), 0644))

	t.Setenv("STRUCTURED_LANGUAGE", "Hebrew")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Hebrew", cfg.Structured.Language)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Sources:    SourcesConfig{Enabled: "structured"},
			Structured: StructuredConfig{BaseURL: "http://x", Relations: "see also", Timeout: time.Second},
			Kentucky:   KentuckyConfig{URL: "http://y", Timeout: time.Second},
		}
	}

	require.NoError(t, base().Validate())

	cfg := base()
	cfg.Sources.Enabled = "structured,telepathy"
	assert.ErrorContains(t, cfg.Validate(), "unknown source")

	cfg = base()
	cfg.Sources.Enabled = " , "
	assert.ErrorContains(t, cfg.Validate(), "no sources")

	cfg = base()
	cfg.Structured.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Structured.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Kentucky.Timeout = -time.Second
	assert.Error(t, cfg.Validate())
}
