package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Sources    SourcesConfig    `yaml:"sources"`
	Structured StructuredConfig `yaml:"structured"`
	Kentucky   KentuckyConfig   `yaml:"kentucky"`
	Log        LogConfig        `yaml:"log"`
}

// SourcesConfig selects which dictionary sources run by default. The CLI
// -sources flag overrides it per invocation.
type SourcesConfig struct {
	Enabled string `yaml:"enabled" env:"SOURCES_ENABLED" env-default:"structured,html"`
}

// StructuredConfig holds settings for the structured dictionary service.
type StructuredConfig struct {
	BaseURL   string        `yaml:"base_url"  env:"STRUCTURED_BASE_URL"  env-default:"http://localhost:5000/api/v1/entries"`
	Language  string        `yaml:"language"  env:"STRUCTURED_LANGUAGE"  env-default:"Yiddish"`
	Relations string        `yaml:"relations" env:"STRUCTURED_RELATIONS" env-default:"derived terms,alternative forms,see also"`
	Timeout   time.Duration `yaml:"timeout"   env:"STRUCTURED_TIMEOUT"   env-default:"10s"`
}

// KentuckyConfig holds settings for the browser-driven HTML dictionary.
type KentuckyConfig struct {
	URL      string        `yaml:"url"      env:"KENTUCKY_URL"      env-default:"https://www.cs.uky.edu/~raphael/yiddish/dictionary.cgi"`
	Timeout  time.Duration `yaml:"timeout"  env:"KENTUCKY_TIMEOUT"  env-default:"30s"`
	Headless bool          `yaml:"headless" env:"KENTUCKY_HEADLESS" env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// RelationList returns the configured relations as a slice.
func (c StructuredConfig) RelationList() []string {
	var out []string
	for _, r := range strings.Split(c.Relations, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
