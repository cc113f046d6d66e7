package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := validateSources(c.Sources.Enabled); err != nil {
		return fmt.Errorf("sources: %w", err)
	}

	if c.Structured.BaseURL == "" {
		return fmt.Errorf("structured.base_url must not be empty")
	}
	if c.Structured.Timeout <= 0 {
		return fmt.Errorf("structured.timeout must be > 0 (got %v)", c.Structured.Timeout)
	}
	if len(c.Structured.RelationList()) == 0 {
		return fmt.Errorf("structured.relations must not be empty")
	}

	if c.Kentucky.URL == "" {
		return fmt.Errorf("kentucky.url must not be empty")
	}
	if c.Kentucky.Timeout <= 0 {
		return fmt.Errorf("kentucky.timeout must be > 0 (got %v)", c.Kentucky.Timeout)
	}

	return nil
}

func validateSources(enabled string) error {
	any := false
	for _, s := range strings.Split(enabled, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if s != "structured" && s != "html" {
			return fmt.Errorf("unknown source %q", s)
		}
		any = true
	}
	if !any {
		return fmt.Errorf("no sources enabled")
	}
	return nil
}
