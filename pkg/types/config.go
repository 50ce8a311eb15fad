package types

import (
	"fmt"
	"time"
)

// DefaultNewTagTTL is how long an automatically tagged new row stays
// highlighted as new.
const DefaultNewTagTTL = 3 * time.Second

// Config holds the engine's initial presentation settings. It is the part of
// the CLI's config.yaml that the engine itself consumes.
type Config struct {
	ViewMode      ViewMode      `json:"mode" yaml:"mode"`
	Density       Density       `json:"density" yaml:"density"`
	ShowHighlight bool          `json:"highlight" yaml:"highlight"`
	TagNewRows    bool          `json:"tag_new_rows" yaml:"tag_new_rows"`
	NewTagTTL     time.Duration `json:"new_tag_ttl" yaml:"new_tag_ttl"`
}

// DefaultConfig returns the settings a view mounts with when the caller
// supplies none: table mode, comfortable density, highlighting off.
func DefaultConfig() Config {
	return Config{
		ViewMode:  ModeTable,
		Density:   DensityComfortable,
		NewTagTTL: DefaultNewTagTTL,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.ViewMode == "" {
		c.ViewMode = d.ViewMode
	}
	if c.Density == "" {
		c.Density = d.Density
	}
	if c.NewTagTTL == 0 {
		c.NewTagTTL = d.NewTagTTL
	}
	return c
}

// Validate checks that the Config is well-formed after defaults are applied.
// It returns a wrapped sentinel error from this package on failure.
func (c Config) Validate() error {
	c = c.WithDefaults()
	if _, err := ParseViewMode(string(c.ViewMode)); err != nil {
		return err
	}
	if _, err := ParseDensity(string(c.Density)); err != nil {
		return err
	}
	if c.NewTagTTL < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTTL, c.NewTagTTL)
	}
	return nil
}
