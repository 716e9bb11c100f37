// Package config defines core configuration types for gotbl.
// These types are pure data structures; discovery, environment
// overrides, and merging live in internal/configloader.
package config

// ColorMode controls when terminal output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is a known value.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// ChecksConfig configures the check command.
type ChecksConfig struct {
	// Disable lists check IDs to skip. The construct check always runs.
	Disable []string `yaml:"disable,omitempty"`
}

// Config is the root configuration structure for gotbl.
type Config struct {
	// Count is the default number of results per generation.
	Count int `yaml:"count"`

	// Seed pins the random source for reproducible generation.
	// Nil means a fresh seed per run.
	Seed *uint64 `yaml:"seed,omitempty"`

	// Color controls terminal color output ("auto", "always", or "never").
	Color ColorMode `yaml:"color"`

	// Suggestions toggles fix suggestions in rendered diagnostics.
	// Nil means enabled.
	Suggestions *bool `yaml:"suggestions,omitempty"`

	// Output is the report format for check results
	// ("text", "json", "summary", or "table").
	Output string `yaml:"output"`

	// Workers is the number of parallel file workers. 0 means one per CPU.
	Workers int `yaml:"workers"`

	// Checks configures the check command.
	Checks ChecksConfig `yaml:"checks"`

	// CLI-level options (not persisted to config files).

	// Debug enables debug logging.
	Debug bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Count:   1,
		Color:   ColorAuto,
		Output:  "text",
		Workers: 0, // 0 means one worker per CPU
	}
}

// SuggestionsEnabled reports whether rendered diagnostics should carry
// fix suggestions. Unset means enabled.
func (c *Config) SuggestionsEnabled() bool {
	return c.Suggestions == nil || *c.Suggestions
}
