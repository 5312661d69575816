// Package config defines core configuration types for mdslice.
// These types are pure data structures with no dependency on the loader.
package config

import "github.com/yaklabco/mdslice/pkg/slice"

// OutputFormat specifies how parse results are written.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// Formats returns every supported output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatYAML, FormatSummary}
}

// IsValid returns true if the format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatSummary:
		return true
	default:
		return false
	}
}

// AdviseConfig controls the advisory markdown checks run on plain text.
type AdviseConfig struct {
	// Enabled turns advisory checks on or off. Nil means the default (on).
	Enabled *bool `mapstructure:"enabled" yaml:"enabled,omitempty"`

	// Rules enables or disables individual checks keyed by rule ID or name.
	// Rules not listed are enabled.
	Rules map[string]bool `mapstructure:"rules" yaml:"rules,omitempty"`
}

// IsEnabled reports whether advisory checks run.
func (a AdviseConfig) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// RuleEnabled reports whether the rule with the given ID and name runs.
// An entry keyed by ID wins over one keyed by name.
func (a AdviseConfig) RuleEnabled(id, name string) bool {
	if enabled, ok := a.Rules[id]; ok {
		return enabled
	}
	if enabled, ok := a.Rules[name]; ok {
		return enabled
	}
	return true
}

// OutputConfig controls where and how documents are written.
type OutputConfig struct {
	// Format is the default output format.
	Format OutputFormat `mapstructure:"format" yaml:"format,omitempty"`

	// Dir is the directory converted documents are published to.
	// Empty means documents are written to stdout.
	Dir string `mapstructure:"dir" yaml:"dir,omitempty"`

	// Indent is the JSON indentation width; 0 selects compact output.
	// Nil means the default width.
	Indent *int `mapstructure:"indent" yaml:"indent,omitempty"`

	// Offsets is the unit span offsets are written in. Empty means
	// UTF-16 code units.
	Offsets slice.OffsetUnit `mapstructure:"offsets" yaml:"offsets,omitempty"`
}

// DefaultIndent is the JSON indentation used when none is configured.
const DefaultIndent = 2

// IndentWidth returns the configured JSON indentation.
func (o OutputConfig) IndentWidth() int {
	if o.Indent == nil || *o.Indent < 0 {
		return DefaultIndent
	}
	return *o.Indent
}

// OffsetUnit returns the configured span offset unit.
func (o OutputConfig) OffsetUnit() slice.OffsetUnit {
	if o.Offsets == "" {
		return slice.OffsetUTF16
	}
	return o.Offsets
}

// Config is the root configuration structure for mdslice.
type Config struct {
	// Slices enables slice types for generation instructions.
	Slices Enablement `mapstructure:"slices" yaml:"slices"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Advise configures the advisory markdown checks.
	Advise AdviseConfig `mapstructure:"advise" yaml:"advise"`

	// Output configures document output.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// CLI-level options (not persisted to config files).

	// Format overrides Output.Format for a single run.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Strict treats warning diagnostics as a failed conversion.
	Strict bool `mapstructure:"-" yaml:"-"`

	// DryRun parses and reports without publishing documents.
	DryRun bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	advise := true
	indent := DefaultIndent
	return &Config{
		Slices: DefaultEnablement(),
		Ignore: nil,
		Advise: AdviseConfig{
			Enabled: &advise,
			Rules:   make(map[string]bool),
		},
		Output: OutputConfig{
			Format: FormatText,
			Indent: &indent,
		},
		Jobs: 0, // 0 means use GOMAXPROCS
	}
}

// EffectiveFormat returns the output format for this run: the CLI override,
// then the configured format, then text.
func (c *Config) EffectiveFormat() OutputFormat {
	switch {
	case c.Format != "":
		return c.Format
	case c.Output.Format != "":
		return c.Output.Format
	default:
		return FormatText
	}
}
