package configloader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/mdslice/pkg/advise"
	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "output.format").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: %s", cfg.Format, formatList()),
		})
	}

	if cfg.Output.Format != "" && !cfg.Output.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.format",
			Value:   cfg.Output.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: %s", cfg.Output.Format, formatList()),
		})
	}

	if cfg.Output.Indent != nil && *cfg.Output.Indent < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.indent",
			Value:   *cfg.Output.Indent,
			Message: "indent must be >= 0 (0 means compact)",
		})
	}

	if cfg.Output.Offsets != "" && !cfg.Output.Offsets.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.offsets",
			Value:   cfg.Output.Offsets,
			Message: fmt.Sprintf("invalid offset unit %q; must be %s or %s", cfg.Output.Offsets, slice.OffsetUTF16, slice.OffsetCodePoints),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateSlices(cfg, result)
	validateAdviseRules(cfg, advise.DefaultRegistry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateSlices warns about slice keys that name no known type.
func validateSlices(cfg *config.Config, result *ValidationResult) {
	for _, key := range cfg.Slices.Unknown() {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "slices." + string(key),
			Value:   key,
			Message: fmt.Sprintf("unknown slice type %q; it will be ignored", key),
		})
	}
}

// validateAdviseRules warns about advise rules missing from the registry.
func validateAdviseRules(cfg *config.Config, registry *advise.Registry, result *ValidationResult) {
	keys := make([]string, 0, len(cfg.Advise.Rules))
	for key := range cfg.Advise.Rules {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, _, found := registry.Resolve(key); found {
			continue
		}
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "advise.rules." + key,
			Value:   key,
			Message: fmt.Sprintf("unknown advise rule %q; it will be ignored", key),
		})
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// formatList renders the supported output formats for messages.
func formatList() string {
	formats := config.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
