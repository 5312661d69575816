package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// envVarPrefix is the prefix for all mdslice environment variables.
const envVarPrefix = "MDSLICE_"

// envSlicePrefix prefixes the per-type enablement variables,
// e.g. MDSLICE_SLICES_PROS_CONS=true.
const envSlicePrefix = envVarPrefix + "SLICES_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field string
	typ   envFieldType
	desc  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT":         {field: "format", typ: envTypeString, desc: "Output format: text, json, yaml, or summary"},
	"OUTPUT_DIR":     {field: "output.dir", typ: envTypeString, desc: "Directory converted documents are published to"},
	"OUTPUT_INDENT":  {field: "output.indent", typ: envTypeInt, desc: "JSON indentation (0 = compact)"},
	"OUTPUT_OFFSETS": {field: "output.offsets", typ: envTypeString, desc: "Span offset unit: utf16 or codepoint"},
	"JOBS":           {field: "jobs", typ: envTypeInt, desc: "Number of parallel workers (0 = auto)"},
	"STRICT":         {field: "strict", typ: envTypeBool, desc: "Fail when warnings are reported: true or false"},
	"DRY_RUN":        {field: "dry_run", typ: envTypeBool, desc: "Parse without publishing: true or false"},
	"ADVISE":         {field: "advise.enabled", typ: envTypeBool, desc: "Run advisory markdown checks: true or false"},
	"IGNORE":         {field: "ignore", typ: envTypeSlice, desc: "Comma-separated list of ignore patterns"},
	"ENABLED_SLICES": {field: "slices", typ: envTypeSlice, desc: "Comma-separated slice types to enable"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDSLICE_ (e.g., MDSLICE_FORMAT).
// Per-type enablement is read from MDSLICE_SLICES_<TYPE> (e.g.,
// MDSLICE_SLICES_CALL_TO_ACTION=true).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return loadSliceToggles(cfg)
}

// loadSliceToggles applies MDSLICE_SLICES_<TYPE> variables.
func loadSliceToggles(cfg *config.Config) error {
	for _, t := range slice.Types() {
		envVar := envSlicePrefix + strings.ToUpper(string(t))
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		if cfg.Slices == nil {
			cfg.Slices = make(config.Enablement)
		}
		cfg.Slices[t] = enabled
	}
	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "output.dir":
		cfg.Output.Dir = value
	case "output.offsets":
		cfg.Output.Offsets = slice.OffsetUnit(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "strict":
		cfg.Strict = value
	case "dry_run":
		cfg.DryRun = value
	case "advise.enabled":
		cfg.Advise.Enabled = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "output.indent":
		cfg.Output.Indent = &value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "slices":
		if cfg.Slices == nil {
			cfg.Slices = make(config.Enablement)
		}
		for _, tag := range value {
			t, ok := resolveSliceKey(tag)
			if !ok {
				return fmt.Errorf("unknown slice type %q in %sENABLED_SLICES", tag, envVarPrefix)
			}
			cfg.Slices[t] = true
		}
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	vars := make([][2]string, 0, len(envMappings)+len(slice.Types()))
	for suffix, mapping := range envMappings {
		vars = append(vars, [2]string{envVarPrefix + suffix, mapping.desc})
	}
	for _, t := range slice.Types() {
		vars = append(vars, [2]string{
			envSlicePrefix + strings.ToUpper(string(t)),
			"Enable the " + string(t) + " slice: true or false",
		})
	}

	sort.Slice(vars, func(i, j int) bool { return vars[i][0] < vars[j][0] })
	return vars
}
