// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdslice/pkg/advise"
	"github.com/yaklabco/mdslice/pkg/config"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDSLICE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdslice.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdslice/config.yaml)
//  6. System config (/etc/mdslice/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath
	result.Paths = paths

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{name: "system", path: paths.System, ignore: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, ignore: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, ignore: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}

	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		normalizeSliceKeys(fileCfg, layer.path, result)
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeAdviseKeys(cfg, advise.DefaultRegistry, result)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := &config.Config{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return cfg, nil
}

// normalizeSliceKeys rewrites marker-style keys such as "pros-cons" or
// "Call-To-Action" to their slice type. Unknown keys are kept so validation
// can warn about them.
func normalizeSliceKeys(cfg *config.Config, path string, result *LoadResult) {
	if len(cfg.Slices) == 0 {
		return
	}

	normalized := make(config.Enablement, len(cfg.Slices))
	seen := make(map[slice.Type]slice.Type)

	for key, enabled := range cfg.Slices {
		canonical, ok := resolveSliceKey(string(key))
		if !ok {
			normalized[key] = enabled
			continue
		}
		if original, dup := seen[canonical]; dup && original != key {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: %q and %q both configure %s", path, original, key, canonical))
		}
		seen[canonical] = key
		normalized[canonical] = enabled
	}

	cfg.Slices = normalized
}

// resolveSliceKey maps a config key to a slice type. Unlike fence tags,
// config keys may name typography.
func resolveSliceKey(key string) (slice.Type, bool) {
	if t, ok := slice.ParseType(key); ok {
		return t, true
	}
	if strings.EqualFold(strings.TrimSpace(key), string(slice.TypeTypography)) {
		return slice.TypeTypography, true
	}
	return "", false
}

// normalizeAdviseKeys converts rule names to rule IDs in the advise config.
func normalizeAdviseKeys(cfg *config.Config, registry *advise.Registry, result *LoadResult) {
	if len(cfg.Advise.Rules) == 0 {
		return
	}

	normalized := make(map[string]bool, len(cfg.Advise.Rules))
	seen := make(map[string]string)

	for key, enabled := range cfg.Advise.Rules {
		id, _, found := registry.Resolve(key)
		if !found {
			normalized[key] = enabled
			continue
		}
		if original, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate advise rule configuration: %q and %q both refer to %s", original, key, id))
		}
		seen[id] = key
		normalized[id] = enabled
	}

	cfg.Advise.Rules = normalized
}
