package configloader

import (
	"maps"

	"github.com/yaklabco/mdslice/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if override is non-nil
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so only true can be layered on.
	if override.Strict {
		result.Strict = true
	}
	if override.DryRun {
		result.DryRun = true
	}

	if override.Output.Format != "" {
		result.Output.Format = override.Output.Format
	}
	if override.Output.Dir != "" {
		result.Output.Dir = override.Output.Dir
	}
	if override.Output.Indent != nil {
		indent := *override.Output.Indent
		result.Output.Indent = &indent
	}
	if override.Output.Offsets != "" {
		result.Output.Offsets = override.Output.Offsets
	}

	if override.Advise.Enabled != nil {
		enabled := *override.Advise.Enabled
		result.Advise.Enabled = &enabled
	}
	result.Advise.Rules = mergeBools(base.Advise.Rules, override.Advise.Rules)

	result.Slices = config.Enablement(mergeBools(base.Slices, override.Slices))

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeBools performs a deep merge of two toggle maps.
func mergeBools[K comparable](base, override map[K]bool) map[K]bool {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[K]bool, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
