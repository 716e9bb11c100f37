package configloader

import "github.com/yaklabco/gotbl/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer values: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	// Scalars: override overwrites base if set (non-zero value)
	if override.Count != 0 {
		result.Count = override.Count
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Workers != 0 {
		result.Workers = override.Workers
	}

	// Pointers: non-nil override wins, so an explicit "seed: 0" or
	// "suggestions: false" in a higher-precedence source still applies.
	if override.Seed != nil {
		result.Seed = override.Seed
	}
	if override.Suggestions != nil {
		result.Suggestions = override.Suggestions
	}

	// Debug is a plain bool; a config file cannot unset a CLI --debug.
	if override.Debug {
		result.Debug = override.Debug
	}

	// Slices: override replaces base entirely if non-nil
	if override.Checks.Disable != nil {
		result.Checks.Disable = override.Checks.Disable
	}

	return &result
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
