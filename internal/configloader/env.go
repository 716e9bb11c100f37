package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gotbl/pkg/config"
)

// envVarPrefix is the prefix for all gotbl environment variables.
const envVarPrefix = "GOTBL_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeUint
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"COUNT":          {field: "count", typ: envTypeInt},
	"SEED":           {field: "seed", typ: envTypeUint},
	"COLOR":          {field: "color", typ: envTypeString},
	"SUGGESTIONS":    {field: "suggestions", typ: envTypeBool},
	"OUTPUT":         {field: "output", typ: envTypeString},
	"WORKERS":        {field: "workers", typ: envTypeInt},
	"CHECKS_DISABLE": {field: "checks.disable", typ: envTypeSlice},
	"DEBUG":          {field: "debug", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOTBL_ (e.g., GOTBL_COUNT).
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
	case envTypeUint:
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer for %s: %q", envVar, value)
		}
		return setUintField(cfg, mapping.field, u)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
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
	case "color":
		cfg.Color = config.ColorMode(value)
	case "output":
		cfg.Output = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "suggestions":
		cfg.Suggestions = &value
	case "debug":
		cfg.Debug = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "count":
		cfg.Count = value
	case "workers":
		cfg.Workers = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setUintField sets an unsigned integer field on the config by field path.
func setUintField(cfg *config.Config, field string, value uint64) error {
	switch field {
	case "seed":
		cfg.Seed = &value
	default:
		return fmt.Errorf("unknown unsigned integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "checks.disable":
		cfg.Checks.Disable = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GOTBL_COUNT":          "Default number of results per generation",
		"GOTBL_SEED":           "Random seed for reproducible generation",
		"GOTBL_COLOR":          "Color mode: auto, always, or never",
		"GOTBL_SUGGESTIONS":    "Include fix suggestions: true or false",
		"GOTBL_OUTPUT":         "Check report format: text, json, summary, or table",
		"GOTBL_WORKERS":        "Number of parallel workers (0 = one per CPU)",
		"GOTBL_CHECKS_DISABLE": "Comma-separated list of check IDs to skip",
		"GOTBL_DEBUG":          "Enable debug logging: true or false",
	}
}
