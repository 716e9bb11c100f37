package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotbl/pkg/check"
	"github.com/yaklabco/gotbl/pkg/config"
	"github.com/yaklabco/gotbl/pkg/reporter"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "checks.disable").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
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

	// Warnings are non-fatal issues (e.g., unknown check IDs).
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
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	// Validate count
	if cfg.Count < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "count",
			Value:   cfg.Count,
			Message: "count must be >= 0",
		})
	}

	// Validate color mode
	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	// Validate output format
	if cfg.Output != "" {
		if _, err := reporter.ParseFormat(cfg.Output); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "output",
				Value:   cfg.Output,
				Message: err.Error(),
			})
		}
	}

	// Validate workers
	if cfg.Workers < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "workers",
			Value:   cfg.Workers,
			Message: "workers must be >= 0 (0 means one per CPU)",
		})
	}

	// Validate check disables
	validateCheckDisables(cfg, result)

	return result
}

// validateCheckDisables checks disabled check IDs against the registry.
func validateCheckDisables(cfg *config.Config, result *ValidationResult) {
	registry := check.DefaultRegistry

	for _, checkID := range cfg.Checks.Disable {
		chk, exists := registry.Get(checkID)
		if !exists {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "checks.disable",
				Value:   checkID,
				Message: fmt.Sprintf("unknown check %q; it will be ignored", checkID),
			})
			continue
		}

		if !chk.Disableable() {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "checks.disable",
				Value:   checkID,
				Message: fmt.Sprintf("check %q cannot be disabled; it always runs", checkID),
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
