package config

// GenerateTemplate creates a starter configuration file with every
// field documented and commented out, so an untouched file behaves
// exactly like no file at all.
func GenerateTemplate() []byte {
	return []byte(`# gotbl configuration
# See: https://github.com/yaklabco/gotbl

# Default number of results per generation
# count: 1

# Pin the random source for reproducible generation
# seed: 42

# Terminal colors: auto, always, or never
# color: auto

# Include fix suggestions in diagnostics
# suggestions: true

# Check report format: text, json, summary, or table
# output: text

# Parallel file workers (0 = one per CPU)
# workers: 0

# Checks to skip ('construct' always runs)
# checks:
#   disable:
#     - unreachable-table
#     - external-dependency
`)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gotbl configuration
# See: https://github.com/yaklabco/gotbl`
}
