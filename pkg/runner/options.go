// Package runner provides multi-file check orchestration.
package runner

// Options controls multi-file check behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading
	// dot) searched for in directories. Defaults to [".tbl", ".md"] via
	// DefaultExtensions(). Explicitly named files are taken regardless
	// of extension.
	Extensions []string

	// SkipDirs are directory names excluded from directory walks, in
	// addition to hidden directories. Defaults to DefaultSkipDirs().
	SkipDirs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Workers controls the maximum number of concurrent workers.
	// 0 or negative means one per CPU.
	Workers int

	// Disabled lists check IDs to skip. Checks that are not disableable
	// run regardless.
	Disabled []string
}

// DefaultExtensions returns the default set of table source file
// extensions.
func DefaultExtensions() []string {
	return []string{".tbl", ".md"}
}

// DefaultSkipDirs returns the directory names skipped during discovery
// walks.
func DefaultSkipDirs() []string {
	return []string{"vendor", "node_modules"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectiveSkipDirs returns the skip list to use, defaulting if empty.
func (o Options) effectiveSkipDirs() []string {
	if len(o.SkipDirs) == 0 {
		return DefaultSkipDirs()
	}
	return o.SkipDirs
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
