package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldFile       = "file"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Generation fields.
	FieldTable = "table"
	FieldCount = "count"
	FieldSeed  = "seed"

	// Check fields.
	FieldTables   = "tables"
	FieldChecks   = "checks"
	FieldFindings = "findings"

	// Configuration fields.
	FieldFormat  = "format"
	FieldWorkers = "workers"
	FieldConfig  = "config"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldDurationMS      = "duration_ms"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
