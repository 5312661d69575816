// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldFormat = "format"
	FieldDryRun = "dry_run"
	FieldStrict = "strict"
	FieldJobs   = "jobs"
	FieldSlices = "slices"

	// Document fields.
	FieldLine     = "line"
	FieldCode     = "code"
	FieldSeverity = "severity"
	FieldDuration = "duration"

	// Rule fields.
	FieldEnabled     = "enabled"
	FieldDescription = "description"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldSlicesTotal      = "slices_total"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesPublished   = "files_published"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
