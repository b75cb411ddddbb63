// Package logging configures the charmbracelet/log loggers srcfix writes
// diagnostics to.
package logging

// Structured logging keys.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldSource     = "source"

	// Run options.
	FieldDryRun = "dry_run"
	FieldCheck  = "check"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	// Per-file processing.
	FieldLanguage = "language"
	FieldFamily   = "family"
	FieldFixes    = "fixes"
	FieldReason   = "reason"
	FieldBackup   = "backup"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesModified   = "files_modified"
	FieldFilesErrored    = "files_errored"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesRestored   = "files_restored"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
