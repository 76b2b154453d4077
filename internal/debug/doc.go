// Package debug provides leveled logging for the framework core.
//
// Records go through log/slog. When the ACE_DEBUG environment variable is set
// to a file path, debug-level JSON records are appended to that file.
// Otherwise warnings and errors are written to stderr; ACE_LOG_LEVEL
// adjusts the threshold.
package debug
