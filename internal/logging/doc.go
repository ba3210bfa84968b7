// Package logging provides the leveled logging interface used across the
// gallery indexer.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information (per-directory fallbacks, cache hits)
//   - INFO: Build and manifest progress
//   - WARN: Degraded reads, rejected override lines
//   - ERROR: Failures surfaced to the caller
//   - FATAL: Fatal errors that terminate the CLI
//
// The log level is configured via the DEBUG or LOG_LEVEL environment variables.
// Output is rendered by charmbracelet/log.
package logging
