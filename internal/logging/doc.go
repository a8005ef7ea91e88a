// Package logging assembles structured slog loggers and formatting helpers used
// across sindex.
//
// It owns the console and JSON handlers, centralizes level and output plumbing
// (including rotated log files), and exposes attribute helpers so packages emit
// warnings with the same event_type, error_hint and impact shape. A no-op
// logger is provided for tests and for library callers that pass no logger.
package logging
