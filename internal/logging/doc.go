// Package logging provides structured logging helpers built on log/slog.
//
// It defines the attribute-key constants used across the codebase, typed
// attribute constructors (Operation, Tool, Status, Err, Degraded), a
// credential-masking helper for safe diagnostics, and a small Logger
// interface with an slog adapter so core packages stay free of global
// logging state.
package logging
