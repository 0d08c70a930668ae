// Package logging provides a tiny abstraction over slog so downstream code can
// depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. A NoOpLogger is provided for tests and for callers that
// disable logging entirely.
package logging
