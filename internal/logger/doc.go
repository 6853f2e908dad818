// Package logger configures log/slog for prbot's stderr progress output and
// carries the logger through context.Context.
package logger
