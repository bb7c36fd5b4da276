// Package logging defines the small structured-logging interface the diary
// components depend on, keeping them decoupled from any one backend.
package logging

import "context"

// Logger is a context-aware, leveled, structured logger. The variadic args
// are key-value pairs:
//
//	log.Info(ctx, "database ready", "path", path, "seeded", seeded)
type Logger interface {
	// Debug logs fine-grained diagnostics, off by default.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs normal operational events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key-value pairs on
	// every record.
	With(args ...any) Logger
}
