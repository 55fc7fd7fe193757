// Package logging defines the structured logger used across the project.
// The interface keeps call sites independent of the backing implementation.
package logging

import "context"

// Logger is a leveled, context-aware logger. The variadic args are
// alternating key-value pairs:
//
//	log.Info(ctx, "starting server", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger whose records always carry the given
	// key-value pairs.
	With(args ...any) Logger
}
