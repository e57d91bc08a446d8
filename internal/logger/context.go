// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"context"
)

// WithContext returns a copy of ctx carrying logger.
func WithContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// FromContext returns the logger carried by ctx, or a logger discarding everything.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey).(Logger); ok {
			return logger
		}
	}

	return nullLogger
}

// WithRunID returns a context whose logger tags every line with runID, the identifier
// can be read back with RunIDFromContext.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, runIDContextKey, runID)
	return WithContext(ctx, FromContext(ctx).With(RunIDKey, runID))
}

// RunIDFromContext returns the identifier set by WithRunID, or an empty string.
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	runID, _ := ctx.Value(runIDContextKey).(string)
	return runID
}

type contextKeyType int

const (
	contextKey contextKeyType = iota
	runIDContextKey
)
