package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey struct{}

var loggerKey = contextKey{}

// WithContext returns a context carrying the given logger
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger carried by the context, enriched with the
// trace ID when the context carries an active span. Falls back to the global
// logger when none was attached.
func FromContext(ctx context.Context) *zap.Logger {
	logger, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		logger = zap.L()
	}

	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		logger = logger.With(zap.String("trace_id", span.TraceID().String()))
	}
	return logger
}
