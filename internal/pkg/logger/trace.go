package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey is the context key carrying the request trace ID.
const TraceIDKey = "trace_id"

// ContextHandler decorates every record with the trace_id found in ctx.
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String("trace_id", traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
