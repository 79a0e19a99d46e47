package logger

import (
	"context"
	log "log/slog"
)

// Context 中的日志关联键
const (
	TraceIDKey = "trace_id"
	UserIDKey  = "user_id"
)

// ContextHandler 包装器，把 ctx 中的 trace_id 与 user_id 附加到每条日志
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
		if userID, ok := ctx.Value(UserIDKey).(uint64); ok && userID != 0 {
			r.AddAttrs(log.Uint64(UserIDKey, userID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
