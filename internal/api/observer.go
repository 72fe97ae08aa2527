package api

import (
	"time"

	"go.uber.org/zap"
)

// CallEvent records metadata about one gateway call.
type CallEvent struct {
	RequestID  string
	Method     string
	Path       string
	StatusCode int
	Latency    time.Duration
	Success    bool
	ErrorKind  Kind
	Err        error
}

// Observer receives an event after every gateway call.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a zap logger.
type LogObserver struct {
	logger *zap.Logger
}

func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger.Named("api")}
}

func (o *LogObserver) OnCallComplete(e CallEvent) {
	fields := []zap.Field{
		zap.String("request_id", e.RequestID),
		zap.String("method", e.Method),
		zap.String("path", e.Path),
		zap.Int("status", e.StatusCode),
		zap.Int64("latency_ms", e.Latency.Milliseconds()),
	}
	if e.Success {
		o.logger.Info("api_call", fields...)
		return
	}
	fields = append(fields, zap.Stringer("error_kind", e.ErrorKind), zap.Error(e.Err))
	o.logger.Warn("api_call", fields...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
