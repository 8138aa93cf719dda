package audit

import (
	"context"
	"log/slog"
)

// Interceptor observes the raw request and response bodies on the wire.
// Implementations must not modify the byte slices they receive.
type Interceptor interface {
	OnRequestBytes(ctx context.Context, endpoint string, body []byte)
	OnResponseBytes(ctx context.Context, endpoint string, body []byte)
}

// Recorder logs traffic sizes through slog. It records lengths rather than
// bodies so payload content stays out of application logs.
type Recorder struct {
	logger *slog.Logger
}

// NewRecorder returns a Recorder writing to the given logger, or the
// default logger when nil.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logger: logger}
}

func (r *Recorder) OnRequestBytes(ctx context.Context, endpoint string, body []byte) {
	r.logger.DebugContext(ctx, "mms request", "endpoint", endpoint, "bytes", len(body))
}

func (r *Recorder) OnResponseBytes(ctx context.Context, endpoint string, body []byte) {
	r.logger.DebugContext(ctx, "mms response", "endpoint", endpoint, "bytes", len(body))
}
