// Package transport builds the HTTP client used to talk to the operator.
package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rezonia/edo-upd/internal/logger"
)

// LoggingRoundTripper logs every request and response without headers
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Logger    *slog.Logger
}

func NewLoggingRoundTripper(log *slog.Logger, transport http.RoundTripper) *LoggingRoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}
	if log == nil {
		log = slog.Default()
	}
	return &LoggingRoundTripper{Transport: transport, Logger: log}
}

func (l *LoggingRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	reqID := logger.RequestIDFromCtx(ctx)
	if reqID != "" {
		r.Header.Set("X-Request-Id", reqID)
	}

	request := fmt.Sprintf("%s %s", r.Method, r.URL.Redacted())
	l.Logger.InfoContext(ctx, "outgoing request", "request", request)

	start := time.Now()
	resp, err := l.Transport.RoundTrip(r)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}

	l.Logger.InfoContext(ctx, "incoming response",
		"response", request,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)

	return resp, nil
}
