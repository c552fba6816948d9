package cli

import (
	"context"
	"time"
)

// logHooks reports registry traffic through the logger attached to the
// request context.
type logHooks struct{}

// OnRequest is a no-op; the HTTP client already logs outgoing requests.
func (logHooks) OnRequest(context.Context, string, string, string) {}

func (logHooks) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	loggerFromContext(ctx).Debug("Received response", "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (logHooks) OnError(ctx context.Context, method, host, path string, err error) {
	loggerFromContext(ctx).Debug("Request failed", "host", host, "path", path, "err", err)
}

func (logHooks) OnRejected(ctx context.Context, host, path string, violations int) {
	loggerFromContext(ctx).Warn("Response does not match the expected schema", "host", host, "path", path, "violations", violations)
}
