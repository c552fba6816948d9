// Package observability lets the host program watch registry traffic without
// the API clients depending on a metrics or tracing backend.
//
// Register hooks once at startup:
//
//	observability.SetHTTPHooks(&myHTTPHooks{})
//
// The shared HTTP layer in pkg/integrations reports every request through
// [HTTP]. Until hooks are registered the calls go to no-op defaults.
package observability

import (
	"context"
	"sync"
	"time"
)

// HTTPHooks receives events from the registry HTTP client.
type HTTPHooks interface {
	// OnRequest is called before a request is sent.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse is called once response headers have arrived, whatever the
	// status code.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError is called when no response was received.
	OnError(ctx context.Context, method, host, path string, err error)
}

// ValidationHooks receives the outcome of response checks.
type ValidationHooks interface {
	// OnRejected is called when a response body fails schema validation.
	OnRejected(ctx context.Context, host, path string, violations int)
}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// NoopValidationHooks is a no-op implementation of ValidationHooks.
type NoopValidationHooks struct{}

func (NoopValidationHooks) OnRejected(context.Context, string, string, int) {}

var (
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	validationHooks ValidationHooks = NoopValidationHooks{}
	hooksMu         sync.RWMutex
)

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// SetValidationHooks registers custom validation hooks. Nil is ignored.
func SetValidationHooks(h ValidationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		validationHooks = h
	}
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Validation returns the registered validation hooks.
func Validation() ValidationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return validationHooks
}

// Reset restores the no-op defaults. Intended for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	httpHooks = NoopHTTPHooks{}
	validationHooks = NoopValidationHooks{}
}
