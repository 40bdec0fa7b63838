// Package transport собирает цепочку http.RoundTripper для исходящих вызовов
// к удалённому API: metadata -> timeout -> logging -> metrics.
package transport

import (
	"context"
	"net/http"
)

type CtxKey string

const (
	CtxRequestID CtxKey = "request_id"
	CtxAuthToken CtxKey = "auth_token"
	CtxOperation CtxKey = "operation"
)

// RoundTripperFunc адаптирует функцию к http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Middleware оборачивает RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// Chain оборачивает base так, что первый middleware выполняется первым.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}

	return base
}

// WithOperation помечает исходящий вызов стабильным именем операции
// (используется как метка метрик и поле лога).
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, CtxOperation, op)
}

func operation(ctx context.Context) string {
	if v, ok := ctx.Value(CtxOperation).(string); ok && v != "" {
		return v
	}

	return "unknown"
}

func stringValue(ctx context.Context, key CtxKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}
