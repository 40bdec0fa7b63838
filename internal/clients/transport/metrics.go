package transport

import (
	"net/http"
	"time"
)

// Observer принимает итог исходящего вызова. status == 0 — транспортная ошибка.
type Observer interface {
	ObserveRemote(operation string, status int, dur time.Duration)
}

// WithMetrics передаёт в obs операцию, статус и длительность каждого вызова.
func WithMetrics(obs Observer) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if obs == nil {
			return next
		}

		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			status := 0
			if err == nil {
				status = resp.StatusCode
			}
			obs.ObserveRemote(operation(r.Context()), status, time.Since(start))

			return resp, err
		})
	}
}
