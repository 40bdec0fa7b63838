package transport

import "net/http"

// WithMetadata добавляет в исходящий запрос заголовки:
//   - x-request-id (если есть в контексте),
//   - Authorization: User <token> (если есть в контексте),
//   - User-Agent (если передан параметром).
//
// Исходный запрос не модифицируется.
func WithMetadata(userAgent string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			ctx := r.Context()
			rid := stringValue(ctx, CtxRequestID)
			tok := stringValue(ctx, CtxAuthToken)

			if rid == "" && tok == "" && userAgent == "" {
				return next.RoundTrip(r)
			}

			r = r.Clone(ctx)
			if rid != "" {
				r.Header.Set("X-Request-Id", rid)
			}
			if tok != "" {
				r.Header.Set("Authorization", "User "+tok)
			}
			if userAgent != "" {
				r.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(r)
		})
	}
}
