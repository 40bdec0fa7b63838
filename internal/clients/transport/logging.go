package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ThisPythonJS/SimoWebsite/pkg/log"
	"github.com/ThisPythonJS/SimoWebsite/pkg/redact"

	"github.com/google/uuid"
)

// WithLogging — логирование исходящих вызовов.
// Поведение:
//   - берёт x-request-id из заголовка (или генерирует новый и добавляет);
//   - прокладывает обогащённый логгер в контекст запроса (pkg/log);
//   - пишет одну финальную запись: msg="remote", status, dur.
//
// Не логирует тело запроса; вместо токена пишет заглушку auth.
func WithLogging(base *slog.Logger) Middleware {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			rid := r.Header.Get("X-Request-Id")
			if rid == "" {
				rid = uuid.NewString()
				r = r.Clone(r.Context())
				r.Header.Set("X-Request-Id", rid)
			}

			l := base.With(
				slog.String("request_id", rid),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("operation", operation(r.Context())),
			)
			if tok := stringValue(r.Context(), CtxAuthToken); tok != "" {
				l = l.With(slog.String("auth", redact.Token(tok)))
			}
			r = r.WithContext(log.Into(r.Context(), l))

			resp, err := next.RoundTrip(r)
			if err != nil {
				l.Warn("remote",
					slog.String("error", err.Error()),
					slog.Duration("dur", time.Since(start)),
				)
				return nil, err
			}

			l.Info("remote",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
