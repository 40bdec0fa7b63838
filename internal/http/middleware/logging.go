package middleware

import (
	"log/slog"
	"net/http"
	"time"

	logctx "github.com/ThisPythonJS/SimoWebsite/pkg/log"
	"github.com/ThisPythonJS/SimoWebsite/pkg/redact"
)

// Logging кладёт request-scoped логгер в контекст и пишет одну запись "http"
// на запрос. Ответы 5xx пишутся уровнем Error; секреты в query маскируются.
func Logging(l *slog.Logger) Middleware {
	if l == nil {
		l = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := l
			if rid := r.Header.Get(HeaderRequestID); rid != "" {
				reqLogger = reqLogger.With(slog.String("request_id", rid))
			}
			r = r.WithContext(logctx.Into(r.Context(), reqLogger))

			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			level := slog.LevelInfo
			if sw.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.Status()),
				slog.Duration("dur", time.Since(start)),
				slog.Int("bytes", sw.count),
			}
			if r.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", redact.Query(r.URL.Query(), redact.SensitiveParams...)))
			}

			reqLogger.LogAttrs(r.Context(), level, "http", attrs...)
		})
	}
}
