package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	apierrors "github.com/ThisPythonJS/SimoWebsite/internal/errors"
	logctx "github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

// Recover перехватывает panic и отвечает 500/internal.
// Детали паники остаются в логе.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.String("path", r.URL.Path),
					slog.Any("reason", rec),
				)
				apierrors.WriteError(w, r, fmt.Errorf("middleware/Recover: %w", apierrors.ErrInternal))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
