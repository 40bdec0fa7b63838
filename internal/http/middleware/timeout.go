package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	logctx "github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

// Timeout ограничивает обработку запроса сроком d: все вызовы удалённого API
// внутри запроса укладываются в этот бюджет. Более ранний срок родительского
// контекста сохраняется. Истёкший срок отмечается в логе запроса.
// d<=0 отключает мидлвар.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				logctx.From(ctx).Warn("request budget exceeded", "budget", d.String())
			}
		})
	}
}
