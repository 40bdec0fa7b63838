package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThisPythonJS/SimoWebsite/internal/clients"
	apierrors "github.com/ThisPythonJS/SimoWebsite/internal/errors"
	"github.com/ThisPythonJS/SimoWebsite/internal/session"
	logctx "github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

// SessionResolver — то, что умеет session.Manager.
type SessionResolver interface {
	Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) (session.Session, error)
}

// Session находит (или заводит) сессию посетителя и кладёт её в контекст.
// Для вошедших пользователей токен удалённого API попадает в контекст,
// откуда его берёт транспорт (Authorization: User <token>).
func Session(res SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			s, err := res.Resolve(ctx, w, r)
			if err != nil {
				logctx.From(ctx).LogAttrs(ctx, slog.LevelError, "session_resolve_failed",
					slog.String("err", err.Error()),
				)
				apierrors.WriteError(w, r, fmt.Errorf("middleware/Session: %w", err))
				return
			}

			ctx = session.Into(ctx, s)
			if s.Authenticated() {
				ctx = clients.WithToken(ctx, s.Token)
				ctx = logctx.With(ctx, slog.String("user_id", s.UserID))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
