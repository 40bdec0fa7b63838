package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ThisPythonJS/SimoWebsite/internal/clients/transport"
)

// HeaderRequestID — заголовок корреляции запросов.
const HeaderRequestID = "X-Request-Id"

// maxRequestIDLen — чужой id длиннее этого заменяется своим.
const maxRequestIDLen = 128

// RequestID обеспечивает наличие X-Request-Id:
//  1. берёт входящий заголовок, если он есть и разумной длины;
//  2. иначе генерирует uuid;
//  3. кладёт id в заголовки запроса/ответа и в контекст по ключу
//     transport.CtxRequestID, откуда его забирает транспорт удалённого API.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
				// errors.WriteError читает id из заголовка запроса.
				r.Header.Set(HeaderRequestID, id)
			}
			w.Header().Set(HeaderRequestID, id)

			ctx := context.WithValue(r.Context(), transport.CtxRequestID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
