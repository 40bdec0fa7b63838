// redact прячет секреты (токены в query-строках и т.п.) перед записью в лог,
// оставляя остальной контекст запроса.
package redact

import (
	"net/url"
	"slices"
	"strings"
)

// TokenPlaceholder — литерал-заглушка для секретного значения.
const TokenPlaceholder = "[REDACTED]"

// SensitiveParams — параметры запроса, значения которых не пишутся в лог.
var SensitiveParams = []string{"token", "code", "access_token", "state"}

// Query возвращает закодированную query-строку, в которой значения ключей
// keys (без учёта регистра) заменены на TokenPlaceholder. Ключи сортируются.
//
// Примеры:
//
//	"token=abc&page=2"  -> "page=2&token=%5BREDACTED%5D"
//	"page=2"            -> "page=2"
func Query(values url.Values, keys ...string) string {
	if len(values) == 0 {
		return ""
	}

	out := make(url.Values, len(values))
	for k, vs := range values {
		if slices.ContainsFunc(keys, func(s string) bool { return strings.EqualFold(s, k) }) {
			masked := make([]string, len(vs))
			for i := range masked {
				masked[i] = TokenPlaceholder
			}
			out[k] = masked
			continue
		}
		out[k] = vs
	}

	return out.Encode()
}

// Token возвращает заглушку для непустого токена и "" для пустого,
// чтобы в логе было видно, был ли токен вообще.
func Token(tok string) string {
	if tok == "" {
		return ""
	}
	return TokenPlaceholder
}
