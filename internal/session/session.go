// session — сессии посетителей: подписанная cookie (JWT с sid) и хранилище
// данных сессии (память процесса или Redis).
//
// В сессии лежит токен удалённого API и краткие данные пользователя.
// Бизнес-данные (боты, отзывы и т.д.) в сессии не хранятся.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound — сессии нет или она истекла.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidToken — cookie не прошла проверку подписи/срока/издателя.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrLoginState — state входа не выдавался этой сессии, уже использован или не совпал.
	ErrLoginState = errors.New("login state mismatch")
)

// Session — данные одной сессии. Token пуст у анонимного посетителя.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	// LoginState — одноразовый state начатого входа.
	LoginState string `json:"login_state,omitempty"`
}

// Authenticated — есть ли у сессии пользователь.
func (s Session) Authenticated() bool { return s.Token != "" && s.UserID != "" }

// Store — хранилище сессий.
type Store interface {
	// Get возвращает сессию или ErrNotFound.
	Get(ctx context.Context, id string) (Session, error)
	// Save сохраняет сессию с TTL.
	Save(ctx context.Context, s Session, ttl time.Duration) error
	// Delete удаляет сессию; отсутствие сессии не ошибка.
	Delete(ctx context.Context, id string) error
	// Close освобождает ресурсы.
	Close() error
}

type ctxKey struct{}

// Into кладёт сессию в контекст.
func Into(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From достаёт сессию из контекста.
func From(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
