package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThisPythonJS/SimoWebsite/internal/config"
	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/pkg/log"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName — имя cookie сессии.
const CookieName = "simo_session"

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager выдаёт и проверяет cookie сессии и управляет её данными в Store.
type Manager struct {
	store  Store
	secret []byte
	issuer string
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewManager создаёт Manager поверх store.
func NewManager(store Store, cfg config.SessionConfig) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		secure: cfg.CookieSecure,
		now:    time.Now,
	}
}

// Sign подписывает идентификатор сессии (HS256).
func (m *Manager) Sign(sid string) (string, error) {
	const op = "session/Sign"

	now := m.now()
	claims := sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// Parse проверяет cookie и возвращает идентификатор сессии.
func (m *Manager) Parse(tokenStr string) (string, error) {
	const op = "session/Parse"

	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{},
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.SID == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims.SID, nil
}

// Resolve возвращает сессию запроса. Если cookie нет, она битая или сессия
// истекла, создаётся новая анонимная сессия и cookie выставляется в w.
func (m *Manager) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) (Session, error) {
	const op = "session/Resolve"

	lg := log.From(ctx)

	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		sid, err := m.Parse(c.Value)
		if err == nil {
			s, err := m.store.Get(ctx, sid)
			if err == nil {
				return s, nil
			}
			if !errors.Is(err, ErrNotFound) {
				return Session{}, fmt.Errorf("%s: %w", op, err)
			}
			lg.Debug("session expired", "op", op)
		} else {
			lg.Debug("session cookie rejected", "op", op)
		}
	}

	s := Session{ID: uuid.NewString(), CreatedAt: m.now().UTC()}
	if err := m.persist(ctx, w, s); err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// Authenticate привязывает к сессии токен удалённого API и пользователя.
// Идентификатор сессии меняется, старая запись удаляется.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, old Session, token string, user models.User) (Session, error) {
	const op = "session/Authenticate"

	s := Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		Avatar:    user.Avatar,
		CreatedAt: m.now().UTC(),
	}

	if err := m.persist(ctx, w, s); err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	if old.ID != "" {
		if err := m.store.Delete(ctx, old.ID); err != nil {
			log.From(ctx).Warn("old session delete failed", "op", op, "err", err)
		}
	}

	log.From(ctx).Info("session authenticated", "op", op, "user_id", user.ID)

	return s, nil
}

// BeginLogin выдаёт одноразовый state для входа и запоминает его в сессии.
func (m *Manager) BeginLogin(ctx context.Context, s Session) (string, error) {
	const op = "session/BeginLogin"

	if s.ID == "" {
		return "", fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	s.LoginState = uuid.NewString()
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.LoginState, nil
}

// CheckLogin сверяет state из callback с выданным BeginLogin.
// Выданный state стирается при любом исходе проверки.
func (m *Manager) CheckLogin(ctx context.Context, s Session, state string) error {
	const op = "session/CheckLogin"

	if s.ID == "" {
		return fmt.Errorf("%s: %w", op, ErrLoginState)
	}

	stored, err := m.store.Get(ctx, s.ID)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrLoginState)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	expected := stored.LoginState
	if expected != "" {
		stored.LoginState = ""
		if err := m.store.Save(ctx, stored, m.ttl); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if expected == "" || state == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		log.From(ctx).Warn("login state rejected", "op", op)
		return fmt.Errorf("%s: %w", op, ErrLoginState)
	}

	return nil
}

// Destroy удаляет сессию и стирает cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s Session) error {
	const op = "session/Destroy"

	http.SetCookie(w, m.cookie("", -1))

	if s.ID == "" {
		return nil
	}

	if err := m.store.Delete(ctx, s.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (m *Manager) persist(ctx context.Context, w http.ResponseWriter, s Session) error {
	signed, err := m.Sign(s.ID)
	if err != nil {
		return err
	}

	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return err
	}

	http.SetCookie(w, m.cookie(signed, int(m.ttl/time.Second)))

	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
