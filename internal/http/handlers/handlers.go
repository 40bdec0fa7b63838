package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/ThisPythonJS/SimoWebsite/internal/errors"
	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/internal/pager"
	"github.com/ThisPythonJS/SimoWebsite/internal/session"
	"github.com/ThisPythonJS/SimoWebsite/internal/views"
)

// maxBodyBytes — предел тела запроса (описание бота до 4000 символов плюс запас).
const maxBodyBytes = 64 << 10

// RemoteAPI — вызовы удалённого API, которые хендлеры делают напрямую,
// минуя компоненты состояния.
type RemoteAPI interface {
	Status(ctx context.Context) (models.Status, error)
	BotsRange(ctx context.Context, start, end int) ([]models.Bot, error)
	Bot(ctx context.Context, id string) (models.Bot, error)
	CreateBot(ctx context.Context, id string, in models.BotInput) (models.Bot, error)
	UpdateBot(ctx context.Context, id string, in models.BotInput) (models.Bot, error)
	DeleteBot(ctx context.Context, id string) error
	User(ctx context.Context, id string) (models.User, error)
	Team(ctx context.Context, id string) (models.Team, error)
	TeamBots(ctx context.Context, id string) ([]models.Bot, error)
	Me(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error
}

// Sessions — операции входа/выхода (session.Manager).
type Sessions interface {
	BeginLogin(ctx context.Context, s session.Session) (string, error)
	CheckLogin(ctx context.Context, s session.Session, state string) error
	Authenticate(ctx context.Context, w http.ResponseWriter, old session.Session, token string, user models.User) (session.Session, error)
	Destroy(ctx context.Context, w http.ResponseWriter, s session.Session) error
}

// Options — зависимости хендлеров.
type Options struct {
	Remote   RemoteAPI
	Bots     pager.Source[models.Bot]
	Views    *views.Registry
	Sessions Sessions
	LoginURL string
	// Rand — источник для окна рекомендаций; nil — общий math/rand.
	Rand pager.Intn
}

// Handlers агрегирует зависимости.
type Handlers struct {
	remote   RemoteAPI
	bots     pager.Source[models.Bot]
	views    *views.Registry
	sessions Sessions
	loginURL string
	rnd      pager.Intn
}

func New(opts Options) *Handlers {
	rnd := opts.Rand
	if rnd == nil {
		rnd = globalRand{}
	}

	return &Handlers{
		remote:   opts.Remote,
		bots:     opts.Bots,
		views:    opts.Views,
		sessions: opts.Sessions,
		loginURL: opts.LoginURL,
		rnd:      rnd,
	}
}

// globalRand — потокобезопасный общий генератор math/rand.
type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля и мусор после объекта.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("%w: %w", apierrors.ErrBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data", apierrors.ErrBadRequest)
	}

	return nil
}

// current — сессия запроса (её кладёт middleware.Session).
func current(r *http.Request) session.Session {
	s, _ := session.From(r.Context())
	return s
}

// actor — id вошедшего пользователя или "" для анонима.
func actor(r *http.Request) string {
	s := current(r)
	if !s.Authenticated() {
		return ""
	}
	return s.UserID
}

// viewSet — состояние компонентов страницы текущей сессии.
func (h *Handlers) viewSet(r *http.Request) *views.Set {
	return h.views.For(current(r).ID)
}

// pathID — обязательный параметр пути.
func pathID(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if v == "" {
		return "", fmt.Errorf("%w: missing %s", apierrors.ErrBadRequest, name)
	}
	return v, nil
}

// queryInt — необязательный целый параметр запроса.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", apierrors.ErrBadRequest, name)
	}
	return n, nil
}
