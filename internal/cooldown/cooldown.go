// cooldown — одноразовое удалённое действие (голос за бота), доступное только
// когда удалённая сторона сообщает allowed=true; иначе показывается обратный отсчёт.
package cooldown

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

var (
	// ErrLoginRequired — действие требует аутентифицированного пользователя.
	ErrLoginRequired = errors.New("login required")
	// ErrNotAllowed — окно ожидания не истекло или статус ещё не получен.
	ErrNotAllowed = errors.New("action not allowed yet")
	// ErrBusy — действие уже выполняется.
	ErrBusy = errors.New("action in flight")
	// ErrInvalidArgument — пустой target.
	ErrInvalidArgument = errors.New("invalid argument")
)

// VoteAPI — часть удалённого API, нужная Gate.
type VoteAPI interface {
	VoteStatus(ctx context.Context, botID string) (models.VoteStatus, error)
	Vote(ctx context.Context, botID, userID string) error
}

// Phase — фаза оптимистичного действия: idle -> pending -> done.
// done выставляется локально по успешному ответу; источник истины — следующий Refresh.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePending Phase = "pending"
	PhaseDone    Phase = "done"
)

// Status — снимок статуса на момент последнего Refresh. Между Refresh не обновляется.
type Status struct {
	Allowed     bool
	RemainingMs int64
	FetchedAt   time.Time
}

// View — модель отображения кнопки действия.
type View struct {
	Target         string `json:"target"`
	RequiresLogin  bool   `json:"requires_login"`
	Fetched        bool   `json:"fetched"`
	Allowed        bool   `json:"allowed"`
	RemainingMs    int64  `json:"remaining_ms"`
	RemainingHours int64  `json:"remaining_hours"`
	Countdown      string `json:"countdown,omitempty"`
	Phase          Phase  `json:"phase"`
	Done           bool   `json:"done"`
	Busy           bool   `json:"busy"`
}

// Gate — действие для пары (actor, target). Пустой actor — аноним.
type Gate struct {
	api    VoteAPI
	target string
	actor  string
	now    func() time.Time

	mu       sync.Mutex
	status   *Status
	phase    Phase
	inFlight bool
	// gen растёт после каждого успешного действия; ответ Refresh,
	// начатого до него, отбрасывается.
	gen uint64
}

// New создаёт Gate для пользователя actorID и бота target.
func New(api VoteAPI, target, actorID string) (*Gate, error) {
	const op = "cooldown/New"

	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	return &Gate{
		api:    api,
		target: target,
		actor:  actorID,
		now:    time.Now,
		phase:  PhaseIdle,
	}, nil
}

// Actor — идентификатор пользователя, для которого создан Gate.
func (g *Gate) Actor() string { return g.actor }

// Refresh запрашивает {allowed, remaining_ms}. Для анонима запрос не отправляется.
// Ответ, пришедший после успешного Perform, не применяется.
func (g *Gate) Refresh(ctx context.Context) (View, error) {
	const op = "cooldown/Refresh"

	if g.actor == "" {
		return g.View(), fmt.Errorf("%s: %w", op, ErrLoginRequired)
	}

	g.mu.Lock()
	gen := g.gen
	g.mu.Unlock()

	st, err := g.api.VoteStatus(ctx, g.target)
	if err != nil {
		log.From(ctx).Warn("vote status fetch failed", "op", op, "bot_id", g.target, "err", err)
		return g.View(), fmt.Errorf("%s: %w", op, err)
	}

	remaining := st.RestTime
	if remaining < 0 {
		remaining = 0
	}

	g.mu.Lock()
	if gen != g.gen {
		g.mu.Unlock()
		log.From(ctx).Debug("stale vote status dropped", "op", op, "bot_id", g.target)
		return g.View(), nil
	}
	g.status = &Status{Allowed: st.CanVote, RemainingMs: remaining, FetchedAt: g.now()}
	g.mu.Unlock()

	return g.View(), nil
}

// Perform выполняет действие.
//
// Предусловие (проверяется до отправки запроса): статус получен, allowed=true,
// действие не выполняется. При успехе фаза становится done и сразу выполняется
// Refresh; сбой Refresh логируется и не отменяет успех. При сбое действия фаза
// возвращается в idle, статус не обновляется.
//
// Ошибки:
//   - ErrLoginRequired — аноним;
//   - ErrBusy — действие уже выполняется;
//   - ErrNotAllowed — allowed=false или статус ещё не получен;
//   - ошибки VoteAPI (обёрнутые).
func (g *Gate) Perform(ctx context.Context) (View, error) {
	const op = "cooldown/Perform"

	lg := log.From(ctx).With("op", op, "bot_id", g.target)

	if g.actor == "" {
		return g.View(), fmt.Errorf("%s: %w", op, ErrLoginRequired)
	}

	g.mu.Lock()
	switch {
	case g.inFlight:
		g.mu.Unlock()
		return g.View(), fmt.Errorf("%s: %w", op, ErrBusy)
	case g.status == nil || !g.status.Allowed:
		g.mu.Unlock()
		return g.View(), fmt.Errorf("%s: %w", op, ErrNotAllowed)
	}
	g.inFlight = true
	g.phase = PhasePending
	g.mu.Unlock()

	if err := g.api.Vote(ctx, g.target, g.actor); err != nil {
		g.mu.Lock()
		g.inFlight = false
		g.phase = PhaseIdle
		g.mu.Unlock()

		lg.Warn("vote failed", "err", err)
		return g.View(), fmt.Errorf("%s: %w", op, err)
	}

	g.mu.Lock()
	g.inFlight = false
	g.phase = PhaseDone
	g.gen++
	g.mu.Unlock()

	lg.Info("vote accepted")

	view, err := g.Refresh(ctx)
	if err != nil {
		lg.Warn("status refresh after vote failed", "err", err)
	}

	return view, nil
}

// View — текущая модель отображения.
func (g *Gate) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := View{
		Target:        g.target,
		RequiresLogin: g.actor == "",
		Phase:         g.phase,
		Done:          g.phase == PhaseDone,
		Busy:          g.inFlight,
	}

	if g.status != nil {
		v.Fetched = true
		v.Allowed = g.status.Allowed
		v.RemainingMs = g.status.RemainingMs
		v.RemainingHours = RemainingHours(g.status.RemainingMs)
		if !g.status.Allowed {
			v.Countdown = Countdown(g.status.RemainingMs)
		}
	}

	return v
}

// RemainingHours — floor(ms / 1000 / 3600).
func RemainingHours(ms int64) int64 {
	if ms <= 0 {
		return 0
	}

	return ms / 1000 / 3600
}

// Countdown — человекочитаемый остаток: часы, либо минуты если меньше часа.
func Countdown(ms int64) string {
	switch {
	case ms <= 0:
		return ""
	case ms < int64(time.Minute/time.Millisecond):
		return "less than a minute"
	}

	if h := RemainingHours(ms); h > 0 {
		return plural(h, "hour")
	}

	return plural(ms/int64(time.Minute/time.Millisecond), "minute")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}

	return fmt.Sprintf("%d %ss", n, unit)
}
