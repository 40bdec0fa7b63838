// views — состояние компонентов страницы (загрузчик ботов, голосование,
// отзывы, уведомления, кабинет), привязанное к сессии посетителя.
//
// Состояние живёт, пока сессия обращается к сервису; после views.idle_ttl
// без обращений оно вычищается и при следующем запросе строится заново.
package views

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThisPythonJS/SimoWebsite/internal/cooldown"
	"github.com/ThisPythonJS/SimoWebsite/internal/inbox"
	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/internal/pager"
	"github.com/ThisPythonJS/SimoWebsite/internal/profile"
	"github.com/ThisPythonJS/SimoWebsite/internal/thread"
)

// Deps — удалённые API и размеры страниц для построения компонентов.
type Deps struct {
	Bots             pager.Source[models.Bot]
	Votes            cooldown.VoteAPI
	Feedbacks        thread.FeedbackAPI
	Notifications    inbox.NotificationAPI
	Profile          profile.ProfileAPI
	BotsPageSize     int
	FeedbackPageSize int
}

// Gauge — число активных наборов (prometheus.Gauge подходит).
type Gauge interface {
	Set(float64)
}

// Set — компоненты одной сессии.
type Set struct {
	deps Deps

	mu       sync.Mutex
	lastSeen time.Time
	bots     *pager.Loader[models.Bot]
	gates    map[string]*cooldown.Gate
	threads  map[string]*thread.Collection
	inbox    *inbox.Inbox
	profile  *profile.Editor
}

// Bots — загрузчик списка ботов.
func (s *Set) Bots() (*pager.Loader[models.Bot], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bots == nil {
		l, err := pager.New(s.deps.Bots, s.deps.BotsPageSize)
		if err != nil {
			return nil, fmt.Errorf("views/Bots: %w", err)
		}
		s.bots = l
	}

	return s.bots, nil
}

// Gate — голосование за бота botID от имени actor.
func (s *Set) Gate(botID, actor string) (*cooldown.Gate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.gates[botID]; ok && g.Actor() == actor {
		return g, nil
	}

	g, err := cooldown.New(s.deps.Votes, botID, actor)
	if err != nil {
		return nil, fmt.Errorf("views/Gate: %w", err)
	}
	s.gates[botID] = g

	return g, nil
}

// Thread — отзывы о боте botID глазами actor. fresh=true — коллекция создана
// только что и ещё не загружена.
func (s *Set) Thread(botID, ownerID, actor string) (c *thread.Collection, fresh bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.threads[botID]; ok && c.Actor() == actor {
		return c, false, nil
	}

	c, err = thread.New(s.deps.Feedbacks, thread.Options{
		BotID:    botID,
		OwnerID:  ownerID,
		ActorID:  actor,
		PageSize: s.deps.FeedbackPageSize,
	})
	if err != nil {
		return nil, false, fmt.Errorf("views/Thread: %w", err)
	}
	s.threads[botID] = c

	return c, true, nil
}

// LookupThread — уже созданная коллекция отзывов о botID для actor.
func (s *Set) LookupThread(botID, actor string) (*thread.Collection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.threads[botID]
	if !ok || c.Actor() != actor {
		return nil, false
	}

	return c, true
}

// DropThread забывает коллекцию отзывов (например, если бот исчез).
func (s *Set) DropThread(botID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.threads, botID)
}

// Inbox — уведомления actor.
func (s *Set) Inbox(actor string) *inbox.Inbox {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inbox == nil || s.inbox.Actor() != actor {
		s.inbox = inbox.New(s.deps.Notifications, actor)
	}

	return s.inbox
}

// Profile — кабинет actor.
func (s *Set) Profile(actor string) *profile.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil || s.profile.Actor() != actor {
		s.profile = profile.New(s.deps.Profile, actor)
	}

	return s.profile
}

func (s *Set) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Set) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return now.Sub(s.lastSeen)
}

// Registry — наборы компонентов по идентификатору сессии.
type Registry struct {
	deps    Deps
	idleTTL time.Duration
	gauge   Gauge
	now     func() time.Time

	mu   sync.Mutex
	sets map[string]*Set
}

// NewRegistry создаёт пустой реестр. gauge может быть nil.
func NewRegistry(deps Deps, idleTTL time.Duration, gauge Gauge) *Registry {
	return &Registry{
		deps:    deps,
		idleTTL: idleTTL,
		gauge:   gauge,
		now:     time.Now,
		sets:    map[string]*Set{},
	}
}

// For возвращает набор сессии sid, создавая его при первом обращении.
func (r *Registry) For(sid string) *Set {
	now := r.now()

	r.mu.Lock()
	s, ok := r.sets[sid]
	if !ok {
		s = &Set{
			deps:    r.deps,
			gates:   map[string]*cooldown.Gate{},
			threads: map[string]*thread.Collection{},
		}
		r.sets[sid] = s
		r.reportLocked()
	}
	r.mu.Unlock()

	s.touch(now)

	return s
}

// Drop удаляет набор сессии sid (выход, смена сессии).
func (r *Registry) Drop(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sets, sid)
	r.reportLocked()
}

// Len — число активных наборов.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sets)
}

// Sweep удаляет наборы без обращений дольше idleTTL и возвращает их число.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for sid, s := range r.sets {
		if s.idleSince(now) >= r.idleTTL {
			delete(r.sets, sid)
			n++
		}
	}
	r.reportLocked()

	return n
}

func (r *Registry) reportLocked() {
	if r.gauge != nil {
		r.gauge.Set(float64(len(r.sets)))
	}
}

// Run периодически вызывает Sweep до отмены ctx.
func (r *Registry) Run(ctx context.Context, every time.Duration, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}

	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				log.Debug("views_evicted", slog.Int("count", n), slog.Int("active", r.Len()))
			}
		}
	}
}
