// inbox — уведомления пользователя: отметка о прочтении, удаление по одному и всех сразу.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

var (
	ErrLoginRequired   = errors.New("login required")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("notification not found")
	ErrBusy            = errors.New("operation in progress")
)

// NotificationAPI — часть удалённого API, нужная Inbox.
type NotificationAPI interface {
	Me(ctx context.Context) (models.User, error)
	Notifications(ctx context.Context) (models.Notifications, error)
	DeleteNotification(ctx context.Context, id string) error
	ClearNotifications(ctx context.Context) error
	UpdateUser(ctx context.Context, patch models.UserPatch) error
}

// Entry — уведомление с идентификатором и флагом удаления.
type Entry struct {
	ID       string `json:"id"`
	TypeName string `json:"type_name"`
	models.Notification
	Deleting bool `json:"deleting"`
}

// View — модель меню уведомлений. Unread горит, пока меню не открыто,
// даже при пустом списке.
type View struct {
	Entries  []Entry `json:"entries"`
	Viewed   bool    `json:"viewed"`
	Unread   bool    `json:"unread"`
	Clearing bool    `json:"clearing"`
	Loaded   bool    `json:"loaded"`
}

// Inbox — уведомления одного пользователя.
type Inbox struct {
	api   NotificationAPI
	actor string

	mu       sync.Mutex
	entries  map[string]models.Notification
	viewed   bool
	loaded   bool
	deleting map[string]bool
	clearing bool
	opening  bool
}

// New создаёт Inbox для пользователя actorID.
func New(api NotificationAPI, actorID string) *Inbox {
	return &Inbox{
		api:      api,
		actor:    actorID,
		entries:  map[string]models.Notification{},
		deleting: map[string]bool{},
	}
}

// Actor — владелец уведомлений.
func (b *Inbox) Actor() string { return b.actor }

// Load перечитывает признак прочтения и уведомления.
func (b *Inbox) Load(ctx context.Context) (View, error) {
	const op = "inbox/Load"

	if b.actor == "" {
		return b.View(), fmt.Errorf("%s: %w", op, ErrLoginRequired)
	}

	me, err := b.api.Me(ctx)
	if err != nil {
		log.From(ctx).Warn("user fetch failed", "op", op, "err", err)
		return b.View(), fmt.Errorf("%s: %w", op, err)
	}

	if err := b.reload(ctx, op); err != nil {
		return b.View(), err
	}

	b.mu.Lock()
	b.viewed = me.NotificationsViewed
	b.mu.Unlock()

	return b.View(), nil
}

func (b *Inbox) reload(ctx context.Context, op string) error {
	ns, err := b.api.Notifications(ctx)
	if err != nil {
		log.From(ctx).Warn("notifications fetch failed", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = make(map[string]models.Notification, len(ns))
	for id, n := range ns {
		b.entries[id] = n
	}
	b.loaded = true

	return nil
}

// Open отмечает уведомления прочитанными. Запрос уходит только если они ещё не прочитаны.
func (b *Inbox) Open(ctx context.Context) (View, error) {
	const op = "inbox/Open"

	if b.actor == "" {
		return b.View(), fmt.Errorf("%s: %w", op, ErrLoginRequired)
	}

	b.mu.Lock()
	if b.viewed || b.opening {
		b.mu.Unlock()
		return b.View(), nil
	}
	b.opening = true
	b.mu.Unlock()

	viewed := true
	err := b.api.UpdateUser(ctx, models.UserPatch{NotificationsViewed: &viewed})

	b.mu.Lock()
	b.opening = false
	if err == nil {
		b.viewed = true
	}
	b.mu.Unlock()

	if err != nil {
		log.From(ctx).Warn("mark viewed failed", "op", op, "err", err)
		return b.View(), fmt.Errorf("%s: %w", op, err)
	}

	return b.View(), nil
}

// Delete удаляет одно уведомление и перечитывает список.
func (b *Inbox) Delete(ctx context.Context, id string) (View, error) {
	const op = "inbox/Delete"

	id = strings.TrimSpace(id)
	switch {
	case b.actor == "":
		return b.View(), fmt.Errorf("%s: %w", op, ErrLoginRequired)
	case id == "":
		return b.View(), fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	b.mu.Lock()
	if _, ok := b.entries[id]; b.loaded && !ok {
		b.mu.Unlock()
		return b.View(), fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if b.deleting[id] || b.clearing {
		b.mu.Unlock()
		return b.View(), fmt.Errorf("%s: %w", op, ErrBusy)
	}
	b.deleting[id] = true
	b.mu.Unlock()

	err := b.api.DeleteNotification(ctx, id)

	b.mu.Lock()
	delete(b.deleting, id)
	b.mu.Unlock()

	if err != nil {
		log.From(ctx).Warn("notification delete failed", "op", op, "id", id, "err", err)
		return b.View(), fmt.Errorf("%s: %w", op, err)
	}

	if err := b.reload(ctx, op); err != nil {
		return b.View(), err
	}

	return b.View(), nil
}

// Clear удаляет все уведомления и перечитывает список.
func (b *Inbox) Clear(ctx context.Context) (View, error) {
	const op = "inbox/Clear"

	if b.actor == "" {
		return b.View(), fmt.Errorf("%s: %w", op, ErrLoginRequired)
	}

	b.mu.Lock()
	if b.clearing {
		b.mu.Unlock()
		return b.View(), fmt.Errorf("%s: %w", op, ErrBusy)
	}
	b.clearing = true
	b.mu.Unlock()

	err := b.api.ClearNotifications(ctx)

	b.mu.Lock()
	b.clearing = false
	b.mu.Unlock()

	if err != nil {
		log.From(ctx).Warn("notifications clear failed", "op", op, "err", err)
		return b.View(), fmt.Errorf("%s: %w", op, err)
	}

	if err := b.reload(ctx, op); err != nil {
		return b.View(), err
	}

	return b.View(), nil
}

// View — снимок: новые уведомления сверху, при равной дате — по id.
func (b *Inbox) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := make([]Entry, 0, len(b.entries))
	for id, n := range b.entries {
		if !n.Type.Valid() {
			n.Type = models.NotificationPlain
		}
		if n.Type != models.NotificationInfoWithImage {
			n.URL = ""
		}
		entries = append(entries, Entry{ID: id, TypeName: n.Type.String(), Notification: n, Deleting: b.deleting[id]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].SentAt.Equal(entries[j].SentAt) {
			return entries[i].SentAt.After(entries[j].SentAt)
		}
		return entries[i].ID < entries[j].ID
	})

	return View{
		Entries:  entries,
		Viewed:   b.viewed,
		Unread:   b.loaded && !b.viewed,
		Clearing: b.clearing,
		Loaded:   b.loaded,
	}
}
