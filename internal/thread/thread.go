// thread — отзывы о боте с единственным ответом владельца на каждый отзыв.
//
// Права асимметричны: отзыв меняет и удаляет только его автор, ответ пишет,
// меняет и удаляет только владелец бота. После удаления коллекция целиком
// перечитывается с удалённой стороны, локальных правок списка нет.
package thread

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

const (
	// MaxContentLen — максимальная длина текста отзыва или ответа в символах.
	MaxContentLen = 500
	MinStars      = 1
	MaxStars      = 5
	// DefaultStars — оценка по умолчанию в форме нового отзыва.
	DefaultStars = 1
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("feedback not found")
	ErrLoginRequired     = errors.New("login required")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrBusy              = errors.New("item busy")
	// ErrReplyExists — ответ уже есть; создать второй нельзя.
	ErrReplyExists = errors.New("reply already exists")
	// ErrNoReply — редактировать/удалять нечего.
	ErrNoReply = errors.New("no reply")
	// ErrAlreadyReviewed — у пользователя уже есть отзыв об этом боте.
	ErrAlreadyReviewed = errors.New("already reviewed")
)

// FeedbackAPI — часть удалённого API, нужная Collection.
type FeedbackAPI interface {
	Feedbacks(ctx context.Context, botID string) ([]models.Feedback, error)
	CreateFeedback(ctx context.Context, botID string, in models.FeedbackInput) error
	EditFeedback(ctx context.Context, botID string, in models.FeedbackEdit) error
	DeleteFeedback(ctx context.Context, botID string) error
	PatchReply(ctx context.Context, botID, authorID string, patch models.ReplyPatch) error
}

// Mode — состояние элемента.
type Mode string

const (
	ModeViewing        Mode = "viewing"
	ModeEditingParent  Mode = "editing_parent"
	ModeReplyComposing Mode = "reply_composing"
	ModeReplyEditing   Mode = "reply_editing"
)

// ParseMode разбирает имя состояния.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeViewing, ModeEditingParent, ModeReplyComposing, ModeReplyEditing:
		return m, nil
	default:
		return "", fmt.Errorf("thread/ParseMode: %w: unknown mode %q", ErrInvalidArgument, s)
	}
}

type item struct {
	fb   models.Feedback
	mode Mode
	busy bool
}

// Collection — отзывы одного бота глазами одного пользователя.
type Collection struct {
	api      FeedbackAPI
	botID    string
	ownerID  string
	actorID  string
	pageSize int
	now      func() time.Time

	mu     sync.Mutex
	items  []*item
	byKey  map[string]*item
	loaded bool
}

// Options — параметры Collection.
type Options struct {
	BotID    string
	OwnerID  string
	ActorID  string
	PageSize int
}

// New создаёт пустую коллекцию; данные появляются после Load.
func New(api FeedbackAPI, opts Options) (*Collection, error) {
	const op = "thread/New"

	if strings.TrimSpace(opts.BotID) == "" || opts.PageSize <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	return &Collection{
		api:      api,
		botID:    opts.BotID,
		ownerID:  opts.OwnerID,
		actorID:  opts.ActorID,
		pageSize: opts.PageSize,
		now:      time.Now,
		byKey:    map[string]*item{},
	}, nil
}

// Actor — пользователь, для которого собрана коллекция.
func (c *Collection) Actor() string { return c.actorID }

// Loaded — была ли успешная загрузка.
func (c *Collection) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loaded
}

// Load перечитывает все отзывы. Состояние элементов, оставшихся в списке,
// сохраняется, если оно всё ещё допустимо.
func (c *Collection) Load(ctx context.Context) error {
	const op = "thread/Load"

	list, err := c.api.Feedbacks(ctx, c.botID)
	if err != nil {
		log.From(ctx).Warn("feedbacks fetch failed", "op", op, "bot_id", c.botID, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]*item, 0, len(list))
	byKey := make(map[string]*item, len(list))
	for _, fb := range list {
		// Элемент переиспользуется: на него может ссылаться незавершённая мутация.
		it, ok := c.byKey[fb.Key()]
		if !ok {
			it = &item{mode: ModeViewing}
		}
		it.fb = fb
		if c.allowedLocked(it, it.mode) != nil {
			it.mode = ModeViewing
		}
		items = append(items, it)
		byKey[fb.Key()] = it
	}

	c.items, c.byKey, c.loaded = items, byKey, true

	return nil
}

// SetMode переводит элемент в состояние mode.
// Из viewing можно перейти в любое разрешённое роли состояние, в viewing — из любого.
func (c *Collection) SetMode(key string, mode Mode) (ItemView, error) {
	const op = "thread/SetMode"

	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.byKey[key]
	if !ok {
		return ItemView{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if it.busy {
		return c.viewLocked(it), fmt.Errorf("%s: %w", op, ErrBusy)
	}
	if mode != ModeViewing && it.mode != ModeViewing && it.mode != mode {
		return c.viewLocked(it), fmt.Errorf("%s: %w", op, ErrInvalidTransition)
	}
	if err := c.allowedLocked(it, mode); err != nil {
		return c.viewLocked(it), fmt.Errorf("%s: %w", op, err)
	}

	it.mode = mode

	return c.viewLocked(it), nil
}

// allowedLocked — может ли текущий пользователь держать элемент в состоянии mode.
func (c *Collection) allowedLocked(it *item, mode Mode) error {
	switch mode {
	case ModeViewing:
		return nil
	case ModeEditingParent:
		if !c.isAuthor(it) {
			return c.denied()
		}
		return nil
	case ModeReplyComposing:
		if !c.isOwner() {
			return c.denied()
		}
		if it.fb.HasReply() {
			return ErrReplyExists
		}
		return nil
	case ModeReplyEditing:
		if !c.isOwner() {
			return c.denied()
		}
		if !it.fb.HasReply() {
			return ErrNoReply
		}
		return nil
	default:
		return ErrInvalidArgument
	}
}

func (c *Collection) denied() error {
	if c.actorID == "" {
		return ErrLoginRequired
	}

	return ErrPermissionDenied
}

func (c *Collection) isAuthor(it *item) bool {
	return c.actorID != "" && it.fb.Key() == c.actorID
}

func (c *Collection) isOwner() bool {
	return c.actorID != "" && c.actorID == c.ownerID
}

// ClampStars приводит оценку к [1, 5].
func ClampStars(n int) int {
	switch {
	case n < MinStars:
		return MinStars
	case n > MaxStars:
		return MaxStars
	default:
		return n
	}
}

// ValidateContent — непустой текст не длиннее MaxContentLen символов.
func ValidateContent(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: empty content", ErrInvalidArgument)
	}
	if utf8.RuneCountInString(s) > MaxContentLen {
		return fmt.Errorf("%w: content longer than %d characters", ErrInvalidArgument, MaxContentLen)
	}

	return nil
}
