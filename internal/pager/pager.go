// pager — инкрементальная загрузка удалённой коллекции страницами
// по полуинтервалу индексов [start, end).
package pager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

var (
	// ErrBusy — предыдущая загрузка ещё не завершилась.
	ErrBusy = errors.New("load already in progress")
	// ErrExhausted — коллекция загружена целиком, запрос не отправляется.
	ErrExhausted = errors.New("collection exhausted")
	// ErrInvalidPageSize — размер страницы должен быть положительным.
	ErrInvalidPageSize = errors.New("invalid page size")
)

// Source — удалённая коллекция.
type Source[T any] interface {
	// Range возвращает элементы [start, end) в порядке, заданном удалённой стороной.
	Range(ctx context.Context, start, end int) ([]T, error)
	// Total — общее число элементов по данным удалённой стороны.
	Total(ctx context.Context) (int, error)
}

// Funcs адаптирует пару функций к Source.
type Funcs[T any] struct {
	RangeFunc func(ctx context.Context, start, end int) ([]T, error)
	TotalFunc func(ctx context.Context) (int, error)
}

func (f Funcs[T]) Range(ctx context.Context, start, end int) ([]T, error) {
	return f.RangeFunc(ctx, start, end)
}

func (f Funcs[T]) Total(ctx context.Context) (int, error) { return f.TotalFunc(ctx) }

// State — снимок состояния загрузчика.
type State[T any] struct {
	Items     []T  `json:"items"`
	NextStart int  `json:"next_start"`
	HasMore   bool `json:"has_more"`
	Loading   bool `json:"loading"`
	Total     int  `json:"total"`
}

// Loader накапливает коллекцию постранично.
//
// Инварианты:
//   - len(items) не убывает между Reset;
//   - hasMore == len(items) < total после последней успешной загрузки;
//   - loading истинен только между отправкой запроса и его завершением.
//
// Мьютекс не удерживается во время сетевых вызовов.
type Loader[T any] struct {
	src      Source[T]
	pageSize int

	mu        sync.Mutex
	items     []T
	nextStart int
	total     int
	hasMore   bool
	loading   bool
	gen       uint64
}

// New создаёт загрузчик. До первой загрузки hasMore истинен: total ещё неизвестен.
func New[T any](src Source[T], pageSize int) (*Loader[T], error) {
	const op = "pager/New"

	if pageSize <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPageSize)
	}

	return &Loader[T]{
		src:      src,
		pageSize: pageSize,
		items:    make([]T, 0, pageSize),
		hasMore:  true,
	}, nil
}

// PageSize — размер страницы.
func (l *Loader[T]) PageSize() int { return l.pageSize }

// LoadNext загружает следующую страницу [nextStart, nextStart+pageSize).
//
// Шаги строго последовательны: страница, затем total, затем hasMore.
// Состояние меняется атомарно только после успеха обоих запросов: при любой
// ошибке items не трогаются, loading сбрасывается, ошибка возвращается.
// Результат загрузки, начатой до Reset, отбрасывается.
//
// Ошибки:
//   - ErrBusy — загрузка уже идёт;
//   - ErrExhausted — больше нечего загружать (запрос не отправляется);
//   - ошибки Source (обёрнутые).
func (l *Loader[T]) LoadNext(ctx context.Context) (State[T], error) {
	const op = "pager/LoadNext"

	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return State[T]{}, fmt.Errorf("%s: %w", op, ErrBusy)
	}
	if !l.hasMore {
		st := l.snapshotLocked()
		l.mu.Unlock()
		return st, fmt.Errorf("%s: %w", op, ErrExhausted)
	}
	l.loading = true
	start, gen := l.nextStart, l.gen
	l.mu.Unlock()

	lg := log.From(ctx).With("op", op, "start", start, "end", start+l.pageSize)

	page, err := l.src.Range(ctx, start, start+l.pageSize)
	if err != nil {
		lg.Warn("range fetch failed", "err", err)
		return l.fail(gen), fmt.Errorf("%s: range: %w", op, err)
	}

	total, err := l.src.Total(ctx)
	if err != nil {
		lg.Warn("total fetch failed", "err", err)
		return l.fail(gen), fmt.Errorf("%s: total: %w", op, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		lg.Debug("stale page dropped")
		return l.snapshotLocked(), nil
	}

	l.items = append(l.items, page...)
	l.nextStart = start + l.pageSize
	l.total = total
	l.hasMore = len(l.items) < total
	l.loading = false

	lg.Debug("page loaded", "got", len(page), "items", len(l.items), "total", total, "has_more", l.hasMore)

	return l.snapshotLocked(), nil
}

func (l *Loader[T]) fail(gen uint64) State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen == l.gen {
		l.loading = false
	}

	return l.snapshotLocked()
}

// State возвращает снимок состояния. Items — копия.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.snapshotLocked()
}

// Loaded — была ли хотя бы одна успешная загрузка.
func (l *Loader[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.nextStart > 0
}

// Reset возвращает загрузчик в начальное состояние (повторный запрос коллекции).
// Незавершённая загрузка становится устаревшей.
func (l *Loader[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gen++
	l.items = make([]T, 0, l.pageSize)
	l.nextStart = 0
	l.total = 0
	l.hasMore = true
	l.loading = false
}

func (l *Loader[T]) snapshotLocked() State[T] {
	items := make([]T, len(l.items))
	copy(items, l.items)

	return State[T]{
		Items:     items,
		NextStart: l.nextStart,
		HasMore:   l.hasMore,
		Loading:   l.loading,
		Total:     l.total,
	}
}
