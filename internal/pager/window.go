package pager

import (
	"context"
	"fmt"
)

// Intn — источник случайных чисел (math/rand.Rand и аналоги).
type Intn interface {
	Intn(n int) int
}

// RandomWindow выбирает случайный непрерывный полуинтервал длины size внутри [0, total).
// Начало выбирается из [0, total-size); если total <= size, возвращается [0, total).
func RandomWindow(total, size int, rnd Intn) (start, end int) {
	if total <= 0 || size <= 0 {
		return 0, 0
	}
	if total <= size {
		return 0, total
	}

	start = rnd.Intn(total - size)

	return start, start + size
}

// Window загружает случайное окно из size элементов коллекции.
func Window[T any](ctx context.Context, src Source[T], size int, rnd Intn) ([]T, error) {
	const op = "pager/Window"

	total, err := src.Total(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: total: %w", op, err)
	}

	start, end := RandomWindow(total, size, rnd)
	if start == end {
		return []T{}, nil
	}

	items, err := src.Range(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: range: %w", op, err)
	}

	return items, nil
}
