package thread

import (
	"math"
	"sort"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
)

// ItemView — отзыв с состоянием и правами текущего пользователя.
type ItemView struct {
	models.Feedback
	Mode           Mode `json:"mode"`
	Busy           bool `json:"busy"`
	CanEdit        bool `json:"can_edit"`
	CanDelete      bool `json:"can_delete"`
	CanReply       bool `json:"can_reply"`
	CanEditReply   bool `json:"can_edit_reply"`
	CanDeleteReply bool `json:"can_delete_reply"`
}

// PageView — страница отзывов, новые сверху.
type PageView struct {
	Items        []ItemView `json:"items"`
	Page         int        `json:"page"`
	Pages        int        `json:"pages"`
	Total        int        `json:"total"`
	AverageStars int        `json:"average_stars"`
	CanSubmit    bool       `json:"can_submit"`
	DefaultStars int        `json:"default_stars"`
}

func (c *Collection) viewLocked(it *item) ItemView {
	author := c.isAuthor(it)
	owner := c.isOwner()
	hasReply := it.fb.HasReply()

	return ItemView{
		Feedback:       it.fb,
		Mode:           it.mode,
		Busy:           it.busy,
		CanEdit:        author,
		CanDelete:      author,
		CanReply:       owner && !hasReply,
		CanEditReply:   owner && hasReply,
		CanDeleteReply: owner && hasReply,
	}
}

// Item возвращает элемент по ключу автора.
func (c *Collection) Item(key string) (ItemView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.byKey[key]
	if !ok {
		return ItemView{}, false
	}

	return c.viewLocked(it), true
}

// Page возвращает n-ю страницу (с 1) из отсортированных по дате отзывов.
// n вне диапазона приводится к ближайшей существующей странице.
func (c *Collection) Page(n int) PageView {
	c.mu.Lock()
	defer c.mu.Unlock()

	sorted := make([]*item, len(c.items))
	copy(sorted, c.items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].fb.PostedAt.After(sorted[j].fb.PostedAt)
	})

	pages := (len(sorted) + c.pageSize - 1) / c.pageSize
	if pages == 0 {
		pages = 1
	}
	if n < 1 {
		n = 1
	}
	if n > pages {
		n = pages
	}

	start := (n - 1) * c.pageSize
	end := start + c.pageSize
	if end > len(sorted) {
		end = len(sorted)
	}

	out := make([]ItemView, 0, end-start)
	for _, it := range sorted[start:end] {
		out = append(out, c.viewLocked(it))
	}

	_, reviewed := c.byKey[c.actorID]

	return PageView{
		Items:        out,
		Page:         n,
		Pages:        pages,
		Total:        len(sorted),
		AverageStars: c.averageLocked(),
		CanSubmit:    c.actorID != "" && !reviewed,
		DefaultStars: DefaultStars,
	}
}

// AverageStars — округлённое среднее оценок; 0 если отзывов нет.
func (c *Collection) AverageStars() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.averageLocked()
}

func (c *Collection) averageLocked() int {
	fbs := make([]models.Feedback, 0, len(c.items))
	for _, it := range c.items {
		fbs = append(fbs, it.fb)
	}

	return AverageStars(fbs)
}

// AverageStars — округлённое среднее оценок набора отзывов.
func AverageStars(fbs []models.Feedback) int {
	if len(fbs) == 0 {
		return 0
	}

	sum := 0
	for _, f := range fbs {
		sum += f.Stars
	}

	return int(math.Round(float64(sum) / float64(len(fbs))))
}
