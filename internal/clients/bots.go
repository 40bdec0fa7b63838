package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/internal/pager"
)

// BotsRange возвращает ботов из полуинтервала [start, end).
func (c *Client) BotsRange(ctx context.Context, start, end int) ([]models.Bot, error) {
	q := url.Values{}
	q.Set("start_at", strconv.Itoa(start))
	q.Set("end_at", strconv.Itoa(end))

	var out []models.Bot
	if err := c.do(ctx, "bots.range", http.MethodGet, "/api/bots", q, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// BotSource — каталог как постраничный источник: страницы из /api/bots,
// общее число из /api/status.
func (c *Client) BotSource() pager.Funcs[models.Bot] {
	return pager.Funcs[models.Bot]{
		RangeFunc: c.BotsRange,
		TotalFunc: func(ctx context.Context) (int, error) {
			st, err := c.Status(ctx)
			if err != nil {
				return 0, err
			}
			return st.Bots, nil
		},
	}
}

// Status возвращает сводку каталога (общее число ботов и т.п.).
func (c *Client) Status(ctx context.Context) (models.Status, error) {
	var out models.Status
	err := c.do(ctx, "status.get", http.MethodGet, "/api/status", nil, nil, &out)

	return out, err
}

// OwnBots — боты текущего пользователя (по токену).
func (c *Client) OwnBots(ctx context.Context) ([]models.Bot, error) {
	var out []models.Bot
	if err := c.do(ctx, "bots.own", http.MethodGet, "/api/bots", nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Bot возвращает бота по id.
func (c *Client) Bot(ctx context.Context, id string) (models.Bot, error) {
	var out models.Bot
	err := c.do(ctx, "bots.get", http.MethodGet, "/api/bots/"+url.PathEscape(id), nil, nil, &out)

	return out, err
}

// CreateBot отправляет заявку на размещение бота.
func (c *Client) CreateBot(ctx context.Context, id string, in models.BotInput) (models.Bot, error) {
	var out models.Bot
	err := c.do(ctx, "bots.create", http.MethodPost, "/api/bots/"+url.PathEscape(id), nil, in, &out)

	return out, err
}

// UpdateBot изменяет карточку бота.
func (c *Client) UpdateBot(ctx context.Context, id string, in models.BotInput) (models.Bot, error) {
	var out models.Bot
	err := c.do(ctx, "bots.update", http.MethodPatch, "/api/bots/"+url.PathEscape(id), nil, in, &out)

	return out, err
}

// DeleteBot удаляет бота.
func (c *Client) DeleteBot(ctx context.Context, id string) error {
	return c.do(ctx, "bots.delete", http.MethodDelete, "/api/bots/"+url.PathEscape(id), nil, nil, nil)
}
