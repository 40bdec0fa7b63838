package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
)

// Teams — команды текущего пользователя.
func (c *Client) Teams(ctx context.Context) ([]models.Team, error) {
	var out []models.Team
	if err := c.do(ctx, "teams.list", http.MethodGet, "/api/teams/@all", nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Team возвращает команду по id.
func (c *Client) Team(ctx context.Context, id string) (models.Team, error) {
	var out models.Team
	err := c.do(ctx, "teams.get", http.MethodGet, "/api/teams/"+url.PathEscape(id), nil, nil, &out)

	return out, err
}

// TeamBots — боты команды.
func (c *Client) TeamBots(ctx context.Context, id string) ([]models.Bot, error) {
	var out []models.Bot
	if err := c.do(ctx, "teams.bots", http.MethodGet, "/api/teams/"+url.PathEscape(id)+"/bots", nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}
