package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
)

// Me — текущий пользователь по токену.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.do(ctx, "users.me", http.MethodGet, "/api/users/@me", nil, nil, &out)

	return out, err
}

// User — публичный профиль.
func (c *Client) User(ctx context.Context, id string) (models.User, error) {
	var out models.User
	err := c.do(ctx, "users.get", http.MethodGet, "/api/users/"+url.PathEscape(id), nil, nil, &out)

	return out, err
}

// UpdateUser частично обновляет текущего пользователя.
func (c *Client) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	return c.do(ctx, "users.update", http.MethodPatch, "/api/users", nil, patch.Body(), nil)
}
