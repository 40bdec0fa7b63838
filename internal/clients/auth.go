package clients

import (
	"context"
	"net/http"
)

// Logout завершает удалённую сессию текущего токена.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "auth.logout", http.MethodGet, "/api/auth/logout", nil, nil, nil)
}
