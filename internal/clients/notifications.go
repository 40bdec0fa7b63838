package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
)

const notificationsPath = "/api/users/notifications"

// Notifications возвращает уведомления текущего пользователя (id -> уведомление).
func (c *Client) Notifications(ctx context.Context) (models.Notifications, error) {
	out := models.Notifications{}
	if err := c.do(ctx, "notifications.list", http.MethodGet, notificationsPath, nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteNotification удаляет одно уведомление.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, "notifications.delete", http.MethodDelete, notificationsPath+"/"+url.PathEscape(id), nil, nil, nil)
}

// ClearNotifications удаляет все уведомления текущего пользователя.
func (c *Client) ClearNotifications(ctx context.Context) error {
	return c.do(ctx, "notifications.clear", http.MethodDelete, notificationsPath+"/bulk-delete", nil, nil, nil)
}
