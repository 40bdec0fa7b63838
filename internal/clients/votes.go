package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
)

// VoteStatus — может ли текущий пользователь голосовать за бота.
func (c *Client) VoteStatus(ctx context.Context, botID string) (models.VoteStatus, error) {
	var out models.VoteStatus
	err := c.do(ctx, "votes.status", http.MethodGet, "/api/vote-status/"+url.PathEscape(botID), nil, nil, &out)

	return out, err
}

// Vote отдаёт голос пользователя userID за бота.
func (c *Client) Vote(ctx context.Context, botID, userID string) error {
	body := map[string]string{"user": userID}

	return c.do(ctx, "votes.create", http.MethodPost, "/api/bots/"+url.PathEscape(botID)+"/votes", nil, body, nil)
}
