package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
)

func feedbacksPath(botID string) string {
	return "/api/bots/" + url.PathEscape(botID) + "/feedbacks"
}

// Feedbacks возвращает все отзывы о боте.
func (c *Client) Feedbacks(ctx context.Context, botID string) ([]models.Feedback, error) {
	var out []models.Feedback
	if err := c.do(ctx, "feedbacks.list", http.MethodGet, feedbacksPath(botID), nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// CreateFeedback публикует отзыв текущего пользователя.
func (c *Client) CreateFeedback(ctx context.Context, botID string, in models.FeedbackInput) error {
	return c.do(ctx, "feedbacks.create", http.MethodPost, feedbacksPath(botID), nil, in, nil)
}

// EditFeedback изменяет отзыв текущего пользователя.
func (c *Client) EditFeedback(ctx context.Context, botID string, in models.FeedbackEdit) error {
	return c.do(ctx, "feedbacks.edit", http.MethodPatch, feedbacksPath(botID), nil, in, nil)
}

// DeleteFeedback удаляет отзыв текущего пользователя.
func (c *Client) DeleteFeedback(ctx context.Context, botID string) error {
	return c.do(ctx, "feedbacks.delete", http.MethodDelete, feedbacksPath(botID), nil, nil, nil)
}

// PatchReply создаёт, изменяет или удаляет (patch.Reply == nil) ответ владельца
// на отзыв автора authorID.
func (c *Client) PatchReply(ctx context.Context, botID, authorID string, patch models.ReplyPatch) error {
	path := feedbacksPath(botID) + "/" + url.PathEscape(authorID)

	return c.do(ctx, "feedbacks.reply", http.MethodPatch, path, nil, patch.Body(), nil)
}
