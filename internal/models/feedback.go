package models

import "time"

// Reply — ответ владельца бота на отзыв. Не более одного на отзыв.
type Reply struct {
	Content  string    `json:"content"`
	PostedAt time.Time `json:"posted_at"`
	Edited   bool      `json:"edited,omitempty"`
}

// Feedback — отзыв пользователя о боте.
// Отзыв однозначно определяется парой (TargetBot, AuthorID).
type Feedback struct {
	ID        string     `json:"id,omitempty"`
	AuthorID  string     `json:"author_id"`
	Author    *Developer `json:"author,omitempty"`
	TargetBot string     `json:"target_bot"`
	Content   string     `json:"content"`
	Stars     int        `json:"stars"`
	PostedAt  time.Time  `json:"posted_at"`
	Edited    bool       `json:"edited,omitempty"`
	Reply     *Reply     `json:"reply_message,omitempty"`
}

// Key — ключ отзыва внутри бота.
func (f Feedback) Key() string {
	if f.AuthorID != "" {
		return f.AuthorID
	}

	if f.Author != nil {
		return f.Author.ID
	}

	return f.ID
}

// HasReply — есть ли непустой ответ владельца.
func (f Feedback) HasReply() bool {
	return f.Reply != nil && f.Reply.Content != ""
}

// FeedbackInput — тело POST /api/bots/{botID}/feedbacks.
type FeedbackInput struct {
	Stars     int       `json:"stars"`
	PostedAt  time.Time `json:"posted_at"`
	Content   string    `json:"content"`
	TargetBot string    `json:"target_bot"`
	AuthorID  string    `json:"author_id"`
}

// FeedbackEdit — тело PATCH /api/bots/{botID}/feedbacks от автора отзыва.
type FeedbackEdit struct {
	Content string `json:"content"`
	Stars   int    `json:"stars"`
	Edited  bool   `json:"edited"`
}

// ReplyPatch — тело PATCH /api/bots/{botID}/feedbacks/{authorID} от владельца бота.
// Reply == nil означает удаление ответа (на провод уходит пустой объект).
type ReplyPatch struct {
	Reply *Reply
}

// Body собирает JSON-тело запроса.
func (p ReplyPatch) Body() map[string]any {
	if p.Reply == nil {
		return map[string]any{"reply_message": map[string]any{}}
	}

	msg := map[string]any{"content": p.Reply.Content}
	if !p.Reply.PostedAt.IsZero() {
		msg["posted_at"] = p.Reply.PostedAt
	}

	if p.Reply.Edited {
		msg["edited"] = true
	}

	return map[string]any{"reply_message": msg}
}
