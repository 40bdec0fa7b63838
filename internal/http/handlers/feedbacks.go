package handlers

import (
	"context"
	"net/http"

	apierrors "github.com/ThisPythonJS/SimoWebsite/internal/errors"
	"github.com/ThisPythonJS/SimoWebsite/internal/thread"
)

type feedbackRequest struct {
	Content string `json:"content"`
	Stars   int    `json:"stars"`
}

type replyRequest struct {
	Content string `json:"content"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

// feedbackTarget — бот и ключ отзыва (id автора) из пути.
func feedbackTarget(r *http.Request) (botID, key string, err error) {
	if botID, err = pathID(r, "id"); err != nil {
		return "", "", err
	}
	if key, err = pathID(r, "author"); err != nil {
		return "", "", err
	}
	return botID, key, nil
}

// ListFeedbacks — страница отзывов (?page=, с 1), новые сверху.
func (h *Handlers) ListFeedbacks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := queryInt(r, "page", 1)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.threadFor(r.Context(), r, id, "")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c.Page(page))
}

// SubmitFeedback — новый отзыв текущего пользователя.
func (h *Handlers) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in feedbackRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.threadFor(r.Context(), r, id, "")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := c.Submit(r.Context(), in.Content, in.Stars); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, c.Page(1))
}

// SetFeedbackMode — переход отзыва в режим правки/ответа/просмотра.
func (h *Handlers) SetFeedbackMode(w http.ResponseWriter, r *http.Request) {
	id, key, err := feedbackTarget(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in modeRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	mode, err := thread.ParseMode(in.Mode)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.threadFor(r.Context(), r, id, "")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := c.SetMode(key, mode)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// EditFeedback — сохранение правки отзыва автором.
func (h *Handlers) EditFeedback(w http.ResponseWriter, r *http.Request) {
	id, key, err := feedbackTarget(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in feedbackRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.threadFor(r.Context(), r, id, "")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := c.SubmitEdit(r.Context(), key, in.Content, in.Stars)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// DeleteFeedback — удаление отзыва автором; в ответе первая страница после перечитывания.
func (h *Handlers) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, key, err := feedbackTarget(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.threadFor(r.Context(), r, id, "")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := c.DeleteParent(r.Context(), key); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c.Page(1))
}

// CreateReply — ответ владельца бота на отзыв.
func (h *Handlers) CreateReply(w http.ResponseWriter, r *http.Request) {
	h.replyMutation(w, r, http.StatusCreated, (*thread.Collection).SubmitReply)
}

// EditReply — правка ответа владельцем.
func (h *Handlers) EditReply(w http.ResponseWriter, r *http.Request) {
	h.replyMutation(w, r, http.StatusOK, (*thread.Collection).SubmitReplyEdit)
}

type replyFunc func(c *thread.Collection, ctx context.Context, key, content string) (thread.ItemView, error)

func (h *Handlers) replyMutation(w http.ResponseWriter, r *http.Request, status int, fn replyFunc) {
	id, key, err := feedbackTarget(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in replyRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.threadFor(r.Context(), r, id, "")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := fn(c, r.Context(), key, in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, status, view)
}

// DeleteReply — удаление ответа владельцем.
func (h *Handlers) DeleteReply(w http.ResponseWriter, r *http.Request) {
	id, key, err := feedbackTarget(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c, err := h.threadFor(r.Context(), r, id, "")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := c.DeleteReply(r.Context(), key); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	// После перезагрузки отзыва может уже не быть: тогда отдаём первую страницу.
	view, ok := c.Item(key)
	if !ok {
		writeJSON(w, http.StatusOK, c.Page(1))
		return
	}

	writeJSON(w, http.StatusOK, view)
}
