package handlers

import (
	"net/http"

	apierrors "github.com/ThisPythonJS/SimoWebsite/internal/errors"
)

// ListNotifications — меню уведомлений (каждый раз свежий список).
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	view, err := h.viewSet(r).Inbox(actor(r)).Load(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// OpenNotifications — меню открыто: уведомления отмечаются просмотренными.
func (h *Handlers) OpenNotifications(w http.ResponseWriter, r *http.Request) {
	view, err := h.viewSet(r).Inbox(actor(r)).Open(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// DeleteNotification — удаление одного уведомления.
func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := h.viewSet(r).Inbox(actor(r)).Delete(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// ClearNotifications — удаление всех уведомлений.
func (h *Handlers) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	view, err := h.viewSet(r).Inbox(actor(r)).Clear(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
