package handlers

import (
	"errors"
	"net/http"

	"github.com/ThisPythonJS/SimoWebsite/internal/cooldown"
	apierrors "github.com/ThisPythonJS/SimoWebsite/internal/errors"
)

// VoteStatus — состояние кнопки голосования (свежий статус кулдауна).
// Анониму отдаётся view с requires_login без запроса к API.
func (h *Handlers) VoteStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	gate, err := h.viewSet(r).Gate(id, actor(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := gate.Refresh(r.Context())
	if err != nil && !errors.Is(err, cooldown.ErrLoginRequired) {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Vote — голос за бота. Если статус ещё не запрашивался, он запрашивается первым.
func (h *Handlers) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	gate, err := h.viewSet(r).Gate(id, actor(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ctx := r.Context()

	if !gate.View().Fetched {
		if _, err := gate.Refresh(ctx); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
	}

	view, err := gate.Perform(ctx)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
