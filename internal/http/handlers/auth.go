package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/ThisPythonJS/SimoWebsite/internal/clients"
	apierrors "github.com/ThisPythonJS/SimoWebsite/internal/errors"
	logctx "github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

// homePath — куда возвращаемся после входа.
const homePath = "/"

// Login перенаправляет на страницу авторизации Discord с одноразовым state.
// Удалённый API возвращает state обратно в Callback вместе с токеном.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	const op = "handlers/Login"

	if h.loginURL == "" {
		apierrors.WriteError(w, r, fmt.Errorf("%s: %w: login url is not configured", op, apierrors.ErrInternal))
		return
	}

	u, err := url.Parse(h.loginURL)
	if err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("%s: %w: %v", op, apierrors.ErrInternal, err))
		return
	}

	state, err := h.sessions.BeginLogin(r.Context(), current(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	q := u.Query()
	q.Set("state", state)
	u.RawQuery = q.Encode()

	http.Redirect(w, r, u.String(), http.StatusFound)
}

// Callback принимает токен удалённого API после авторизации. Вход засчитывается
// только со state, выданным этой сессии в Login; токен проверяется запросом @me
// и привязывается к новой сессии.
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	token := q.Get("token")
	if token == "" {
		apierrors.WriteError(w, r, fmt.Errorf("handlers/Callback: %w: missing token", apierrors.ErrBadRequest))
		return
	}

	old := current(r)
	if err := h.sessions.CheckLogin(r.Context(), old, q.Get("state")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ctx := clients.WithToken(r.Context(), token)

	me, err := h.remote.Me(ctx)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if _, err := h.sessions.Authenticate(ctx, w, old, token, me); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	// Состояние анонимной страницы не переносится на вошедшего пользователя.
	h.views.Drop(old.ID)

	http.Redirect(w, r, homePath, http.StatusSeeOther)
}

// Logout завершает сессию. Сбой удалённого logout не мешает локальному выходу.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "handlers/Logout"

	ctx := r.Context()
	s := current(r)

	if s.Authenticated() {
		if err := h.remote.Logout(ctx); err != nil {
			logctx.From(ctx).Warn("remote logout failed", "op", op, "err", err)
		}
	}

	if err := h.sessions.Destroy(ctx, w, s); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	h.views.Drop(s.ID)

	w.WriteHeader(http.StatusNoContent)
}
