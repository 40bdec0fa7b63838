package handlers

import (
	"net/http"

	apierrors "github.com/ThisPythonJS/SimoWebsite/internal/errors"
	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/internal/profile"
)

// userAvatarSize — размер аватара на странице профиля.
const userAvatarSize = 512

type profilePatch struct {
	Bio       *string `json:"bio"`
	BannerURL *string `json:"banner_url"`
}

// editor — кабинет текущего пользователя, загруженный хотя бы раз.
func (h *Handlers) editor(r *http.Request) (*profile.Editor, profile.View, error) {
	ed := h.viewSet(r).Profile(actor(r))

	view := ed.View()
	if view.Loaded {
		return ed, view, nil
	}

	view, err := ed.Load(r.Context())
	return ed, view, err
}

// Me — личный кабинет: пользователь, команды, боты, черновик профиля.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	_, view, err := h.editor(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// EditMe — правка черновика (bio и/или banner_url) без сохранения.
func (h *Handlers) EditMe(w http.ResponseWriter, r *http.Request) {
	var in profilePatch
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ed, view, err := h.editor(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if in.Bio != nil {
		if view, err = ed.SetBio(*in.Bio); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
	}
	if in.BannerURL != nil {
		if view, err = ed.SetBanner(*in.BannerURL); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, view)
}

// SaveMe — отправка черновика профиля.
func (h *Handlers) SaveMe(w http.ResponseWriter, r *http.Request) {
	ed, _, err := h.editor(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := ed.Save(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// publicProfile — страница пользователя.
type publicProfile struct {
	models.User
	AvatarURL string         `json:"avatar_url"`
	Badges    []models.Badge `json:"badges"`
	Bots      []botCard      `json:"bots"`
	Self      bool           `json:"self"`
}

// UserProfile — публичный профиль и боты пользователя.
func (h *Handlers) UserProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ctx := r.Context()

	user, err := h.remote.User(ctx, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	st, err := h.remote.Status(ctx)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var all []models.Bot
	if st.Bots > 0 {
		if all, err = h.remote.BotsRange(ctx, 0, st.Bots); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
	}

	owned := make([]models.Bot, 0)
	for _, b := range all {
		if b.OwnerID == id {
			owned = append(owned, b)
		}
	}

	// Уведомления чужого профиля наружу не отдаются.
	user.Notifications = nil

	writeJSON(w, http.StatusOK, publicProfile{
		User:      user,
		AvatarURL: user.AvatarURL(userAvatarSize),
		Badges:    models.Badges(user.PublicFlags),
		Bots:      cards(owned),
		Self:      actor(r) == id,
	})
}
