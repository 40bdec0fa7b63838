// profile — редактирование профиля в личном кабинете (био и баннер).
package profile

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

// MaxBioLen — максимальная длина био в символах.
const MaxBioLen = 200

var (
	ErrLoginRequired   = errors.New("login required")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotLoaded       = errors.New("profile not loaded")
	ErrNoChanges       = errors.New("no changes to save")
	ErrBusy            = errors.New("save in progress")
)

// ProfileAPI — часть удалённого API, нужная Editor.
type ProfileAPI interface {
	Me(ctx context.Context) (models.User, error)
	Teams(ctx context.Context) ([]models.Team, error)
	OwnBots(ctx context.Context) ([]models.Bot, error)
	UpdateUser(ctx context.Context, patch models.UserPatch) error
}

// View — модель личного кабинета.
type View struct {
	User           models.User   `json:"user"`
	Teams          []models.Team `json:"teams"`
	Bots           []models.Bot  `json:"bots"`
	Bio            string        `json:"bio"`
	BannerURL      string        `json:"banner_url"`
	ChangesMade    bool          `json:"changes_made"`
	ChangesLoading bool          `json:"changes_loading"`
	Loaded         bool          `json:"loaded"`
}

// Editor — черновик профиля одного пользователя.
type Editor struct {
	api   ProfileAPI
	actor string

	mu             sync.Mutex
	user           models.User
	teams          []models.Team
	bots           []models.Bot
	bio            string
	banner         string
	changesMade    bool
	changesLoading bool
	loaded         bool
}

// New создаёт Editor для пользователя actorID.
func New(api ProfileAPI, actorID string) *Editor {
	return &Editor{api: api, actor: actorID}
}

// Actor — владелец профиля.
func (e *Editor) Actor() string { return e.actor }

// Load перечитывает пользователя, его команды и ботов и сбрасывает черновик.
func (e *Editor) Load(ctx context.Context) (View, error) {
	const op = "profile/Load"

	if e.actor == "" {
		return View{}, fmt.Errorf("%s: %w", op, ErrLoginRequired)
	}

	lg := log.From(ctx).With("op", op)

	me, err := e.api.Me(ctx)
	if err != nil {
		lg.Warn("user fetch failed", "err", err)
		return e.View(), fmt.Errorf("%s: %w", op, err)
	}

	teams, err := e.api.Teams(ctx)
	if err != nil {
		lg.Warn("teams fetch failed", "err", err)
		return e.View(), fmt.Errorf("%s: %w", op, err)
	}

	bots, err := e.api.OwnBots(ctx)
	if err != nil {
		lg.Warn("bots fetch failed", "err", err)
		return e.View(), fmt.Errorf("%s: %w", op, err)
	}

	e.mu.Lock()
	e.user, e.teams, e.bots = me, teams, bots
	e.resetDraftLocked()
	e.loaded = true
	e.mu.Unlock()

	return e.View(), nil
}

func (e *Editor) resetDraftLocked() {
	e.bio = deref(e.user.Bio)
	e.banner = deref(e.user.BannerURL)
	e.changesMade = false
}

// SetBio меняет био в черновике.
func (e *Editor) SetBio(bio string) (View, error) {
	const op = "profile/SetBio"

	if err := ValidateBio(bio); err != nil {
		return e.View(), fmt.Errorf("%s: %w", op, err)
	}

	return e.edit(op, func() { e.bio = bio })
}

// SetBanner меняет ссылку на баннер в черновике. Пустая строка — убрать баннер.
func (e *Editor) SetBanner(banner string) (View, error) {
	const op = "profile/SetBanner"

	banner = strings.TrimSpace(banner)
	if err := ValidateBanner(banner); err != nil {
		return e.View(), fmt.Errorf("%s: %w", op, err)
	}

	return e.edit(op, func() { e.banner = banner })
}

func (e *Editor) edit(op string, apply func()) (View, error) {
	e.mu.Lock()
	switch {
	case !e.loaded:
		e.mu.Unlock()
		return e.View(), fmt.Errorf("%s: %w", op, ErrNotLoaded)
	case e.changesLoading:
		e.mu.Unlock()
		return e.View(), fmt.Errorf("%s: %w", op, ErrBusy)
	}
	apply()
	e.changesMade = e.bio != deref(e.user.Bio) || e.banner != deref(e.user.BannerURL)
	e.mu.Unlock()

	return e.View(), nil
}

// Save отправляет черновик. Пустые поля уходят как null.
// При сбое черновик сбрасывается к сохранённому профилю.
func (e *Editor) Save(ctx context.Context) (View, error) {
	const op = "profile/Save"

	e.mu.Lock()
	switch {
	case !e.loaded:
		e.mu.Unlock()
		return e.View(), fmt.Errorf("%s: %w", op, ErrNotLoaded)
	case e.changesLoading:
		e.mu.Unlock()
		return e.View(), fmt.Errorf("%s: %w", op, ErrBusy)
	case !e.changesMade:
		e.mu.Unlock()
		return e.View(), fmt.Errorf("%s: %w", op, ErrNoChanges)
	}
	e.changesLoading = true
	bio, banner := e.bio, e.banner
	e.mu.Unlock()

	patch := models.UserPatch{}
	if bio == "" {
		patch.ClearBio = true
	} else {
		patch.Bio = &bio
	}
	if banner == "" {
		patch.ClearBanner = true
	} else {
		patch.BannerURL = &banner
	}

	err := e.api.UpdateUser(ctx, patch)

	e.mu.Lock()
	e.changesLoading = false
	if err != nil {
		e.resetDraftLocked()
	} else {
		e.user.Bio = ptr(bio)
		e.user.BannerURL = ptr(banner)
		e.changesMade = false
	}
	e.mu.Unlock()

	if err != nil {
		log.From(ctx).Warn("profile save failed", "op", op, "err", err)
		return e.View(), fmt.Errorf("%s: %w", op, err)
	}

	return e.View(), nil
}

// View — снимок кабинета.
func (e *Editor) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	return View{
		User:           e.user,
		Teams:          append([]models.Team(nil), e.teams...),
		Bots:           append([]models.Bot(nil), e.bots...),
		Bio:            e.bio,
		BannerURL:      e.banner,
		ChangesMade:    e.changesMade,
		ChangesLoading: e.changesLoading,
		Loaded:         e.loaded,
	}
}

// ValidateBio — не длиннее MaxBioLen символов.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLen {
		return fmt.Errorf("%w: bio longer than %d characters", ErrInvalidArgument, MaxBioLen)
	}

	return nil
}

// ValidateBanner — пусто или абсолютная http(s)-ссылка.
func ValidateBanner(banner string) error {
	if banner == "" {
		return nil
	}

	u, err := url.Parse(banner)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: banner must be an http(s) url", ErrInvalidArgument)
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
