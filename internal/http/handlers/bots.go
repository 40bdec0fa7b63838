package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"

	apierrors "github.com/ThisPythonJS/SimoWebsite/internal/errors"
	"github.com/ThisPythonJS/SimoWebsite/internal/listing"
	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/internal/pager"
	"github.com/ThisPythonJS/SimoWebsite/internal/thread"
	logctx "github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

// suggestedCount — сколько ботов показывать рядом с кнопкой голосования.
const suggestedCount = 2

// botAvatarSize — размер аватара в карточках.
const botAvatarSize = 256

// featuredCount — размер блока «топ по голосам» над списком.
const featuredCount = 4

// botCard — бот в списке каталога.
type botCard struct {
	models.Bot
	AvatarURL  string `json:"avatar_url"`
	TotalVotes int    `json:"total_votes"`
}

func cards(bots []models.Bot) []botCard {
	out := make([]botCard, 0, len(bots))
	for _, b := range bots {
		out = append(out, botCard{Bot: b, AvatarURL: b.AvatarURL(botAvatarSize), TotalVotes: b.TotalVotes()})
	}
	return out
}

// botList — состояние бесконечного списка ботов.
type botList struct {
	Items     []botCard `json:"items"`
	Featured  []botCard `json:"featured"`
	NextStart int       `json:"next_start"`
	HasMore   bool      `json:"has_more"`
	Loading   bool      `json:"loading"`
	Total     int       `json:"total"`
}

func listFrom(st pager.State[models.Bot]) botList {
	items := cards(st.Items)

	return botList{
		Items:     items,
		Featured:  featured(items),
		NextStart: st.NextStart,
		HasMore:   st.HasMore,
		Loading:   st.Loading,
		Total:     st.Total,
	}
}

// featured — самые голосуемые из уже загруженных ботов; при равенстве
// сохраняется порядок загрузки.
func featured(items []botCard) []botCard {
	top := make([]botCard, len(items))
	copy(top, items)

	sort.SliceStable(top, func(i, j int) bool { return top[i].TotalVotes > top[j].TotalVotes })

	if len(top) > featuredCount {
		top = top[:featuredCount]
	}

	return top
}

// ListBots — список ботов; при первом визите загружается первая страница.
func (h *Handlers) ListBots(w http.ResponseWriter, r *http.Request) {
	loader, err := h.viewSet(r).Bots()
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if loader.Loaded() {
		writeJSON(w, http.StatusOK, listFrom(loader.State()))
		return
	}

	st, err := loader.LoadNext(r.Context())
	// Параллельная первая загрузка уже идёт: отдаём состояние с loading=true.
	if errors.Is(err, pager.ErrBusy) {
		st, err = loader.State(), nil
	}
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listFrom(st))
}

// MoreBots — следующая страница ("Load more").
func (h *Handlers) MoreBots(w http.ResponseWriter, r *http.Request) {
	loader, err := h.viewSet(r).Bots()
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	st, err := loader.LoadNext(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listFrom(st))
}

// ReloadBots — список заново с первой страницы.
func (h *Handlers) ReloadBots(w http.ResponseWriter, r *http.Request) {
	loader, err := h.viewSet(r).Bots()
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	loader.Reset()

	st, err := loader.LoadNext(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listFrom(st))
}

// botDetails — страница бота.
type botDetails struct {
	botCard
	Owner        models.Developer `json:"owner"`
	Team         *models.Team     `json:"team,omitempty"`
	TeamBots     []botCard        `json:"team_bots,omitempty"`
	AverageStars int              `json:"average_stars"`
	Feedbacks    int              `json:"feedbacks"`
}

// BotDetails — бот, владелец, команда и средняя оценка.
func (h *Handlers) BotDetails(w http.ResponseWriter, r *http.Request) {
	const op = "handlers/BotDetails"

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ctx := r.Context()

	bot, err := h.remote.Bot(ctx, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	owner, err := h.remote.User(ctx, bot.OwnerID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := botDetails{
		botCard: cards([]models.Bot{bot})[0],
		Owner:   models.Developer{ID: owner.ID, Username: owner.Username, Avatar: owner.Avatar},
	}

	if bot.TeamID != "" {
		team, err := h.remote.Team(ctx, bot.TeamID)
		if err != nil {
			// Страница бота открывается и без команды.
			logctx.From(ctx).Warn("team fetch failed", "op", op, "team_id", bot.TeamID, "err", err)
		} else {
			out.Team = &team
			out.TeamBots = h.teamBots(ctx, bot)
		}
	}

	c, err := h.threadFor(ctx, r, id, bot.OwnerID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	page := c.Page(1)
	out.AverageStars, out.Feedbacks = page.AverageStars, page.Total

	writeJSON(w, http.StatusOK, out)
}

// teamBots — другие боты команды; сбой только логируется.
func (h *Handlers) teamBots(ctx context.Context, bot models.Bot) []botCard {
	const op = "handlers/teamBots"

	bots, err := h.remote.TeamBots(ctx, bot.TeamID)
	if err != nil {
		logctx.From(ctx).Warn("team bots fetch failed", "op", op, "team_id", bot.TeamID, "err", err)
		return nil
	}

	others := make([]models.Bot, 0, len(bots))
	for _, b := range bots {
		if b.ID != bot.ID {
			others = append(others, b)
		}
	}

	return cards(others)
}

// UpdateBot — правка карточки бота владельцем.
func (h *Handlers) UpdateBot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.BotInput
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	bot, err := listing.Update(r.Context(), h.remote, actor(r), id, in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cards([]models.Bot{bot})[0])
}

// DeleteBot — удаление бота владельцем. Список ботов сессии перезапрашивается.
func (h *Handlers) DeleteBot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := listing.Delete(r.Context(), h.remote, actor(r), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if loader, err := h.viewSet(r).Bots(); err == nil && loader.Loaded() {
		loader.Reset()
	}

	w.WriteHeader(http.StatusNoContent)
}

// SubmitBot — заявка на размещение бота.
func (h *Handlers) SubmitBot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.BotInput
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	bot, err := listing.Submit(r.Context(), h.remote, actor(r), id, in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, cards([]models.Bot{bot})[0])
}

// SuggestedBots — случайное окно из двух ботов каталога, кроме текущего.
func (h *Handlers) SuggestedBots(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	bots, err := pager.Window(r.Context(), h.bots, suggestedCount, h.rnd)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]models.Bot, 0, len(bots))
	for _, b := range bots {
		if b.ID != id {
			out = append(out, b)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": cards(out)})
}

// threadFor — коллекция отзывов о боте для текущего пользователя;
// новая коллекция сразу загружается. ownerID "" — владелец берётся из API.
func (h *Handlers) threadFor(ctx context.Context, r *http.Request, botID, ownerID string) (*thread.Collection, error) {
	set := h.viewSet(r)
	who := actor(r)

	if c, ok := set.LookupThread(botID, who); ok && c.Loaded() {
		return c, nil
	}

	if ownerID == "" {
		bot, err := h.remote.Bot(ctx, botID)
		if err != nil {
			return nil, err
		}
		ownerID = bot.OwnerID
	}

	c, _, err := set.Thread(botID, ownerID, who)
	if err != nil {
		return nil, err
	}

	if !c.Loaded() {
		if err := c.Load(ctx); err != nil {
			return nil, err
		}
	}

	return c, nil
}
