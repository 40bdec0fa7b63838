package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/ThisPythonJS/SimoWebsite/internal/clients"
	"github.com/ThisPythonJS/SimoWebsite/internal/config"
	"github.com/ThisPythonJS/SimoWebsite/internal/http/handlers"
	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/internal/session"
	"github.com/ThisPythonJS/SimoWebsite/internal/views"
)

// fakeRemote — удалённый API Simo в памяти.
type fakeRemote struct {
	mu            sync.Mutex
	bots          []models.Bot
	users         map[string]models.User // по токену
	feedbacks     map[string][]models.Feedback
	notifications models.Notifications
	voted         map[string]bool
	patches       int
	logouts       int
	// dropOnReplyDelete — удаление ответа удаляет и сам отзыв (отзыв удалён параллельно).
	dropOnReplyDelete bool
}

func newFakeRemote() *fakeRemote {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	return &fakeRemote{
		bots: []models.Bot{
			{ID: "b1", Name: "Alpha", OwnerID: "owner1", Votes: []models.Vote{{User: "x", Votes: 3}, {User: "y", Votes: 2}}},
			{ID: "b2", Name: "Beta", OwnerID: "u1", TeamID: "t1"},
			{ID: "b3", Name: "Gamma", OwnerID: "owner1", TeamID: "t1", Votes: []models.Vote{{User: "z", Votes: 7}}},
		},
		users: map[string]models.User{
			"tok-u1":    {ID: "u1", Username: "user-one"},
			"tok-owner": {ID: "owner1", Username: "owner", PublicFlags: 1<<6 | 1<<9},
		},
		feedbacks: map[string][]models.Feedback{
			"b1": {{AuthorID: "u2", TargetBot: "b1", Content: "nice bot", Stars: 4, PostedAt: now}},
		},
		notifications: models.Notifications{
			"n1": {Type: models.NotificationSuccess, Content: "approved", SentAt: now},
		},
		voted: map[string]bool{},
	}
}

func (f *fakeRemote) me(r *http.Request) (models.User, bool) {
	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "User ")
	u, ok := f.users[tok]
	return u, ok
}

func (f *fakeRemote) handler() http.Handler {
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(next func(http.ResponseWriter, *http.Request, models.User)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()

			u, ok := f.me(r)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
				return
			}
			next(w, r, u)
		}
	}

	r := chi.NewRouter()

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, models.Status{Bots: len(f.bots)})
	})
	r.Get("/api/bots", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		start, _ := strconv.Atoi(r.URL.Query().Get("start_at"))
		end, _ := strconv.Atoi(r.URL.Query().Get("end_at"))
		end = min(end, len(f.bots))
		start = min(start, end)
		writeJSON(w, http.StatusOK, f.bots[start:end])
	})
	r.Get("/api/bots/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		for _, b := range f.bots {
			if b.ID == chi.URLParam(r, "id") {
				writeJSON(w, http.StatusOK, b)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "unknown bot"})
	})
	r.Patch("/api/bots/{id}", authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		var in models.BotInput
		_ = json.NewDecoder(r.Body).Decode(&in)

		for i := range f.bots {
			if f.bots[i].ID == chi.URLParam(r, "id") {
				f.bots[i].Name = in.Name
				writeJSON(w, http.StatusOK, f.bots[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "unknown bot"})
	}))
	r.Delete("/api/bots/{id}", authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		for i := range f.bots {
			if f.bots[i].ID == chi.URLParam(r, "id") {
				f.bots = append(f.bots[:i:i], f.bots[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "unknown bot"})
	}))
	r.Get("/api/teams/{id}/bots", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		out := []models.Bot{}
		for _, b := range f.bots {
			if b.TeamID == chi.URLParam(r, "id") {
				out = append(out, b)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})
	r.Get("/api/users/@me", authed(func(w http.ResponseWriter, r *http.Request, u models.User) {
		writeJSON(w, http.StatusOK, u)
	}))
	r.Get("/api/users/notifications", authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		writeJSON(w, http.StatusOK, f.notifications)
	}))
	r.Patch("/api/users", authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		f.patches++
		w.WriteHeader(http.StatusOK)
	}))
	r.Get("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		for _, u := range f.users {
			if u.ID == chi.URLParam(r, "id") {
				writeJSON(w, http.StatusOK, u)
				return
			}
		}
		writeJSON(w, http.StatusOK, models.User{ID: chi.URLParam(r, "id"), Username: "someone"})
	})
	r.Get("/api/teams/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Team{ID: chi.URLParam(r, "id"), Name: "Team"})
	})
	r.Get("/api/vote-status/{id}", authed(func(w http.ResponseWriter, r *http.Request, u models.User) {
		if f.voted[u.ID+"/"+chi.URLParam(r, "id")] {
			writeJSON(w, http.StatusOK, models.VoteStatus{CanVote: false, RestTime: 43_200_000})
			return
		}
		writeJSON(w, http.StatusOK, models.VoteStatus{CanVote: true})
	}))
	r.Post("/api/bots/{id}/votes", authed(func(w http.ResponseWriter, r *http.Request, u models.User) {
		f.voted[u.ID+"/"+chi.URLParam(r, "id")] = true
		w.WriteHeader(http.StatusOK)
	}))
	r.Get("/api/bots/{id}/feedbacks", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		list := f.feedbacks[chi.URLParam(r, "id")]
		if list == nil {
			list = []models.Feedback{}
		}
		writeJSON(w, http.StatusOK, list)
	})
	r.Patch("/api/bots/{id}/feedbacks/{author}", authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		var body struct {
			Reply *models.Reply `json:"reply_message"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		list := f.feedbacks[chi.URLParam(r, "id")]
		for i := range list {
			if list[i].AuthorID == chi.URLParam(r, "author") {
				if body.Reply != nil && body.Reply.Content == "" {
					body.Reply = nil
				}
				list[i].Reply = body.Reply
				if body.Reply == nil && f.dropOnReplyDelete {
					f.feedbacks[chi.URLParam(r, "id")] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	r.Get("/api/auth/logout", authed(func(w http.ResponseWriter, r *http.Request, _ models.User) {
		f.logouts++
		w.WriteHeader(http.StatusOK)
	}))

	return r
}

// fixedRand — окно рекомендаций всегда с начала каталога.
type fixedRand struct{}

func (fixedRand) Intn(int) int { return 0 }

type testEnv struct {
	remote *fakeRemote
	srv    *httptest.Server
	client *http.Client
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	remote := newFakeRemote()
	remoteSrv := httptest.NewServer(remote.handler())
	t.Cleanup(remoteSrv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	var cfg config.Config
	cfg.Remote.BaseURL = remoteSrv.URL
	cfg.Remote.UserAgent = "simo-web/test"
	cfg.Timeouts.Remote = 2 * time.Second

	cl, err := clients.New(cfg, log, nil)
	require.NoError(t, err)

	store := session.NewMemoryStore()
	sessions := session.NewManager(store, config.SessionConfig{
		Secret: "0123456789abcdef0123456789abcdef",
		Issuer: "simo-test",
		TTL:    time.Hour,
	})

	registry := views.NewRegistry(views.Deps{
		Bots:             cl.BotSource(),
		Votes:            cl,
		Feedbacks:        cl,
		Notifications:    cl,
		Profile:          cl,
		BotsPageSize:     2,
		FeedbackPageSize: 5,
	}, time.Minute, nil)

	router := NewRouter(Options{
		Logger:   log,
		Timeout:  5 * time.Second,
		BasePath: "/api/v1",
		Sessions: sessions,
		Handlers: handlers.Options{
			Remote:   cl,
			Bots:     cl.BotSource(),
			Views:    registry,
			Sessions: sessions,
			LoginURL: "https://discord.example/oauth?scope=identify",
			Rand:     fixedRand{},
		},
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		remote: remote,
		srv:    srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// newClientFor — второй браузер со своей cookie к тому же серверу.
func newClientFor(t *testing.T, e *testEnv) *testEnv {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		remote: e.remote,
		srv:    e.srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// call выполняет запрос и декодирует JSON-ответ в out (если out != nil).
func (e *testEnv) call(t *testing.T, method, path, body string, out any) int {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, e.srv.URL+path, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

// beginLogin проходит /auth/login и возвращает выданный state.
func (e *testEnv) beginLogin(t *testing.T) string {
	t.Helper()

	resp, err := e.client.Get(e.srv.URL + "/auth/login")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	return state
}

func (e *testEnv) login(t *testing.T, token string) {
	t.Helper()

	state := e.beginLogin(t)
	require.Equal(t, http.StatusSeeOther, e.call(t, http.MethodGet,
		"/auth/callback?token="+token+"&state="+url.QueryEscape(state), "", nil))
}

type errBody struct {
	Error struct {
		Code      string `json:"code"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

type listItem struct {
	ID         string `json:"id"`
	TotalVotes int    `json:"total_votes"`
}

type listBody struct {
	Items     []listItem `json:"items"`
	Featured  []listItem `json:"featured"`
	NextStart int        `json:"next_start"`
	HasMore   bool       `json:"has_more"`
	Total     int        `json:"total"`
}

func TestRouter_BotListPaging(t *testing.T) {
	env := newEnv(t)

	var list listBody
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots", "", &list))
	require.Len(t, list.Items, 2)
	require.True(t, list.HasMore)
	require.Equal(t, 3, list.Total)
	require.Equal(t, 5, list.Items[0].TotalVotes)
	require.Len(t, list.Featured, 2)
	require.Equal(t, "b1", list.Featured[0].ID)

	// Повторный визит не грузит новую страницу.
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots", "", &list))
	require.Len(t, list.Items, 2)

	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/v1/bots/more", "", &list))
	require.Len(t, list.Items, 3)
	require.False(t, list.HasMore)
	require.Equal(t, 4, list.NextStart)

	// Топ по голосам строится из уже загруженных ботов.
	require.Len(t, list.Featured, 3)
	require.Equal(t, "b3", list.Featured[0].ID)
	require.Equal(t, 7, list.Featured[0].TotalVotes)
	require.Equal(t, "b1", list.Featured[1].ID)
	require.Equal(t, "b2", list.Featured[2].ID)

	var eb errBody
	require.Equal(t, http.StatusPreconditionFailed, env.call(t, http.MethodPost, "/api/v1/bots/more", "", &eb))
	require.Equal(t, "failed_precondition", eb.Error.Code)
	require.NotEmpty(t, eb.Error.RequestID)

	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/v1/bots/reload", "", &list))
	require.Len(t, list.Items, 2)
	require.True(t, list.HasMore)
}

func TestRouter_AnonymousVote(t *testing.T) {
	env := newEnv(t)

	var view struct {
		RequiresLogin bool `json:"requires_login"`
		Fetched       bool `json:"fetched"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots/b1/vote", "", &view))
	require.True(t, view.RequiresLogin)
	require.False(t, view.Fetched)

	var eb errBody
	require.Equal(t, http.StatusUnauthorized, env.call(t, http.MethodPost, "/api/v1/bots/b1/vote", "", &eb))
	require.Equal(t, "unauthenticated", eb.Error.Code)
}

func TestRouter_LoginVoteLogout(t *testing.T) {
	env := newEnv(t)

	// Анонимная сессия, затем вход.
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots", "", nil))
	env.login(t, "tok-u1")

	type voteView struct {
		Allowed        bool   `json:"allowed"`
		Done           bool   `json:"done"`
		RemainingHours int64  `json:"remaining_hours"`
		Phase          string `json:"phase"`
	}

	var v voteView
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots/b1/vote", "", &v))
	require.True(t, v.Allowed)

	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/v1/bots/b1/vote", "", &v))
	require.True(t, v.Done)
	require.False(t, v.Allowed)
	require.Equal(t, int64(12), v.RemainingHours)

	var eb errBody
	require.Equal(t, http.StatusPreconditionFailed, env.call(t, http.MethodPost, "/api/v1/bots/b1/vote", "", &eb))

	require.Equal(t, http.StatusNoContent, env.call(t, http.MethodPost, "/auth/logout", "", nil))
	require.Equal(t, 1, env.remote.logouts)

	// После выхода — снова аноним.
	require.Equal(t, http.StatusUnauthorized, env.call(t, http.MethodPost, "/api/v1/bots/b1/vote", "", &eb))
}

func TestRouter_CallbackRejectsBadToken(t *testing.T) {
	env := newEnv(t)

	state := env.beginLogin(t)

	var eb errBody
	require.Equal(t, http.StatusUnauthorized, env.call(t, http.MethodGet,
		"/auth/callback?token=nope&state="+url.QueryEscape(state), "", &eb))
	require.Equal(t, http.StatusBadRequest, env.call(t, http.MethodGet, "/auth/callback", "", &eb))
	require.Equal(t, "invalid_argument", eb.Error.Code)
}

func TestRouter_CallbackRequiresLoginState(t *testing.T) {
	env := newEnv(t)

	// Ссылка без state, например подсунутая с чужого сайта.
	var eb errBody
	require.Equal(t, http.StatusBadRequest, env.call(t, http.MethodGet, "/auth/callback?token=tok-u1", "", &eb))
	require.Equal(t, "invalid_argument", eb.Error.Code)

	state := env.beginLogin(t)
	require.Equal(t, http.StatusBadRequest, env.call(t, http.MethodGet,
		"/auth/callback?token=tok-u1&state=forged", "", &eb))

	// Неверная попытка сжигает выданный state.
	require.Equal(t, http.StatusBadRequest, env.call(t, http.MethodGet,
		"/auth/callback?token=tok-u1&state="+url.QueryEscape(state), "", &eb))

	var anon errBody
	require.Equal(t, http.StatusUnauthorized, env.call(t, http.MethodGet, "/api/v1/notifications", "", &anon))

	// State из другого браузера не подходит.
	other := newClientFor(t, env)
	foreign := other.beginLogin(t)
	require.Equal(t, http.StatusBadRequest, env.call(t, http.MethodGet,
		"/auth/callback?token=tok-u1&state="+url.QueryEscape(foreign), "", &eb))

	env.login(t, "tok-u1")
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/notifications", "", nil))
}

func TestRouter_LoginRedirects(t *testing.T) {
	env := newEnv(t)

	resp, err := env.client.Get(env.srv.URL + "/auth/login")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "discord.example", loc.Host)
	require.Equal(t, "/oauth", loc.Path)
	require.Equal(t, "identify", loc.Query().Get("scope"))
	require.NotEmpty(t, loc.Query().Get("state"))
}

func TestRouter_BotDetails(t *testing.T) {
	env := newEnv(t)

	var d struct {
		ID           string `json:"id"`
		TotalVotes   int    `json:"total_votes"`
		AverageStars int    `json:"average_stars"`
		Feedbacks    int    `json:"feedbacks"`
		Owner        struct {
			Username string `json:"username"`
		} `json:"owner"`
		Team *models.Team `json:"team"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots/b1", "", &d))
	require.Equal(t, "b1", d.ID)
	require.Equal(t, 5, d.TotalVotes)
	require.Equal(t, 4, d.AverageStars)
	require.Equal(t, 1, d.Feedbacks)
	require.Equal(t, "owner", d.Owner.Username)
	require.Nil(t, d.Team)

	var withTeam struct {
		Team     *models.Team `json:"team"`
		TeamBots []listItem   `json:"team_bots"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots/b3", "", &withTeam))
	require.NotNil(t, withTeam.Team)
	require.Equal(t, "t1", withTeam.Team.ID)
	require.Len(t, withTeam.TeamBots, 1)
	require.Equal(t, "b2", withTeam.TeamBots[0].ID)

	var eb errBody
	require.Equal(t, http.StatusNotFound, env.call(t, http.MethodGet, "/api/v1/bots/missing", "", &eb))
	require.Equal(t, "not_found", eb.Error.Code)
}

func TestRouter_SuggestedSkipsCurrentBot(t *testing.T) {
	env := newEnv(t)

	var out listBody
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots/b1/suggested", "", &out))
	require.Len(t, out.Items, 1)
	require.Equal(t, "b2", out.Items[0].ID)
}

func TestRouter_OwnerReplyFlow(t *testing.T) {
	env := newEnv(t)
	env.login(t, "tok-owner")

	type item struct {
		AuthorID string        `json:"author_id"`
		Mode     string        `json:"mode"`
		CanReply bool          `json:"can_reply"`
		CanEdit  bool          `json:"can_edit"`
		Reply    *models.Reply `json:"reply_message"`
	}
	var page struct {
		Items     []item `json:"items"`
		CanSubmit bool   `json:"can_submit"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots/b1/feedbacks?page=1", "", &page))
	require.Len(t, page.Items, 1)
	require.True(t, page.Items[0].CanReply)
	require.False(t, page.Items[0].CanEdit)
	require.True(t, page.CanSubmit)

	var it item
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPut, "/api/v1/bots/b1/feedbacks/u2/mode",
		`{"mode":"reply_composing"}`, &it))
	require.Equal(t, "reply_composing", it.Mode)

	require.Equal(t, http.StatusCreated, env.call(t, http.MethodPost, "/api/v1/bots/b1/feedbacks/u2/reply",
		`{"content":"thanks!"}`, &it))
	require.NotNil(t, it.Reply)
	require.Equal(t, "thanks!", it.Reply.Content)
	require.Equal(t, "viewing", it.Mode)

	var eb errBody
	require.Equal(t, http.StatusConflict, env.call(t, http.MethodPost, "/api/v1/bots/b1/feedbacks/u2/reply",
		`{"content":"again"}`, &eb))
	require.Equal(t, "already_exists", eb.Error.Code)

	var deleted item
	require.Equal(t, http.StatusOK, env.call(t, http.MethodDelete, "/api/v1/bots/b1/feedbacks/u2/reply", "", &deleted))
	require.Nil(t, deleted.Reply)

	var after struct {
		Items []item `json:"items"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots/b1/feedbacks?page=1", "", &after))
	require.Len(t, after.Items, 1)
	require.Nil(t, after.Items[0].Reply)
}

func TestRouter_DeleteReplyOfVanishedFeedbackReturnsPage(t *testing.T) {
	env := newEnv(t)
	env.login(t, "tok-owner")

	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots/b1/feedbacks?page=1", "", nil))
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPut, "/api/v1/bots/b1/feedbacks/u2/mode",
		`{"mode":"reply_composing"}`, nil))
	require.Equal(t, http.StatusCreated, env.call(t, http.MethodPost, "/api/v1/bots/b1/feedbacks/u2/reply",
		`{"content":"thanks!"}`, nil))

	env.remote.mu.Lock()
	env.remote.dropOnReplyDelete = true
	env.remote.mu.Unlock()

	var page struct {
		Items []struct {
			AuthorID string `json:"author_id"`
		} `json:"items"`
		Total *int `json:"total"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodDelete, "/api/v1/bots/b1/feedbacks/u2/reply", "", &page))
	require.NotNil(t, page.Total)
	require.Zero(t, *page.Total)
	require.Empty(t, page.Items)
}

func TestRouter_FeedbackModeRequiresRole(t *testing.T) {
	env := newEnv(t)
	env.login(t, "tok-u1")

	var eb errBody
	require.Equal(t, http.StatusForbidden, env.call(t, http.MethodPut, "/api/v1/bots/b1/feedbacks/u2/mode",
		`{"mode":"editing_parent"}`, &eb))
	require.Equal(t, "permission_denied", eb.Error.Code)

	require.Equal(t, http.StatusBadRequest, env.call(t, http.MethodPut, "/api/v1/bots/b1/feedbacks/u2/mode",
		`{"mode":"dancing"}`, &eb))
	require.Equal(t, http.StatusBadRequest, env.call(t, http.MethodPut, "/api/v1/bots/b1/feedbacks/u2/mode",
		`{"mode":"viewing","extra":1}`, &eb))
}

func TestRouter_Notifications(t *testing.T) {
	env := newEnv(t)

	var eb errBody
	require.Equal(t, http.StatusUnauthorized, env.call(t, http.MethodGet, "/api/v1/notifications", "", &eb))

	env.login(t, "tok-u1")

	var inbox struct {
		Entries []struct {
			ID       string `json:"id"`
			TypeName string `json:"type_name"`
		} `json:"entries"`
		Unread bool `json:"unread"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/notifications", "", &inbox))
	require.Len(t, inbox.Entries, 1)
	require.Equal(t, "success", inbox.Entries[0].TypeName)
	require.True(t, inbox.Unread)

	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/v1/notifications/open", "", &inbox))
	require.False(t, inbox.Unread)
	require.Equal(t, 1, env.remote.patches)

	// Повторное открытие не шлёт PATCH.
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/v1/notifications/open", "", &inbox))
	require.Equal(t, 1, env.remote.patches)
}

func TestRouter_UserProfileListsOwnedBots(t *testing.T) {
	env := newEnv(t)

	var p struct {
		ID   string `json:"id"`
		Bots []struct {
			ID string `json:"id"`
		} `json:"bots"`
		Badges []models.Badge `json:"badges"`
		Self   bool           `json:"self"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/users/owner1", "", &p))
	require.Equal(t, "owner1", p.ID)
	require.Len(t, p.Bots, 2)
	require.False(t, p.Self)
	require.Equal(t, []models.Badge{
		{Key: "EARLY_SUPPORTER", Name: "Early Supporter"},
		{Key: "VERIFIED_BOT", Name: "Verified Bot"},
	}, p.Badges)

	var other struct {
		Badges []models.Badge `json:"badges"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/users/u9", "", &other))
	require.NotNil(t, other.Badges)
	require.Empty(t, other.Badges)
}

func TestRouter_OwnerEditsAndDeletesBot(t *testing.T) {
	env := newEnv(t)
	env.login(t, "tok-owner")

	body, err := json.Marshal(models.BotInput{
		Name:             "Gamma 2",
		Prefix:           "g!",
		ShortDescription: strings.Repeat("s", 60),
		LongDescription:  strings.Repeat("l", 220),
		Tags:             []string{"fun"},
	})
	require.NoError(t, err)

	var card struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPatch, "/api/v1/bots/b3", string(body), &card))
	require.Equal(t, "Gamma 2", card.Name)

	var eb errBody
	require.Equal(t, http.StatusForbidden, env.call(t, http.MethodPatch, "/api/v1/bots/b2", string(body), &eb))
	require.Equal(t, "permission_denied", eb.Error.Code)
	require.Equal(t, http.StatusForbidden, env.call(t, http.MethodDelete, "/api/v1/bots/b2", "", &eb))

	var list listBody
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots", "", &list))
	require.Equal(t, 3, list.Total)

	require.Equal(t, http.StatusNoContent, env.call(t, http.MethodDelete, "/api/v1/bots/b3", "", nil))

	// Список сессии перезапрошен после удаления.
	var fresh listBody
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/v1/bots", "", &fresh))
	require.Equal(t, 2, fresh.Total)
	require.False(t, fresh.HasMore)

	require.Equal(t, http.StatusNotFound, env.call(t, http.MethodDelete, "/api/v1/bots/b3", "", &eb))
}

func TestRouter_SubmitBotValidation(t *testing.T) {
	env := newEnv(t)

	var eb errBody
	require.Equal(t, http.StatusUnauthorized, env.call(t, http.MethodPost, "/api/v1/bots/123456789012345678",
		`{"name":"x"}`, &eb))

	env.login(t, "tok-u1")

	var ve struct {
		Error struct {
			Code   string `json:"code"`
			Fields []struct {
				Field string `json:"field"`
			} `json:"fields"`
		} `json:"error"`
	}
	require.Equal(t, http.StatusBadRequest, env.call(t, http.MethodPost, "/api/v1/bots/123",
		`{"name":"x"}`, &ve))
	require.Equal(t, "invalid_argument", ve.Error.Code)
	require.NotEmpty(t, ve.Error.Fields)
	require.Equal(t, "id", ve.Error.Fields[0].Field)
}
