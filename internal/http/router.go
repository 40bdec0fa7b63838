package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ThisPythonJS/SimoWebsite/internal/http/handlers"
	"github.com/ThisPythonJS/SimoWebsite/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api/v1"; если пустой — API регистрируется на корне.

	RateRPS   float64
	RateBurst int

	Sessions middleware.SessionResolver
	Metrics  middleware.HTTPObserver
	Handlers handlers.Options
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),                               // безопасно ловим паники
		middleware.RequestID(),                             // X-Request-Id до логирования
		middleware.Logging(opts.Logger),                    // request-scoped логгер в контексте
		middleware.Metrics(opts.Metrics),                   // счётчики по шаблону маршрута
		middleware.RateLimit(opts.RateRPS, opts.RateBurst), // token bucket на IP
		middleware.Timeout(opts.Timeout),                   // общий дедлайн запроса
		middleware.Session(opts.Sessions),                  // сессия и токен удалённого API
	)

	h := handlers.New(opts.Handlers)

	root.Route("/auth", func(r chi.Router) {
		r.Get("/login", h.Login)
		r.Get("/callback", h.Callback)
		r.Post("/logout", h.Logout)
	})

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// bots
	r.Get("/bots", h.ListBots)
	r.Post("/bots/more", h.MoreBots)
	r.Post("/bots/reload", h.ReloadBots)
	r.Get("/bots/{id}", h.BotDetails)
	r.Post("/bots/{id}", h.SubmitBot)
	r.Patch("/bots/{id}", h.UpdateBot)
	r.Delete("/bots/{id}", h.DeleteBot)
	r.Get("/bots/{id}/suggested", h.SuggestedBots)

	// votes
	r.Get("/bots/{id}/vote", h.VoteStatus)
	r.Post("/bots/{id}/vote", h.Vote)

	// feedbacks
	r.Get("/bots/{id}/feedbacks", h.ListFeedbacks)
	r.Post("/bots/{id}/feedbacks", h.SubmitFeedback)
	r.Patch("/bots/{id}/feedbacks/{author}", h.EditFeedback)
	r.Delete("/bots/{id}/feedbacks/{author}", h.DeleteFeedback)
	r.Put("/bots/{id}/feedbacks/{author}/mode", h.SetFeedbackMode)
	r.Post("/bots/{id}/feedbacks/{author}/reply", h.CreateReply)
	r.Patch("/bots/{id}/feedbacks/{author}/reply", h.EditReply)
	r.Delete("/bots/{id}/feedbacks/{author}/reply", h.DeleteReply)

	// notifications
	r.Get("/notifications", h.ListNotifications)
	r.Delete("/notifications", h.ClearNotifications)
	r.Post("/notifications/open", h.OpenNotifications)
	r.Delete("/notifications/{id}", h.DeleteNotification)

	// users
	r.Get("/me", h.Me)
	r.Patch("/me", h.EditMe)
	r.Post("/me/save", h.SaveMe)
	r.Get("/users/{id}", h.UserProfile)
}
