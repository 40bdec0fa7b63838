package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/ThisPythonJS/SimoWebsite/internal/clients"
	"github.com/ThisPythonJS/SimoWebsite/internal/config"
	webhttp "github.com/ThisPythonJS/SimoWebsite/internal/http"
	"github.com/ThisPythonJS/SimoWebsite/internal/http/handlers"
	"github.com/ThisPythonJS/SimoWebsite/internal/metrics"
	"github.com/ThisPythonJS/SimoWebsite/internal/session"
	"github.com/ThisPythonJS/SimoWebsite/internal/views"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const apiBasePath = "/api/v1"

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting simo-web", "env", cfg.Env, "remote", cfg.Remote.BaseURL)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	m := metrics.New(true)

	cl, err := clients.New(*cfg, log, m)
	if err != nil {
		log.Error("clients_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	log.Info("clients_initialized")

	store, err := openSessionStore(rootCtx, cfg.Session, cfg.Views.SweepInterval, log)
	if err != nil {
		log.Error("session_store_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Warn("session_store_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	sessions := session.NewManager(store, cfg.Session)

	registry := views.NewRegistry(views.Deps{
		Bots:             cl.BotSource(),
		Votes:            cl,
		Feedbacks:        cl,
		Notifications:    cl,
		Profile:          cl,
		BotsPageSize:     cfg.Pagination.Bots,
		FeedbackPageSize: cfg.Pagination.Feedbacks,
	}, cfg.Views.IdleTTL, m.ViewsActive())
	go registry.Run(rootCtx, cfg.Views.SweepInterval, log)

	apiHandler := webhttp.NewRouter(webhttp.Options{
		Logger:    log,
		Timeout:   cfg.Timeouts.Service,
		BasePath:  apiBasePath,
		RateRPS:   cfg.RateLimit.RPS,
		RateBurst: cfg.RateLimit.Burst,
		Sessions:  sessions,
		Metrics:   m,
		Handlers: handlers.Options{
			Remote:   cl,
			Bots:     cl.BotSource(),
			Views:    registry,
			Sessions: sessions,
			LoginURL: cfg.Auth.LoginURL,
		},
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		if p, ok := store.(interface{ Ping(context.Context) error }); ok {
			if err := p.Ping(r.Context()); err != nil {
				http.Error(w, "session store unavailable", http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", m.Handler())

	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("web_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}

// openSessionStore — Redis, если задан session.redis_url, иначе память процесса
// с периодической вычисткой истёкших сессий.
func openSessionStore(ctx context.Context, cfg config.SessionConfig, sweepEvery time.Duration, log *slog.Logger) (session.Store, error) {
	if cfg.RedisURL != "" {
		st, err := session.NewRedisStore(ctx, cfg.RedisURL, "")
		if err != nil {
			return nil, err
		}
		log.Info("session_store_redis")
		return st, nil
	}

	st := session.NewMemoryStore()
	go func() {
		t := time.NewTicker(sweepEvery)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := st.Sweep(); n > 0 {
					log.Debug("sessions_evicted", slog.Int("count", n))
				}
			}
		}
	}()
	log.Info("session_store_memory")

	return st, nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
