// config - источник загрузки конфигурации simo-web.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
//
// ENV всегда накладывается поверх YAML.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DevSessionSecret — секрет по умолчанию; допустим только в env=local.
const DevSessionSecret = "local-dev-secret-change-me-please"

// Config — корневая конфигурация.
type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	Remote     RemoteConfig     `yaml:"remote"`
	Timeouts   TimeoutConfig    `yaml:"timeouts"`
	Pagination PaginationConfig `yaml:"pagination"`
	Session    SessionConfig    `yaml:"session"`
	Views      ViewsConfig      `yaml:"views"`
	Auth       AuthConfig       `yaml:"auth"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// HTTPConfig — публичный HTTP-сервер.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// RemoteConfig — удалённый API Simo.
type RemoteConfig struct {
	BaseURL   string `yaml:"base_url"   env:"REMOTE_BASE_URL"   env-default:"https://api.simobotlist.online"`
	UserAgent string `yaml:"user_agent" env:"REMOTE_USER_AGENT" env-default:"simo-web"`
}

// TimeoutConfig — таймауты: обработки запроса и одного исходящего вызова.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"TIMEOUT_SERVICE" env-default:"15s"`
	Remote  time.Duration `yaml:"remote"  env:"TIMEOUT_REMOTE"  env-default:"10s"`
}

// PaginationConfig — размеры страниц.
type PaginationConfig struct {
	Bots      int `yaml:"bots"      env:"PAGINATION_BOTS"      env-default:"6"`
	Feedbacks int `yaml:"feedbacks" env:"PAGINATION_FEEDBACKS" env-default:"5"`
}

// SessionConfig — cookie-сессия и её хранилище.
// RedisURL пустой — сессии в памяти процесса.
type SessionConfig struct {
	Secret       string        `yaml:"secret"        env:"SESSION_SECRET"        env-default:"local-dev-secret-change-me-please"`
	Issuer       string        `yaml:"issuer"        env:"SESSION_ISSUER"        env-default:"simo-web"`
	TTL          time.Duration `yaml:"ttl"           env:"SESSION_TTL"           env-default:"168h"`
	CookieSecure bool          `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
	RedisURL     string        `yaml:"redis_url"     env:"SESSION_REDIS_URL"`
}

// ViewsConfig — время жизни состояния компонентов без обращений.
type ViewsConfig struct {
	IdleTTL       time.Duration `yaml:"idle_ttl"       env:"VIEWS_IDLE_TTL"       env-default:"30m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"VIEWS_SWEEP_INTERVAL" env-default:"1m"`
}

// AuthConfig — ссылка на авторизацию через Discord.
type AuthConfig struct {
	LoginURL string `yaml:"login_url" env:"AUTH_LOGIN_URL" env-default:"https://api.simobotlist.online/api/auth/callback"`
}

// RateLimitConfig — ограничение запросов на клиентский IP. RPS <= 0 — выключено.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"   env:"RATE_LIMIT_RPS"   env-default:"20"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"40"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	var (
		c   *Config
		err error
	)

	switch {
	// 1) --config.
	case path != "":
		c, err = tryRead(path)
	// 2) CONFIG_PATH.
	case os.Getenv("CONFIG_PATH") != "":
		c, err = tryRead(os.Getenv("CONFIG_PATH"))
	default:
		// 3) ./local.yaml.
		if _, statErr := os.Stat("local.yaml"); statErr == nil {
			c, err = tryRead("local.yaml")
			break
		}

		// 4) Только ENV.
		if err = cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
		c = &cfg
	}
	if err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case "local", "dev", "prod":
	default:
		return fmt.Errorf("config: unknown env %q", c.Env)
	}

	if c.HTTP.Port == "" {
		return errors.New("config: http.port is required")
	}

	u, err := url.Parse(c.Remote.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: remote.base_url must be an absolute http(s) url, got %q", c.Remote.BaseURL)
	}

	if c.Pagination.Bots <= 0 || c.Pagination.Feedbacks <= 0 {
		return errors.New("config: pagination sizes must be positive")
	}

	if len(c.Session.Secret) < 32 {
		return errors.New("config: session.secret must be at least 32 bytes")
	}

	if c.Env == "prod" && c.Session.Secret == DevSessionSecret {
		return errors.New("config: session.secret must be set in prod")
	}

	if c.Session.TTL <= 0 {
		return errors.New("config: session.ttl must be positive")
	}

	if c.Views.IdleTTL <= 0 || c.Views.SweepInterval <= 0 {
		return errors.New("config: views.idle_ttl and views.sweep_interval must be positive")
	}

	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return errors.New("config: rate_limit.burst must be positive when rps is set")
	}

	return nil
}
