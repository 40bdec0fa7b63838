package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

// chdir — смена текущего рабочего каталога с авто-возвратом.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

const sampleYAML = `
env: "prod"
http:
  host: "0.0.0.0"
  port: "9000"
remote:
  base_url: "https://api.example.test"
  user_agent: "simo-web/test"
timeouts:
  service: "3s"
  remote: "2s"
pagination:
  bots: 12
  feedbacks: 10
session:
  secret: "0123456789abcdef0123456789abcdef"
  issuer: "simo-test"
  ttl: "1h"
  cookie_secure: true
  redis_url: "redis://localhost:6379/0"
views:
  idle_ttl: "5m"
  sweep_interval: "10s"
auth:
  login_url: "https://discord.example/oauth"
rate_limit:
  rps: 5
  burst: 10
`

const minimalYAML = `
env: "dev"
`

const brokenYAML = `
env: [unclosed
`

func TestHTTPConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := HTTPConfig{Host: "0.0.0.0", Port: "8080"}
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "0.0.0.0:9000", cfg.HTTP.Addr())
	require.Equal(t, "https://api.example.test", cfg.Remote.BaseURL)
	require.Equal(t, "simo-web/test", cfg.Remote.UserAgent)
	require.Equal(t, 3*time.Second, cfg.Timeouts.Service)
	require.Equal(t, 2*time.Second, cfg.Timeouts.Remote)
	require.Equal(t, 12, cfg.Pagination.Bots)
	require.Equal(t, 10, cfg.Pagination.Feedbacks)
	require.Equal(t, "simo-test", cfg.Session.Issuer)
	require.Equal(t, time.Hour, cfg.Session.TTL)
	require.True(t, cfg.Session.CookieSecure)
	require.Equal(t, "redis://localhost:6379/0", cfg.Session.RedisURL)
	require.Equal(t, 5*time.Minute, cfg.Views.IdleTTL)
	require.Equal(t, 10*time.Second, cfg.Views.SweepInterval)
	require.Equal(t, "https://discord.example/oauth", cfg.Auth.LoginURL)
	require.Equal(t, 5.0, cfg.RateLimit.RPS)
	require.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "min.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "https://api.simobotlist.online", cfg.Remote.BaseURL)
	require.Equal(t, 6, cfg.Pagination.Bots)
	require.Equal(t, 5, cfg.Pagination.Feedbacks)
	require.Equal(t, DevSessionSecret, cfg.Session.Secret)
	require.Empty(t, cfg.Session.RedisURL)
	require.Equal(t, 30*time.Minute, cfg.Views.IdleTTL)
}

func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_Validate(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unknown env":        `env: "stage"`,
		"relative base url":  "remote:\n  base_url: \"/api\"",
		"negative page size": "pagination:\n  bots: -1",
		"short secret":       "session:\n  secret: \"short\"",
		"dev secret prod":    "env: \"prod\"",
		"negative burst":     "rate_limit:\n  rps: 5\n  burst: -1",
	}

	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfgPath := writeFile(t, t.TempDir(), "c.yaml", yaml)
			_, err := Load(cfgPath)
			require.Error(t, err)
			require.Contains(t, err.Error(), "config:")
		})
	}
}

func TestLoad_WithCONFIG_PATH_OK(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "from_env_path.yaml", minimalYAML)
	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
}

func TestLoad_WithLocalYAML_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, ".", "local.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "9000", cfg.HTTP.Port)
}

// CONFIG_PATH важнее local.yaml.
func TestLoad_Priority_ENVWinsOverLocal(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, ".", "local.yaml", `
env: "local"
http: { host: "127.0.0.1", port: "7777" }
`)

	envPath := writeFile(t, dir, "from_env.yaml", minimalYAML)
	t.Setenv("CONFIG_PATH", envPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
}

// Явный путь важнее CONFIG_PATH и local.yaml.
func TestLoad_Priority_ExplicitWinsOverEnvAndLocal(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	explicit := writeFile(t, dir, "explicit.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", writeFile(t, dir, "bad.yaml", brokenYAML))
	writeFile(t, ".", "local.yaml", `
env: "local"
http: { host: "127.0.0.1", port: "9999" }
`)

	cfg, err := Load(explicit)
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "9000", cfg.HTTP.Port)
}

func TestLoad_EnvOverlay_OverridesValuesFromFile(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.yaml", sampleYAML)

	t.Setenv("HTTP_PORT", "18080")
	t.Setenv("PAGINATION_BOTS", "3")
	t.Setenv("TIMEOUT_REMOTE", "500ms")
	t.Setenv("SESSION_REDIS_URL", "redis://cache:6379/1")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "18080", cfg.HTTP.Port)
	require.Equal(t, 3, cfg.Pagination.Bots)
	require.Equal(t, 500*time.Millisecond, cfg.Timeouts.Remote)
	require.Equal(t, "redis://cache:6379/1", cfg.Session.RedisURL)
}

// «Только ENV» без файлов.
func TestLoad_EnvOnly_OK(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	t.Setenv("ENV", "dev")
	t.Setenv("HTTP_PORT", "50090")
	t.Setenv("REMOTE_BASE_URL", "http://remote.local:3000")
	t.Setenv("AUTH_LOGIN_URL", "https://login.example")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "50090", cfg.HTTP.Port)
	require.Equal(t, "http://remote.local:3000", cfg.Remote.BaseURL)
	require.Equal(t, "https://login.example", cfg.Auth.LoginURL)
	require.Equal(t, 15*time.Second, cfg.Timeouts.Service)
}

func TestMustLoad_OK(t *testing.T) {
	t.Parallel()

	cfg := MustLoad(writeFile(t, t.TempDir(), "ok.yaml", minimalYAML))
	require.NotNil(t, cfg)
	require.Equal(t, "dev", cfg.Env)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
