package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThisPythonJS/SimoWebsite/pkg/log"

	"github.com/stretchr/testify/require"
)

type capHandler struct {
	mu      sync.Mutex
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   map[string]int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})
	if h.count == nil {
		h.count = make(map[string]int)
	}
	h.count[r.Message]++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func okResponse(r *http.Request) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Header:     http.Header{},
		Request:    r,
	}
}

func newRequest(ctx context.Context) *http.Request {
	r, _ := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.example/api/status", nil)
	return r
}

func TestWithMetadata_SetsHeaders(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), CtxRequestID, "rid-1")
	ctx = context.WithValue(ctx, CtxAuthToken, "tok-xyz")

	var got http.Header
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		got = r.Header.Clone()
		return okResponse(r), nil
	}), WithMetadata("simo-web"))

	orig := newRequest(ctx)
	_, err := rt.RoundTrip(orig)
	require.NoError(t, err)

	require.Equal(t, "rid-1", got.Get("X-Request-Id"))
	require.Equal(t, "User tok-xyz", got.Get("Authorization"))
	require.Equal(t, "simo-web", got.Get("User-Agent"))
	require.Empty(t, orig.Header.Get("Authorization"), "original request must stay untouched")
}

func TestWithMetadata_SkipsEmptyValues(t *testing.T) {
	t.Parallel()

	var got http.Header
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		got = r.Header.Clone()
		return okResponse(r), nil
	}), WithMetadata(""))

	_, err := rt.RoundTrip(newRequest(context.Background()))
	require.NoError(t, err)
	require.Empty(t, got.Get("X-Request-Id"))
	require.Empty(t, got.Get("Authorization"))
}

func TestWithTimeout_SetsDeadline(t *testing.T) {
	t.Parallel()

	const d = 40 * time.Millisecond
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		<-r.Context().Done()
		return nil, r.Context().Err()
	}), WithTimeout(d))

	start := time.Now()
	_, err := rt.RoundTrip(newRequest(context.Background()))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.GreaterOrEqual(t, time.Since(start), d)
}

func TestWithTimeout_DoesNotOverrideExistingDeadline(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	parentDL, _ := parent.Deadline()

	var childDL time.Time
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		childDL, _ = r.Context().Deadline()
		return okResponse(r), nil
	}), WithTimeout(time.Second))

	_, err := rt.RoundTrip(newRequest(parent))
	require.NoError(t, err)
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

func TestWithTimeout_BodyReadableUntilClose(t *testing.T) {
	t.Parallel()

	var reqCtx context.Context
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		reqCtx = r.Context()
		return okResponse(r), nil
	}), WithTimeout(time.Second))

	resp, err := rt.RoundTrip(newRequest(context.Background()))
	require.NoError(t, err)
	require.NoError(t, reqCtx.Err())

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "{}", string(b))

	require.NoError(t, resp.Body.Close())
	require.ErrorIs(t, reqCtx.Err(), context.Canceled)
}

func TestWithLogging_LogsAndPutsLoggerIntoContext(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		log.From(r.Context()).Info("probe")
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		return okResponse(r), nil
	}), WithLogging(slog.New(h)))

	_, err := rt.RoundTrip(newRequest(WithOperation(context.Background(), "status.get")))
	require.NoError(t, err)

	require.Equal(t, 1, h.count["probe"])
	require.Equal(t, "remote", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)
	require.Equal(t, "status.get", h.attrs["operation"])
	require.Equal(t, "/api/status", h.attrs["path"])
	require.EqualValues(t, http.StatusOK, h.attrs["status"])
}

func TestWithLogging_NeverLogsToken(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return okResponse(r), nil
	}), WithLogging(slog.New(h)))

	ctx := context.WithValue(context.Background(), CtxAuthToken, "secret-token")
	_, err := rt.RoundTrip(newRequest(ctx))
	require.NoError(t, err)

	require.Equal(t, "[REDACTED]", h.attrs["auth"])
	for _, v := range h.attrs {
		require.NotEqual(t, "secret-token", v)
	}
}

func TestWithLogging_TransportErrorIsWarn(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: refused")
	}), WithLogging(slog.New(h)))

	_, err := rt.RoundTrip(newRequest(context.Background()))
	require.Error(t, err)
	require.Equal(t, slog.LevelWarn, h.lastLvl)
	require.NotContains(t, h.attrs, "status")
}

type obsRecorder struct {
	op     string
	status int
	calls  int
}

func (o *obsRecorder) ObserveRemote(op string, status int, _ time.Duration) {
	o.op, o.status = op, status
	o.calls++
}

func TestWithMetrics_ObservesStatusAndOperation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	obs := &obsRecorder{}
	client := &http.Client{Transport: Chain(http.DefaultTransport, WithMetrics(obs))}

	req, _ := http.NewRequestWithContext(WithOperation(context.Background(), "bots.get"), http.MethodGet, srv.URL, nil)
	resp, err := client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, 1, obs.calls)
	require.Equal(t, "bots.get", obs.op)
	require.Equal(t, http.StatusNotFound, obs.status)
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mk := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return okResponse(r), nil
	}), mk("a"), mk("b"))

	_, err := rt.RoundTrip(newRequest(context.Background()))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "base"}, order)
}
