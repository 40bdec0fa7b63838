// Package clients — REST-клиент удалённого API Simo.
// Каждый вызов: один запрос, один результат, без повторов.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ThisPythonJS/SimoWebsite/internal/clients/transport"
	"github.com/ThisPythonJS/SimoWebsite/internal/config"
)

const maxErrorBody = 4 << 10

// Client — клиент удалённого API.
type Client struct {
	base *url.URL
	http *http.Client
}

// New собирает клиент с цепочкой транспорта: metadata -> timeout -> logging -> metrics.
func New(cfg config.Config, log *slog.Logger, obs transport.Observer) (*Client, error) {
	const op = "internal/clients/New"

	if cfg.Remote.BaseURL == "" {
		return nil, fmt.Errorf("%s: empty remote base url", op)
	}

	base, err := url.Parse(strings.TrimRight(cfg.Remote.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}

	rt := transport.Chain(http.DefaultTransport,
		transport.WithMetadata(cfg.Remote.UserAgent),
		transport.WithTimeout(cfg.Timeouts.Remote),
		transport.WithLogging(log),
		transport.WithMetrics(obs),
	)

	return &Client{
		base: base,
		http: &http.Client{Transport: rt},
	}, nil
}

// WithToken кладёт в контекст токен пользователя для заголовка Authorization.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, transport.CtxAuthToken, token)
}

// Token возвращает токен из контекста.
func Token(ctx context.Context) string {
	tok, _ := ctx.Value(transport.CtxAuthToken).(string)
	return tok
}

// do выполняет запрос и декодирует JSON-ответ в out (если out != nil).
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", operation, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(transport.WithOperation(ctx, operation), method, u.String(), rdr)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", operation, ErrTransport, unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: %w", operation, readStatusError(resp))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%s: %w: %v", operation, ErrDecode, err)
	}

	return nil
}

func readStatusError(resp *http.Response) *StatusError {
	se := &StatusError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if len(raw) == 0 {
		return se
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		se.Message = payload.Message
		if se.Message == "" {
			se.Message = payload.Error
		}
		return se
	}

	se.Message = strings.TrimSpace(string(raw))

	return se
}

// unwrapURLError снимает *url.Error, чтобы context.Canceled/DeadlineExceeded
// находились через errors.Is без лишнего текста.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}

	return err
}
