// Package httpclient es el cliente JSON que usan los adapters que hablan con
// servicios externos (Odin).
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBody   = 1 << 20
	userAgent = "kittygram"
)

var ErrNoBaseURL = errors.New("httpclient: base url not set")

// Client manda requests JSON contra un BaseURL con headers fijos
// (api keys, etc.) y propaga el X-Request-ID del request entrante.
type Client struct {
	http    *http.Client
	base    *url.URL
	headers http.Header
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHeader agrega un header a todos los requests. Key vacía se ignora.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if strings.TrimSpace(key) != "" {
			c.headers.Set(key, value)
		}
	}
}

// New crea un Client. baseURL vacío es válido: el client queda sin
// configurar y cada request devuelve ErrNoBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		headers: make(http.Header),
	}

	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		u, err := url.Parse(strings.TrimRight(baseURL, "/"))
		if err != nil || !u.IsAbs() || u.Host == "" {
			return nil, fmt.Errorf("invalid base url %q", baseURL)
		}
		c.base = u
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Configured reporta si hay BaseURL.
func (c *Client) Configured() bool {
	return c != nil && c.base != nil
}

// StatusError es una respuesta no-2xx.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// HasStatus reporta si err es un *StatusError con alguno de los códigos.
func HasStatus(err error, codes ...int) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	for _, code := range codes {
		if se.StatusCode == code {
			return true
		}
	}
	return false
}

// PostJSON hace POST de in y decodifica la respuesta en out (si no es nil).
func (c *Client) PostJSON(ctx context.Context, path string, headers http.Header, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, headers, in, out)
}

// Do manda in como JSON (nil = sin body) y decodifica la respuesta en out.
// headers se suman a los del client para este request.
func (c *Client) Do(ctx context.Context, method, path string, headers http.Header, in, out any) error {
	if !c.Configured() {
		return ErrNoBaseURL
	}
	target := c.base.JoinPath(path).String()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	c.setHeaders(ctx, req, headers, in != nil)

	log := zerolog.Ctx(ctx)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("method", method).Str("url", target).Msg("upstream request failed")
		return fmt.Errorf("httpclient: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("upstream request")

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request, extra http.Header, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := hlog.IDFromCtx(ctx); ok {
		req.Header.Set("X-Request-ID", id.String())
	}
	for k, vs := range c.headers {
		req.Header[k] = vs
	}
	for k, vs := range extra {
		req.Header[k] = vs
	}
}
