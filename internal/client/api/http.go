package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/goowi/internal/common"
	"github.com/dmitrijs2005/goowi/internal/logging"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// TokenSource returns the current bearer credential, or "" when logged out.
type TokenSource func() string

// UnauthorizedHandler is told about every 401 together with the token the
// rejected request carried.
type UnauthorizedHandler func(ctx context.Context, token string)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     logging.Logger

	mu             sync.RWMutex
	tokens         TokenSource
	onUnauthorized UnauthorizedHandler
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithRateLimit paces outgoing requests to rps with a burst of the same size.
// rps <= 0 disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetTokenSource wires the credential provider. It is a setter rather than
// an option because the session store that owns the token is itself built on
// top of this client.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

// SetUnauthorizedHandler wires the 401 listener.
func (c *HTTPClient) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens()
}

func (c *HTTPClient) unauthorized(ctx context.Context, token string) {
	c.mu.RLock()
	h := c.onUnauthorized
	c.mu.RUnlock()
	if h != nil {
		h(ctx, token)
	}
}

// do performs one request. in, when non-nil, is sent as JSON; the response
// body is handed to decode on 2xx. Non-2xx responses become *APIError.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, query url.Values, in any, decode func([]byte) error) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &APIError{Op: op, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
		}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &APIError{Op: op, Err: fmt.Errorf("%w: marshal request: %w", ErrRequest, err)}
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return &APIError{Op: op, Err: fmt.Errorf("%w: %w", ErrRequest, err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := c.token()
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "op", op, "error", err)
		return &APIError{Op: op, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%w: read response: %w", ErrUnavailable, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: backendMessage(respBody),
			Err:     statusError(resp.StatusCode),
		}
		c.log.Debug(ctx, "request rejected", "op", op, "status", resp.StatusCode, "message", apiErr.Message)
		if resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized(ctx, token)
		}
		return apiErr
	}

	if decode == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := decode(respBody); err != nil {
		return &APIError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%w: decode response: %w", ErrRequest, err)}
	}
	return nil
}

// into returns a decoder that unmarshals the whole body into v.
func into(v any) func([]byte) error {
	return func(b []byte) error { return json.Unmarshal(b, v) }
}

// backendMessage pulls "message" out of an error body. Validation failures
// may carry a list of messages, which are joined.
func backendMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	m := gjson.GetBytes(body, "message")
	if m.IsArray() {
		var parts []string
		for _, p := range m.Array() {
			parts = append(parts, p.String())
		}
		return strings.Join(parts, "; ")
	}
	if m.Exists() {
		return m.String()
	}
	return gjson.GetBytes(body, "error").String()
}
