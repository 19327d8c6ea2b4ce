// Package apiclient talks to the order tracker REST service.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New builds a client for the tracker at baseURL. A zero timeout leaves
// requests unbounded; callers cancel through the context instead.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError is a response the server answered but refused: a non-2xx
// status, or success:false in the body.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tracker API error %d", e.StatusCode)
	}
	return fmt.Sprintf("tracker API error %d: %s", e.StatusCode, e.Message)
}

type requestIDKey struct{}

// WithRequestID makes outgoing calls made with ctx reuse id instead of minting one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// call checks the HTTP status only.
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	_, err := c.do(ctx, method, path, in, out)
	return err
}

// callChecked additionally treats success:false in a 2xx body as a failure.
func (c *Client) callChecked(ctx context.Context, method, path string, in, out any) error {
	env, err := c.do(ctx, method, path, in, out)
	if err != nil {
		return err
	}
	if env.Success != nil && !*env.Success {
		return &StatusError{StatusCode: env.status, Message: env.text()}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) (envelope, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return envelope{}, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return envelope{}, fmt.Errorf("failed to create request: %w", err)
	}
	rid := requestID(ctx)
	req.Header.Set(HeaderRequestID, rid)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "tracker_request",
		slog.String("request_id", rid),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	env := envelope{status: resp.StatusCode}
	if len(bytes.TrimSpace(raw)) > 0 {
		// A non-JSON error page still yields a StatusError below.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return env, &StatusError{StatusCode: resp.StatusCode, Message: env.text()}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return env, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return env, nil
}

// envelope is the {success, error, message} shape shared by every response.
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`

	status int
}

func (e envelope) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
