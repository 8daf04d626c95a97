// Package upstream is the typed client for the backend REST API. The
// backend enforces all real business rules; this client only shapes
// requests, attaches the bearer token and maps failures into the
// portal's error taxonomy.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/config"
	apperrors "github.com/mustakbalak/portal/pkg/util"
)

// Auth identifies the calling portal session. An empty token means the
// call goes out unauthenticated.
type Auth struct {
	SessionID string
	Token     string
}

// ResponseStage inspects every upstream response before status handling.
// Stages must not consume the body.
type ResponseStage func(ctx context.Context, auth Auth, resp *http.Response)

// Client talks to the backend base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	stages  []ResponseStage
}

// New builds a client for the configured backend.
func New(cfg config.BackendConfig, logger *zap.Logger) *Client {
	httpClient := &http.Client{}
	if timeout := cfg.Timeout(); timeout > 0 {
		httpClient.Timeout = timeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// Use appends a response pipeline stage. Stages run in registration
// order for every response, regardless of status.
func (c *Client) Use(stage ResponseStage) {
	c.stages = append(c.stages, stage)
}

// errorEnvelope covers the message shapes the backend is known to send.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (e errorEnvelope) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Error != "":
		return e.Error
	default:
		return e.Details
	}
}

// do issues one request-response exchange. No retries; the caller's
// context is the only cancellation mechanism.
func (c *Client) do(ctx context.Context, auth Auth, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth.Token != "" {
		req.Header.Set("Authorization", "Bearer "+auth.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream unreachable", zap.String("path", path), zap.Error(err))
		return apperrors.NewConnectivityError(err)
	}
	defer resp.Body.Close()

	for _, stage := range c.stages {
		stage(ctx, auth, resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewConnectivityError(err)
	}

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		_ = json.Unmarshal(raw, &envelope)
		if resp.StatusCode == http.StatusUnauthorized {
			msg := envelope.text()
			if msg == "" {
				msg = "session expired, please log in again"
			}
			return apperrors.NewUnauthorized(msg)
		}
		c.logger.Debug("upstream rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", envelope.text()))
		return apperrors.NewUpstreamError(envelope.text(), resp.StatusCode)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

func (c *Client) get(ctx context.Context, auth Auth, path string, out any) error {
	return c.do(ctx, auth, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, auth Auth, path string, body, out any) error {
	return c.do(ctx, auth, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, auth Auth, path string, body, out any) error {
	return c.do(ctx, auth, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, auth Auth, path string, out any) error {
	return c.do(ctx, auth, http.MethodDelete, path, nil, out)
}
