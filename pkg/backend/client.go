// Package backend is the HTTP client for the policy platform's backend
// services: draft persistence, deployment, advisory linting, and smart
// suggestions. The backend owns policy storage and evaluation; this client
// only consumes its request/response contracts.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"kestrel-hq/forge/pkg/control/ast"
)

// Config configures the backend client.
type Config struct {
	// BaseURL is the backend API root (e.g. "https://api.example.com/v1").
	BaseURL string

	// Token returns the current bearer token, or "" when the user is not
	// authenticated. Calls without a token still go out; the backend answers
	// 401 and the builder degrades.
	Token func() string

	// Timeout bounds each request. Default: 10s.
	Timeout time.Duration
}

// Client talks to the policy backend.
type Client struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

// New creates a backend client.
func New(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: slog.Default().With("component", "backend.client"),
	}
}

// SaveDraft persists the draft and returns the backend-assigned policy id.
func (c *Client) SaveDraft(ctx context.Context, draft *ast.Draft) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, "save_draft", http.MethodPost, "/policies", draft, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Deploy promotes the policy with the given id to an environment.
func (c *Client) Deploy(ctx context.Context, policyID string, env Environment) error {
	if !env.Valid() {
		return &RequestError{Op: "deploy", Message: fmt.Sprintf("unknown environment %q", env)}
	}
	body := map[string]string{"environment": string(env)}
	path := fmt.Sprintf("/policies/%s/deploy", policyID)
	return c.do(ctx, "deploy", http.MethodPut, path, body, nil)
}

// Policy fetches a policy draft by id (edit mode).
func (c *Client) Policy(ctx context.Context, policyID string) (*ast.Draft, error) {
	var draft ast.Draft
	if err := c.do(ctx, "get_policy", http.MethodGet, "/policies/"+policyID, nil, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Lint submits source text to the advisory lint service. The result never
// mutates the draft.
func (c *Client) Lint(ctx context.Context, source string) ([]LintViolation, error) {
	body := map[string]string{"source": source}
	var resp struct {
		Violations []LintViolation `json:"violations"`
	}
	if err := c.do(ctx, "lint", http.MethodPost, "/lint", body, &resp); err != nil {
		return nil, err
	}
	return resp.Violations, nil
}

// Suggestions fetches smart suggestions for a resource.
func (c *Client) Suggestions(ctx context.Context, resourceID string) ([]Suggestion, error) {
	var resp struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	path := "/suggestions?resource_id=" + resourceID
	if err := c.do(ctx, "suggestions", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// do performs one request. Non-2xx responses and non-JSON bodies come back
// as *RequestError; callers convert them into degraded UI state, never a
// crash.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: op, Message: "encode request", Cause: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return &RequestError{Op: op, Message: "build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.Token != nil {
		if token := c.config.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{Op: op, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Bounded read keeps a misbehaving backend from ballooning errors.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Debug("backend request failed",
			"op", op,
			"status", resp.StatusCode,
		)
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Message: string(msg)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Message: "decode response", Cause: err}
	}
	return nil
}
