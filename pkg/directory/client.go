// Package directory is the read-only client for the resource/bouncer
// directory that populates the builder's target selectors. Directory
// failures are never fatal: an unreachable or unauthorized directory yields
// empty, degraded listings and the selectors disable themselves.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Resource is an external system/API endpoint a policy protects.
type Resource struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// BouncerID is the enforcement point paired 1:1 with this resource.
	// Selecting the resource auto-populates it on the draft.
	BouncerID string `json:"bouncer_id"`
}

// Bouncer is an enforcement point (PEP) that applies policies to a resource
// at runtime.
type Bouncer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind,omitempty"`
}

// Listing wraps a directory result with a degradation flag. Degraded is true
// when the directory was unreachable or rejected the caller; the items are
// then empty and the UI disables the selector instead of erroring.
type Listing[T any] struct {
	Items    []T
	Degraded bool

	// Reason explains a degraded listing, for display ("log in again",
	// "start the backend"). Empty when not degraded.
	Reason string
}

// Config configures the directory client.
type Config struct {
	// BaseURL is the directory API root.
	BaseURL string

	// Token returns the current bearer token, or "".
	Token func() string

	// Timeout bounds each request. Default: 5s.
	Timeout time.Duration
}

// Client fetches resources and bouncers.
type Client struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

// New creates a directory client.
func New(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: slog.Default().With("component", "directory.client"),
	}
}

// Resources lists the resources the caller may target. Failures degrade.
func (c *Client) Resources(ctx context.Context) Listing[Resource] {
	return fetchList[Resource](c, ctx, "/resources", "resources")
}

// Bouncers lists the known enforcement points. Failures degrade.
func (c *Client) Bouncers(ctx context.Context) Listing[Bouncer] {
	return fetchList[Bouncer](c, ctx, "/bouncers", "bouncers")
}

// ResourceSchema fetches the attribute schema for a resource, used to offer
// attribute completions in the rule editor. Failures degrade to nil.
func (c *Client) ResourceSchema(ctx context.Context, resourceID string) map[string]any {
	var schema map[string]any
	if err := c.get(ctx, "/resources/"+resourceID+"/schema", &schema); err != nil {
		c.logger.Debug("resource schema unavailable", "resource_id", resourceID, "error", err)
		return nil
	}
	return schema
}

func fetchList[T any](c *Client, ctx context.Context, path, key string) Listing[T] {
	var payload map[string][]T
	if err := c.get(ctx, path, &payload); err != nil {
		c.logger.Debug("directory listing degraded", "path", path, "error", err)
		return Listing[T]{Degraded: true, Reason: degradeReason(err)}
	}
	return Listing[T]{Items: payload[key]}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("directory returned status %d", e.code)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return err
	}
	if c.config.Token != nil {
		if token := c.config.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &statusError{code: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func degradeReason(err error) string {
	if se, ok := err.(*statusError); ok {
		if se.code == http.StatusUnauthorized || se.code == http.StatusForbidden {
			return "authentication required; log in again"
		}
		return fmt.Sprintf("directory unavailable (status %d)", se.code)
	}
	return "directory unreachable; check that the backend is running"
}
