// Package remote implements the HTTP/JSON client for the sync server. One
// Client carries the connection settings; per-collection access goes through
// Collection, which plugs into the sync engine.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nvoronin/daybook/internal/common"
	"github.com/nvoronin/daybook/internal/logging"
	"github.com/nvoronin/daybook/internal/models"
)

const defaultTimeout = 15 * time.Second

// TokenFunc supplies the bearer token for authenticated calls. An empty
// string means no token is available yet.
type TokenFunc func(ctx context.Context) string

// Client talks to the sync server's record API.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
	log     logging.Logger
}

func NewClient(baseURL string, token TokenFunc, log logging.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		token:   token,
		log:     log,
	}
}

// Health probes server reachability. It is the only unauthenticated call.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", common.ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// Count returns the number of live records the server holds for one
// (collection, owner) pair. Used by namespace verification before a switch.
func (c *Client) Count(ctx context.Context, kind models.Kind, owner string) (int, error) {
	u := fmt.Sprintf("%s/api/v1/%s/count?owner=%s", c.baseURL, kind, url.QueryEscape(owner))

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	var out struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("decode count: %w", err)
	}
	return out.Count, nil
}

// do runs one authenticated request and returns the response body.
func (c *Client) do(ctx context.Context, method, u string, payload []byte) ([]byte, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, common.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, common.ErrNotFound
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: server status %d", common.ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	return body, nil
}
