// Package remote is the HTTP client for the optional palette API mirror.
// Every failure, including timeouts and non-2xx replies, wraps
// ErrRemoteUnavailable so callers can degrade to local-only behavior.
package remote

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

	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/stats"
)

var ErrRemoteUnavailable = errors.New("remote unavailable")

// DefaultTimeout bounds each request when the caller gives none.
const DefaultTimeout = 10 * time.Second

// Client talks to a palette API server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for baseURL with a per-request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// ColorRequest asks the server to interpret a color choice.
type ColorRequest struct {
	Color     string `json:"color"`
	Emotion   string `json:"emotion,omitempty"`
	Intensity int    `json:"intensity,omitempty"`
}

// ColorAnalysis is the server's reading of a color.
type ColorAnalysis struct {
	Color       string   `json:"color"`
	Family      string   `json:"family"`
	Tone        string   `json:"tone"`
	Keywords    []string `json:"keywords"`
	Suggestions []string `json:"suggestions"`
	Complement  string   `json:"complement"`
}

// TrendsRequest asks the server to analyze a period of its stored entries.
type TrendsRequest struct {
	Period string `json:"period"`
}

type listResponse struct {
	Data []*entry.Entry `json:"data"`
}

// Create posts e and returns the server's copy. A reply without an id is
// treated as a failure.
func (c *Client) Create(ctx context.Context, e *entry.Entry) (*entry.Entry, error) {
	var out entry.Entry
	if err := c.do(ctx, http.MethodPost, "/emotions", e, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("remote: create: response has no id: %w", ErrRemoteUnavailable)
	}
	return &out, nil
}

// List returns the entries dated within [start, end]. Empty bounds are
// omitted from the query.
func (c *Client) List(ctx context.Context, start, end string) ([]*entry.Entry, error) {
	q := url.Values{}
	if start != "" {
		q.Set("startDate", start)
	}
	if end != "" {
		q.Set("endDate", end)
	}
	path := "/emotions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out listResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Get(ctx context.Context, id string) (*entry.Entry, error) {
	var out entry.Entry
	if err := c.do(ctx, http.MethodGet, "/emotions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, patch entry.Patch) (*entry.Entry, error) {
	var out entry.Entry
	if err := c.do(ctx, http.MethodPut, "/emotions/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/emotions/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AnalyzeColor(ctx context.Context, req ColorRequest) (*ColorAnalysis, error) {
	var out ColorAnalysis
	if err := c.do(ctx, http.MethodPost, "/ai/analyze-color", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AnalyzeTrends(ctx context.Context, req TrendsRequest) (*stats.Analysis, error) {
	var out stats.Analysis
	if err := c.do(ctx, http.MethodPost, "/ai/analyze-trends", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c == nil || c.BaseURL == "" {
		return fmt.Errorf("remote: no base url configured: %w", ErrRemoteUnavailable)
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("remote: build %s %s: %v: %w", method, path, err, ErrRemoteUnavailable)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %v: %w", method, path, err, ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("remote: %s %s: status %d: %s: %w", method, path, resp.StatusCode, strings.TrimSpace(string(msg)), ErrRemoteUnavailable)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("remote: decode %s %s: %v: %w", method, path, err, ErrRemoteUnavailable)
	}
	return nil
}
