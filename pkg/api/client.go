// Package api is the client for the certificate backend: tab listing,
// range previews and the three generation endpoints.
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
	"time"

	"github.com/pluqqy/certadmin/pkg/request"
	"github.com/pluqqy/certadmin/pkg/sheets"
)

// Endpoint paths relative to the base URL.
const (
	PathTabs            = "/api/sheets/tabs"
	PathPreview         = "/api/sheets/preview"
	PathGenerate        = "/api/generate"
	PathGenerateOne     = "/api/generate/one"
	PathGeneratePreview = "/api/generate/preview"
)

// Client talks to one backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a client for baseURL. It fails when the URL is missing or
// not absolute so a misconfiguration surfaces at startup.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend API URL %q is not an absolute URL", baseURL)
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type tabsRequest struct {
	SheetID string `json:"sheetId"`
}

type tabsResponse struct {
	Tabs   []string `json:"tabs"`
	Sheets []struct {
		Title string `json:"title"`
	} `json:"sheets"`
}

// Tabs lists the tab names of a spreadsheet.
func (c *Client) Tabs(ctx context.Context, sheetID string) ([]string, error) {
	var resp tabsResponse
	if err := c.postJSON(ctx, PathTabs, tabsRequest{SheetID: sheetID}, &resp); err != nil {
		return nil, err
	}
	tabs := resp.Tabs
	if tabs == nil {
		for _, s := range resp.Sheets {
			if s.Title != "" {
				tabs = append(tabs, s.Title)
			}
		}
	}
	if len(tabs) == 0 {
		return nil, errNoTabs(PathTabs)
	}
	return tabs, nil
}

type previewRequest struct {
	SheetID string `json:"sheetId"`
	Range   string `json:"range"`
}

// Preview fetches the rows inside rangeString.
func (c *Client) Preview(ctx context.Context, sheetID, rangeString string) (*sheets.Dataset, error) {
	var ds sheets.Dataset
	if err := c.postJSON(ctx, PathPreview, previewRequest{SheetID: sheetID, Range: rangeString}, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Generate renders every row into a zip archive.
func (c *Client) Generate(ctx context.Context, payload request.Payload) ([]byte, error) {
	return c.postForm(ctx, PathGenerate, payload)
}

// GenerateOne renders a single row (payload must carry rowIndex).
func (c *Client) GenerateOne(ctx context.Context, payload request.Payload) ([]byte, error) {
	return c.postForm(ctx, PathGenerateOne, payload)
}

// GeneratePreview renders a single row as a PNG preview.
func (c *Client) GeneratePreview(ctx context.Context, payload request.Payload) ([]byte, error) {
	return c.postForm(ctx, PathGeneratePreview, payload)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errDecode(path, err)
	}
	return nil
}

func (c *Client) postForm(ctx context.Context, path string, payload request.Payload) ([]byte, error) {
	body, contentType, err := payload.Encode()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, path)
}

func (c *Client) do(req *http.Request, path string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errNetwork(path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errStatus(path, resp.StatusCode, body)
	}
	return body, nil
}
