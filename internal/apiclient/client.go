// Package apiclient is a small HTTP client for the REST API. It covers
// sign-in plus the sketch, view and explore endpoints used by scripted
// searches.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to one server and carries the bearer token obtained by
// SignIn.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

// SignIn exchanges credentials for a bearer token used by all later calls.
func (c *Client) SignIn(ctx context.Context, username, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/sign-in", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// Sketch is the client-side view of a sketch resource.
type Sketch struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// View is the client-side view of a saved search.
type View struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	SketchID    int    `json:"sketch_id"`
	QueryString string `json:"query_string"`
	QueryDSL    string `json:"query_dsl"`
	QueryFilter string `json:"query_filter"`
}

// ListSketches returns all non-deleted sketches.
func (c *Client) ListSketches(ctx context.Context) ([]Sketch, error) {
	var out struct {
		Objects []Sketch `json:"objects"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/sketches/", nil, &out); err != nil {
		return nil, err
	}
	return out.Objects, nil
}

// GetSketch fetches one sketch by ID.
func (c *Client) GetSketch(ctx context.Context, id int) (*Sketch, error) {
	var out Sketch
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/sketches/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetView fetches one saved view of a sketch.
func (c *Client) GetView(ctx context.Context, sketchID, viewID int) (*View, error) {
	var out View
	path := fmt.Sprintf("/api/v1/sketches/%d/views/%d", sketchID, viewID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one JSON request and decodes the JSON response into out when out
// is non-nil. Non-2xx responses come back as errors carrying the server's
// error message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
