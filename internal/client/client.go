// Package client is the data-access layer front ends use to reach the
// saved routes API.
package client

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

	"routesync/internal/models/request_models"
	"routesync/internal/models/response_models"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotFound        = errors.New("route not found")
)

// APIError is any non-2xx answer other than 401 and 404. Message is the
// server's error text when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a client for the API rooted at baseURL that authenticates
// with token. An empty token sends no Authorization header.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) List(ctx context.Context) ([]response_models.SavedRouteResponse, error) {
	var routes []response_models.SavedRouteResponse
	if err := c.do(ctx, http.MethodGet, "/routes", nil, &routes); err != nil {
		return nil, err
	}
	if routes == nil {
		routes = []response_models.SavedRouteResponse{}
	}
	return routes, nil
}

func (c *Client) Create(ctx context.Context, req request_models.CreateSavedRouteRequest) (*response_models.SavedRouteResponse, error) {
	var route response_models.SavedRouteResponse
	if err := c.do(ctx, http.MethodPost, "/routes", req, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

func (c *Client) Get(ctx context.Context, id string) (*response_models.SavedRouteResponse, error) {
	var route response_models.SavedRouteResponse
	if err := c.do(ctx, http.MethodGet, "/routes/"+url.PathEscape(id), nil, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/routes/"+url.PathEscape(id), nil, nil)
}

// Feature returns the GeoJSON Feature of the route's primary path as sent
// by the server.
func (c *Client) Feature(ctx context.Context, id string) (json.RawMessage, error) {
	var feature json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/routes/"+url.PathEscape(id)+"/geojson", nil, &feature); err != nil {
		return nil, err
	}
	return feature, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusNotFound:
		return ErrNotFound
	}

	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
}
