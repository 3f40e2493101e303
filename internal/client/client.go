// Package client is the Go counterpart of the dashboard's API wrapper: one
// method per remote operation, parsed envelopes returned as they come, no
// retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// APIError is a response the server answered with success:false or a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

type status struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// do sends a JSON request and decodes the JSON envelope into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	return decode(resp.StatusCode, raw, out)
}

func decode(code int, raw []byte, out any) error {
	var st status
	if err := json.Unmarshal(raw, &st); err != nil {
		if code >= http.StatusBadRequest {
			return &APIError{Status: code, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if code >= http.StatusBadRequest || (st.Success != nil && !*st.Success) {
		return &APIError{Status: code, Message: st.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Download is a file returned by an export endpoint.
type Download struct {
	Name        string
	ContentType string
	Data        []byte
}

func (c *Client) download(ctx context.Context, method, path string, body any, fallback string) (*Download, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decode(resp.StatusCode, raw, nil)
	}

	return &Download{
		Name:        fileName(resp.Header.Get("Content-Disposition"), fallback),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        raw,
	}, nil
}

// fileName returns the last element of the server's suggested name so a
// download never lands outside the chosen directory.
func fileName(disposition, fallback string) string {
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return fallback
	}
	name := path.Base(strings.ReplaceAll(params["filename"], `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		return fallback
	}
	return name
}

func escape(id string) string {
	return url.PathEscape(id)
}
