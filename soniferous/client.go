// Package soniferous is a client for the soniferous music server JSON API.
package soniferous

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status: %d", e.Method, e.URL, e.Code)
	}
	return fmt.Sprintf("%s %s: unexpected status: %d, response: %s", e.Method, e.URL, e.Code, e.Body)
}

// Init creates a client for the server at baseURL. Empty credentials
// disable basic auth; a non-positive timeout uses the default.
func Init(baseURL, username, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Username:   username,
		Password:   password,
		HttpClient: &http.Client{Timeout: timeout},
	}
}

// endpoint joins path segments onto the base URL, escaping each one.
func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.BaseURL + "/" + strings.Join(escaped, "/")
}

func (c *Client) newRequest(ctx context.Context, method, requestURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Username != "" || c.Password != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, requestURL string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, requestURL)
	if err != nil {
		return err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Method: req.Method,
			URL:    requestURL,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", requestURL, err)
	}
	return nil
}
