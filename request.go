package risika

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// apiPath builds the locale scoped path <version>/<locale><path>.
// Path arguments are escaped.
func (c *Client) apiPath(locale Locale, format string, args ...string) string {
	escaped := make([]any, len(args))
	for i, arg := range args {
		escaped[i] = url.PathEscape(arg)
	}

	return c.version + "/" + string(locale) + fmt.Sprintf(format, escaped...)
}

// newRequest creates a new HTTP request. path is resolved relative to the base URL.
func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	body any,
) (*http.Request, error) {
	rel, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse path: %w", err)
	}
	u := c.baseURL.ResolveReference(rel)

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", c.lang)
	req.Header.Set("User-Agent", c.userAgent)

	return req, nil
}

// doJSON executes the request and decodes JSON response.
func (c *Client) doJSON(req *http.Request, v any) (*http.Response, error) {
	resp, err := c.do(req)
	if err != nil {
		return resp, err
	}
	defer resp.Body.Close()

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return resp, fmt.Errorf("decode response: %w", err)
		}
	}

	return resp, nil
}

// do executes the request with a valid access token.
// Non-2xx responses are closed and returned as [*APIError].
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.wait(req.Context()); err != nil {
		return nil, err
	}

	token, err := c.Token(req.Context())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	apiErr := newAPIError(resp)

	if resp.StatusCode == http.StatusTooManyRequests {
		until, err := c.handleRetryAfter(resp.Header.Get("Retry-After"))
		if err != nil {
			c.logger.Warn("rate limited", zap.Error(err))
		} else {
			apiErr.RetryAfter = until
			c.logger.Warn("rate limited", zap.Time("retry_after", until))
		}
	}

	return resp, apiErr
}

// wait checks if the client is currently rate-limited.
// If so, it blocks until the reset time or until the context is canceled.
func (c *Client) wait(ctx context.Context) error {
	c.retryAfterMU.Lock()
	waitUntil := c.retryAfter
	c.retryAfterMU.Unlock()

	if time.Now().After(waitUntil) {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Until(waitUntil)):
		return nil
	}
}

// handleRetryAfter updates the client's retry-after timestamp based on the
// Retry-After header, given either in seconds or as an HTTP date.
func (c *Client) handleRetryAfter(header string) (time.Time, error) {
	if header == "" {
		return time.Time{}, fmt.Errorf("missing Retry-After header")
	}

	var t time.Time
	if secs, err := strconv.ParseInt(header, 10, 64); err == nil {
		if secs < 0 {
			return time.Time{}, fmt.Errorf("invalid Retry-After header %q", header)
		}
		t = time.Now().Add(time.Duration(secs) * time.Second)
	} else {
		t, err = http.ParseTime(header)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid Retry-After header %q: %w", header, err)
		}
	}

	c.retryAfterMU.Lock()
	defer c.retryAfterMU.Unlock()

	if t.After(c.retryAfter) {
		c.retryAfter = t
	}

	return t, nil
}
