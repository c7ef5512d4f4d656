package zoominfo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// maxErrorBody caps how much of an error response is kept in a [StatusError].
const maxErrorBody = 4096

// newRequest creates a new HTTP request with a JSON body.
func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	body any,
) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)

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
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	return req, nil
}

// doJSON executes the request and decodes the JSON response into v.
// Numbers are kept as [json.Number] when v holds untyped values.
func (c *Client) doJSON(req *http.Request, v any) (*http.Response, error) {
	resp, err := c.do(req)
	if err != nil {
		return resp, err
	}
	if resp.Body != nil {
		defer resp.Body.Close()
	}

	if v != nil {
		dec := json.NewDecoder(resp.Body)
		dec.UseNumber()
		err = dec.Decode(v)
	}

	return resp, err
}

// do executes the request once. Transport errors are returned as-is; any
// non-2xx status becomes a [*StatusError].
func (c *Client) do(req *http.Request) (*http.Response, error) {
	c.logger.DebugContext(req.Context(), "request",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		return nil, err
	}

	c.logger.DebugContext(req.Context(), "response",
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
		if resp.Body != nil {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			statusErr.Body = string(bytes.TrimSpace(body))
			_ = resp.Body.Close()
		}

		return resp, statusErr
	}

	return resp, nil
}
