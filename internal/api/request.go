package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/supportchat/internal/errors"
	"github.com/diogo/supportchat/internal/models"
)

const (
	maxResponseBytes  = 8 << 20
	maxErrorBodyBytes = 4096
)

// do performs a request, retrying once after a browser session refresh when
// the API rejects the current session.
func (c *SupportClient) do(ctx context.Context, operation, method, path string, body []byte) ([]byte, error) {
	data, err := c.doOnce(ctx, operation, method, path, body)
	if err != nil && apierrors.IsAuthError(err) && c.IsBrowserRefreshEnabled() {
		refreshed, refreshErr := c.RefreshFromBrowser(ctx)
		if refreshErr != nil {
			c.logger.Warn("browser refresh failed", zap.Error(refreshErr))
		}
		if refreshed {
			return c.doOnce(ctx, operation, method, path, body)
		}
	}
	return data, err
}

func (c *SupportClient) doOnce(ctx context.Context, operation, method, path string, body []byte) ([]byte, error) {
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL.String() + path
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	requestID := c.newID()
	req.Header.Set("X-Request-ID", requestID)

	for name, value := range c.session.Snapshot() {
		if value == "" {
			continue
		}
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, classifyTransportError(ctx, operation, path, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		err := apierrors.FromStatus(resp.StatusCode, path, errorMessage(resp.StatusCode, errorBody))
		var apiErr *apierrors.APIError
		if errors.As(err, &apiErr) {
			apiErr.WithBody(string(bytes.TrimSpace(errorBody)))
		}
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransportError(ctx, operation, path, err)
	}
	return data, nil
}

// classifyTransportError maps a transport failure to a typed error
func classifyTransportError(ctx context.Context, operation, path string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(operation)
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%s: %w", operation, context.Canceled)
	}
	return apierrors.NewNetworkErrorWithEndpoint(operation, path, err)
}

// errorMessage extracts a human readable message from an error body.
// Express-style servers answer {"message": "..."}; others use "error".
func errorMessage(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		for _, path := range []string{"message", "error.message", "error"} {
			if v := parsed.Get(path); v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	if text := string(bytes.TrimSpace(body)); text != "" && len(text) <= 200 {
		return text
	}
	return http.StatusText(status)
}
