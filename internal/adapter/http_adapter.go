// Package adapter contains the IO boundaries of pagecheck: HTTP transport and report files.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

const (
	contentTypeJSON = "application/json"

	// DefaultRequestTimeout bounds a single request when none is given.
	DefaultRequestTimeout = 30 * time.Second
)

var (
	// ErrRequestTimeout is returned when a single request exceeds its own timeout.
	ErrRequestTimeout = errors.New("request timed out")
	// ErrUnsupportedMethod is returned for methods other than GET and POST.
	ErrUnsupportedMethod = errors.New("unsupported method")
)

// HTTPAdapter performs one HTTP exchange and returns the fully read response.
type HTTPAdapter interface {
	Do(ctx context.Context, req m.Request) (*m.Response, error)
}

// LocalHTTPAdapter provides a concrete implementation using net/http.
type LocalHTTPAdapter struct {
	client *http.Client
}

// NewLocalHTTPAdapter constructs a LocalHTTPAdapter. Timeouts are applied per request.
func NewLocalHTTPAdapter() *LocalHTTPAdapter {
	return &LocalHTTPAdapter{client: &http.Client{}}
}

// NewLocalHTTPAdapterWithClient uses the given client, e.g. an httptest server client.
func NewLocalHTTPAdapterWithClient(client *http.Client) *LocalHTTPAdapter {
	return &LocalHTTPAdapter{client: client}
}

// Do issues the request with Content-Type application/json and an independent timeout.
func (a *LocalHTTPAdapter) Do(ctx context.Context, req m.Request) (*m.Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := a.newRequest(reqCtx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, a.wrapTransportError(ctx, reqCtx, req, timeout, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, a.wrapTransportError(ctx, reqCtx, req, timeout, err)
	}

	elapsed := time.Since(start)
	slog.Debug("request completed", "method", req.Method, "url", req.URL, "status", resp.StatusCode, "elapsed", elapsed)

	return &m.Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Elapsed:    elapsed,
	}, nil
}

func (a *LocalHTTPAdapter) newRequest(ctx context.Context, req m.Request) (*http.Request, error) {
	var body io.Reader

	switch req.Method {
	case http.MethodGet:
	case http.MethodPost:
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		body = bytes.NewReader(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, req.Method)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", contentTypeJSON)

	return httpReq, nil
}

// wrapTransportError separates a per-request timeout from a cancelled run.
func (a *LocalHTTPAdapter) wrapTransportError(parent, reqCtx context.Context, req m.Request, timeout time.Duration, err error) error {
	if parent.Err() != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL, parent.Err())
	}

	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		slog.Error("request timed out", "method", req.Method, "url", req.URL, "timeout", timeout)
		return fmt.Errorf("%s %s: %w after %s", req.Method, req.URL, ErrRequestTimeout, timeout)
	}

	slog.Error("request failed", "method", req.Method, "url", req.URL, "error", err)

	return fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
}
