// Package api is the typed HTTP client for the canteen backend. Every call
// goes through one dispatch path: circuit breaker, otel-instrumented
// transport, then the {success, message} response envelope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	// ErrBackendRejected means a response arrived but was marked unsuccessful.
	ErrBackendRejected = errors.New("backend rejected request")
	// ErrTransport covers network failures, timeouts and an open breaker.
	ErrTransport = errors.New("backend unreachable")
)

type authMode int

const (
	authNone authMode = iota
	authSession
	authBearer
)

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func NewClient(baseURL string) *Client {
	settings := gobreaker.Settings{
		Name:        "canteen-backend",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   15 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	CartData json.RawMessage `json:"cartData"`
}

func (c *Client) do(ctx context.Context, method, path string, auth authMode, token string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch auth {
	case authSession:
		req.Header.Set("token", token)
	case authBearer:
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: status %d", ErrBackendRejected, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}

// doChecked dispatches and additionally enforces the success flag.
func (c *Client) doChecked(ctx context.Context, method, path string, auth authMode, token string, body any) (*envelope, error) {
	env, err := c.do(ctx, method, path, auth, token, body)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrBackendRejected, env.Message)
		}
		return nil, ErrBackendRejected
	}
	return env, nil
}
