// Package portal talks to the lernportal backend over HTTP.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/domain/outcome"
	"github.com/ksalp/lernportal/internal/pool"
	"github.com/ksalp/lernportal/internal/service"
	"github.com/ksalp/lernportal/internal/wire"
)

const defaultTimeout = 15 * time.Second

// Client is safe for concurrent use; the recorder calls it from workers.
type Client struct {
	baseURL string       // e.g. "http://localhost:8080"
	token   string       // bearer token, empty for guests
	client  *http.Client // reused across calls
}

// Compile-time checks: the client serves as bundle source and answer sink.
var (
	_ pool.Source        = (*Client)(nil)
	_ service.AnswerSink = (*Client)(nil)
)

// RequestError is returned when the backend is unreachable or answers
// with anything but success.
type RequestError struct {
	Reason  string
	Status  int // 0 if no response arrived
	Wrapped error
}

func (e *RequestError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("portal request failed: %s: %v", e.Reason, e.Wrapped)
	}
	if e.Status != 0 {
		return fmt.Sprintf("portal request failed: %s (status %d)", e.Reason, e.Status)
	}
	return fmt.Sprintf("portal request failed: %s", e.Reason)
}

func (e *RequestError) Unwrap() error {
	return e.Wrapped
}

type Option func(*Client)

// WithToken authenticates every request with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default client with a 15s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBundle loads learn sets, their exercises and, for a signed-in
// caller, prior stats.
func (c *Client) FetchBundle(ctx context.Context, learnSetIDs []string) (*pool.Bundle, error) {
	escaped := make([]string, len(learnSetIDs))
	for i, id := range learnSetIDs {
		escaped[i] = url.PathEscape(id)
	}

	var resp wire.BulkResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/learnsets/bulk/"+strings.Join(escaped, "."), nil, &resp); err != nil {
		return nil, err
	}

	bundle := &pool.Bundle{
		Stats:   make(map[string]outcome.Counter, len(resp.Stats)),
		Message: resp.Message,
	}
	if resp.LearnSets != nil {
		bundle.LearnSets = make([]learnset.LearnSet, len(resp.LearnSets))
		for i, ls := range resp.LearnSets {
			bundle.LearnSets[i] = ls.Domain()
		}
	}
	if resp.Exercises != nil {
		bundle.Exercises = make([]learnset.Exercise, len(resp.Exercises))
		for i, e := range resp.Exercises {
			bundle.Exercises[i] = e.Domain()
		}
	}
	for exerciseID, st := range resp.Stats {
		bundle.Stats[exerciseID] = st.Counter()
	}
	return bundle, nil
}

// RecordAnswer stores one answer outcome for the signed-in caller.
func (c *Client) RecordAnswer(ctx context.Context, a outcome.Answer) error {
	body := wire.AnswerRequest{Answer: &a.Submitted, Value: &a.Correct}

	var resp wire.StatusResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/learnsets/answer/"+url.PathEscape(a.ExerciseID), body, &resp); err != nil {
		return err
	}
	if resp.Status != wire.StatusSuccess {
		return &RequestError{Reason: "answer not acknowledged: " + resp.Message}
	}
	return nil
}

// Account resolves the identity behind the configured token.
func (c *Client) Account(ctx context.Context) (wire.AccountResponse, error) {
	var resp wire.AccountResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/account", nil, &resp)
	return resp, err
}

// ListLearnSets returns every learn set the backend knows.
func (c *Client) ListLearnSets(ctx context.Context) ([]learnset.LearnSet, error) {
	var resp wire.ListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/learnsets/list", nil, &resp); err != nil {
		return nil, err
	}
	sets := make([]learnset.LearnSet, len(resp.LearnSets))
	for i, ls := range resp.LearnSets {
		sets[i] = ls.Domain()
	}
	return sets, nil
}

// do sends a request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{Reason: method + " " + path, Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e wire.ErrorResponse
		reason := http.StatusText(resp.StatusCode)
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Message != "" {
			reason = e.Message
		}
		return &RequestError{Reason: reason, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Reason: "invalid response body", Status: resp.StatusCode, Wrapped: err}
	}
	return nil
}
