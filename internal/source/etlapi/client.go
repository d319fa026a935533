// Package etlapi talks to the ETL backend that publishes the warehouse
// report feeds and runs the ETL job.
package etlapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dwh-dashboard/internal/source"
	"dwh-dashboard/internal/table"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// feedEnvelope is the shape of both report feeds.
type feedEnvelope struct {
	Data []table.Row `json:"data"`
}

// Fetch downloads the raw rows of one report feed.
func (c *Client) Fetch(ctx context.Context, d source.Domain) ([]table.Row, error) {
	const op = "etlapi.Client.Fetch"

	if _, err := source.ParseDomain(string(d)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var env feedEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/dwh/"+string(d), &env); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, d, err)
	}
	if env.Data == nil {
		env.Data = []table.Row{}
	}
	return env.Data, nil
}

// Status returns the backend's report of the last ETL run.
func (c *Client) Status(ctx context.Context) (map[string]any, error) {
	const op = "etlapi.Client.Status"

	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/api/etl/status", &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Run asks the backend to start an ETL run in the background.
func (c *Client) Run(ctx context.Context) (map[string]any, error) {
	const op = "etlapi.Client.Run"

	var out map[string]any
	if err := c.do(ctx, http.MethodPost, "/api/etl/run", &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
