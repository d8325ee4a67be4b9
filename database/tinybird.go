package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"signal/analytics/config"
	"signal/analytics/domain"
)

// eventsDatasource is the backend datasource ingested events land in.
const eventsDatasource = "events"

// errorBodyLimit caps how much of a backend error body is carried into logs
// and error messages.
const errorBodyLimit = 200

// pipeNamePattern is the allow-list for pipe names. Checked before the name
// is interpolated into a URL path, so a caller can never steer the request
// at another backend endpoint.
var pipeNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var tinybirdClient *TinybirdClient

// TinybirdClient talks to the hosted analytics backend over its HTTP API:
// event ingestion on /v0/events and parameterized pipe queries on /v0/pipes.
type TinybirdClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewTinybirdClient builds a client for the configured backend.
func NewTinybirdClient(cfg *config.TinybirdConfig) *TinybirdClient {
	return &TinybirdClient{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.QueryTimeoutSeconds) * time.Second,
		},
	}
}

// InitTinybird initializes the shared backend client
func InitTinybird(cfg *config.TinybirdConfig) {
	tinybirdClient = NewTinybirdClient(cfg)
}

// GetTinybirdClient returns the shared backend client
func GetTinybirdClient() *TinybirdClient {
	return tinybirdClient
}

// Ingest appends one event to the events datasource. The per-send deadline
// comes from ctx; the client-level timeout is only a backstop.
func (c *TinybirdClient) Ingest(ctx context.Context, event *domain.EnrichedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	endpoint := c.baseURL + "/v0/events?name=" + eventsDatasource
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build ingest request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("events ingest returned %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}
	return nil
}

// QueryPipe runs a named pipe with query-string parameters and returns the
// rows from the {data: [...]} envelope. The pipe name is validated before
// any network I/O; backend failures wrap domain.ErrPipeFetch.
func QueryPipe[T any](ctx context.Context, c *TinybirdClient, pipe string, params map[string]string) ([]T, error) {
	if !pipeNamePattern.MatchString(pipe) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPipeName, pipe)
	}

	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	endpoint := c.baseURL + "/v0/pipes/" + pipe + ".json"
	if encoded := values.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrPipeFetch, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPipeFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: pipe %s returned %d: %s",
			domain.ErrPipeFetch, pipe, resp.StatusCode, readErrorBody(resp.Body))
	}

	var envelope struct {
		Data []T `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrPipeFetch, err)
	}
	return envelope.Data, nil
}

// TinybirdHealthCheck verifies that the backend answers authenticated
// requests. Any HTTP response below 500 counts as reachable.
func TinybirdHealthCheck(ctx context.Context) error {
	if tinybirdClient == nil {
		return fmt.Errorf("analytics backend client is not initialized")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tinybirdClient.baseURL+"/v0/pipes", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tinybirdClient.token)

	resp, err := tinybirdClient.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("analytics backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("analytics backend returned %d", resp.StatusCode)
	}
	return nil
}

func readErrorBody(body io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(body, errorBodyLimit))
	return string(b)
}
