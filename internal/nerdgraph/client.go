package nerdgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the production NerdGraph URL.
const DefaultEndpoint = "https://api.newrelic.com/graphql"

const defaultTimeout = 30 * time.Second

// Config carries the settings the client needs. It is passed in
// explicitly at construction; the client never reads ambient state.
type Config struct {
	// Endpoint is the NerdGraph URL. Empty selects DefaultEndpoint.
	Endpoint string

	// APIKey is sent in the Api-Key header on every request.
	APIKey string

	// Timeout bounds each call, in seconds. Zero or negative selects
	// a 30 second default.
	Timeout int
}

// Client executes GraphQL operations against a single NerdGraph
// endpoint. Each call performs exactly one HTTP exchange: no retries,
// no caching.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// NewClient constructs a Client from cfg. An empty API key is
// rejected here so that every Execute call is authenticated.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("nerdgraph: API key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
	}, nil
}

// request is the JSON body shape for a GraphQL HTTP request.
type request struct {
	Query     string `json:"query"`
	Variables Vars   `json:"variables,omitempty"`
}

// APIError is a failed GraphQL response: the top-level errors array
// was non-empty. Error renders every entry's message joined by ", "
// in response order.
type APIError struct {
	Errors []Error
}

func (e *APIError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, entry := range e.Errors {
		msgs[i] = entry.Message
	}
	return strings.Join(msgs, ", ")
}

// DecodeError is a response body that could not be decoded as a
// GraphQL envelope. Body holds the raw text so the caller can report
// what the server actually sent.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("decode response: %v (body: %q)", e.Err, body)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Execute sends one GraphQL operation and returns the decoded data
// field. When variables is nil or empty the "variables" key is omitted
// from the request body.
//
// The response body is decoded regardless of HTTP status: NerdGraph
// returns GraphQL error envelopes on non-2xx responses too, and those
// surface through the *APIError path rather than as a status failure.
//
// A response whose errors array is non-empty fails with *APIError and
// any partial data is discarded. A response with no errors and no data
// returns JSON null; callers must treat that as a valid empty result,
// not a failure.
func (c *Client) Execute(ctx context.Context, document string, variables Vars) (json.RawMessage, error) {
	bodyBytes, err := json.Marshal(request{Query: document, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("nerdgraph: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("nerdgraph: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nerdgraph: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nerdgraph: read response: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &DecodeError{Body: string(raw), Err: err}
	}

	if len(env.Errors) > 0 {
		return nil, &APIError{Errors: env.Errors}
	}

	if len(env.Data) == 0 {
		return json.RawMessage("null"), nil
	}
	return env.Data, nil
}
