package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tagus/ontograph/pkg/logging"
)

// Client executes SPARQL protocol operations against a triplestore over
// HTTP. Query execution is a single attempt; retry policy belongs to the
// caller.
type Client struct {
	BaseURL    string
	Dataset    string
	Username   string
	Password   string
	HTTPClient *http.Client
	logger     logging.Logger
}

// ClientOption represents an option for configuring the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL of the store
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.BaseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithDataset sets the dataset name
func WithDataset(dataset string) ClientOption {
	return func(c *Client) {
		c.Dataset = dataset
	}
}

// WithCredentials sets the credential pair passed through to the store
func WithCredentials(username, password string) ClientOption {
	return func(c *Client) {
		c.Username = username
		c.Password = password
	}
}

// WithHTTPClient sets the HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.HTTPClient = httpClient
	}
}

// WithClientLogger sets the logger for the client
func WithClientLogger(logger logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new store client
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		BaseURL:    "http://localhost:3030",
		Dataset:    "ontology",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.New(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// QueryURL returns the dataset's query endpoint
func (c *Client) QueryURL() string {
	return fmt.Sprintf("%s/%s/query", c.BaseURL, c.Dataset)
}

// UpdateURL returns the dataset's update endpoint
func (c *Client) UpdateURL() string {
	return fmt.Sprintf("%s/%s/update", c.BaseURL, c.Dataset)
}

// DataURL returns the dataset's graph store endpoint
func (c *Client) DataURL() string {
	return fmt.Sprintf("%s/%s/data", c.BaseURL, c.Dataset)
}

// Select submits query text to the store's query endpoint and decodes the
// tabular JSON result. Connection failures surface as *TransportError and
// failure statuses as *StoreError; both keep the offending query text.
func (c *Client) Select(ctx context.Context, query string) (*Results, error) {
	form := url.Values{"query": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.QueryURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "Store query transport failure", map[string]interface{}{
			"error": err.Error(),
			"url":   c.QueryURL(),
		})
		return nil, &TransportError{Query: query, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error(ctx, "Store query failed", map[string]interface{}{
			"status": resp.StatusCode,
			"query":  query,
		})
		return nil, &StoreError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body)), Query: query}
	}

	var results Results
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode store response: %w", err)
	}

	return &results, nil
}

// Update submits an update operation to the store. Trusted path only: the
// guarded gateway never routes caller text here.
func (c *Client) Update(ctx context.Context, update string) error {
	form := url.Values{"update": {update}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UpdateURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.authorize(req)

	return c.expectSuccess(ctx, req, update)
}

// UploadTurtle posts a Turtle document to the graph store endpoint.
func (c *Client) UploadTurtle(ctx context.Context, turtle string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.DataURL(), strings.NewReader(turtle))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/turtle")
	c.authorize(req)

	return c.expectSuccess(ctx, req, "")
}

// Ping checks that the dataset answers a trivial query.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Select(ctx, "ASK { }")
	return err
}

func (c *Client) authorize(req *http.Request) {
	if c.Username != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}
}

func (c *Client) expectSuccess(ctx context.Context, req *http.Request, query string) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &TransportError{Query: query, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &StoreError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body)), Query: query}
	}

	c.logger.Debug(ctx, "Store request succeeded", map[string]interface{}{
		"status": resp.StatusCode,
		"url":    req.URL.String(),
	})
	return nil
}
