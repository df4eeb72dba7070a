package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tagus/ontograph/pkg/logging"
)

// OllamaEmbedder implements Client against the Ollama embeddings API
type OllamaEmbedder struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	logger     logging.Logger
}

// Option represents an option for configuring the Ollama embedder
type Option func(*OllamaEmbedder)

// WithBaseURL sets the base URL for the Ollama API
func WithBaseURL(baseURL string) Option {
	return func(e *OllamaEmbedder) {
		e.BaseURL = baseURL
	}
}

// WithModel sets the embedding model
func WithModel(model string) Option {
	return func(e *OllamaEmbedder) {
		e.Model = model
	}
}

// WithHTTPClient sets the HTTP client for the embedder
func WithHTTPClient(httpClient *http.Client) Option {
	return func(e *OllamaEmbedder) {
		e.HTTPClient = httpClient
	}
}

// WithLogger sets the logger for the embedder
func WithLogger(logger logging.Logger) Option {
	return func(e *OllamaEmbedder) {
		e.logger = logger
	}
}

// NewOllamaEmbedder creates a new Ollama embedding client
func NewOllamaEmbedder(options ...Option) *OllamaEmbedder {
	embedder := &OllamaEmbedder{
		BaseURL:    "http://localhost:11434",
		Model:      "nomic-embed-text",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.New(),
	}

	for _, option := range options {
		option(embedder)
	}

	return embedder
}

// Ollama API request/response structures
type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed generates an embedding vector for a single text
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody, err := json.Marshal(embeddingRequest{Model: e.Model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/api/embeddings", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call embedding API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("embedding API returned an empty vector for model %q", e.Model)
	}

	return result.Embedding, nil
}

// EmbedBatch generates embedding vectors for multiple texts. The Ollama
// embeddings endpoint takes one prompt per call, so texts are embedded
// sequentially.
func (e *OllamaEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vector, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}
