package embedder

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// DefaultBatchSize is the number of texts sent per embedding request.
	DefaultBatchSize = 16

	// DefaultConcurrency bounds the number of in-flight embedding requests.
	DefaultConcurrency = 4

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 60 * time.Second
)

// OpenAIConfig configures an OpenAI-compatible embedding endpoint.
type OpenAIConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Dimensions int // optional; 0 means provider default
	Timeout    time.Duration

	// BatchSize is the number of texts per request (default DefaultBatchSize).
	BatchSize int

	// Concurrency bounds parallel requests (default DefaultConcurrency).
	Concurrency int

	// RequestsPerSecond enables client-side rate limiting when > 0.
	RequestsPerSecond float64
}

// OpenAIEmbedder calls an OpenAI-compatible embeddings API.
type OpenAIEmbedder struct {
	client      *openai.Client
	model       string
	dimensions  int
	batchSize   int
	concurrency int
	limiter     *rate.Limiter
}

// NewOpenAI creates an embedder against an OpenAI-compatible endpoint.
func NewOpenAI(cfg OpenAIConfig) (*OpenAIEmbedder, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	openaiCfg := openai.DefaultConfig(cfg.APIKey)
	openaiCfg.BaseURL = cfg.BaseURL

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	openaiCfg.HTTPClient = &http.Client{Timeout: timeout}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &OpenAIEmbedder{
		client:      openai.NewClientWithConfig(openaiCfg),
		model:       cfg.Model,
		dimensions:  cfg.Dimensions,
		batchSize:   batchSize,
		concurrency: concurrency,
		limiter:     limiter,
	}, nil
}

// Model returns the configured model name.
func (e *OpenAIEmbedder) Model() string { return e.model }

// Dimensions returns the configured output dimension, 0 for provider default.
func (e *OpenAIEmbedder) Dimensions() int { return e.dimensions }

// EmbedText embeds a single text.
func (e *OpenAIEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(vecs))
	}
	return vecs[0], nil
}

// EmbedTexts embeds texts in rate-limited batches with bounded concurrency.
// The returned vectors align positionally with the input texts.
func (e *OpenAIEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))

		g.Go(func() error {
			return e.embedBatch(ctx, texts[start:end], out[start:end])
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (e *OpenAIEmbedder) embedBatch(ctx context.Context, texts []string, out [][]float32) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}

	req := openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return err
	}
	if len(resp.Data) != len(texts) {
		return fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	// Rows are placed by their Index field rather than response order; the
	// API does not guarantee ordering.
	for _, row := range resp.Data {
		if row.Index < 0 || row.Index >= len(texts) {
			return fmt.Errorf("embedding index %d out of range [0,%d)", row.Index, len(texts))
		}
		if e.dimensions > 0 && len(row.Embedding) != e.dimensions {
			return fmt.Errorf("expected dimension %d, got %d", e.dimensions, len(row.Embedding))
		}
		vec := make([]float32, len(row.Embedding))
		copy(vec, row.Embedding)
		out[row.Index] = vec
	}

	return nil
}
