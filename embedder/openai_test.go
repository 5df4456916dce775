package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingsRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

// fakeEmbeddings serves an OpenAI-compatible embeddings endpoint that maps
// every text to a deterministic 2D vector.
func fakeEmbeddings(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/embeddings", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		var req embeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		type datum struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}

		data := make([]datum, len(req.Input))
		for i, text := range req.Input {
			data[i] = datum{
				Object:    "embedding",
				Embedding: []float32{float32(len(text)), 1},
				Index:     i,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
		})
	})

	return httptest.NewServer(mux)
}

func TestNewOpenAIValidation(t *testing.T) {
	_, err := NewOpenAI(OpenAIConfig{BaseURL: "http://localhost"})
	require.Error(t, err)

	_, err = NewOpenAI(OpenAIConfig{Model: "test-model"})
	require.Error(t, err)
}

func TestEmbedTexts(t *testing.T) {
	var requests atomic.Int64
	srv := fakeEmbeddings(t, &requests)
	defer srv.Close()

	e, err := NewOpenAI(OpenAIConfig{
		BaseURL:   srv.URL + "/v1",
		APIKey:    "test",
		Model:     "test-model",
		BatchSize: 2,
	})
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		vecs, err := e.EmbedTexts(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, vecs)
	})

	t.Run("AlignedBatches", func(t *testing.T) {
		requests.Store(0)

		texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
		vecs, err := e.EmbedTexts(ctx, texts)
		require.NoError(t, err)
		require.Len(t, vecs, len(texts))

		for i, text := range texts {
			assert.Equal(t, []float32{float32(len(text)), 1}, vecs[i])
		}

		// 5 texts at batch size 2 -> 3 requests.
		assert.Equal(t, int64(3), requests.Load())
	})
}

func TestEmbedTextsUnorderedResponse(t *testing.T) {
	// Rows come back in reverse order; vectors must still align with the
	// input texts via each row's index.
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/embeddings", func(w http.ResponseWriter, r *http.Request) {
		var req embeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		type datum struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}

		data := make([]datum, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			data = append(data, datum{
				Object:    "embedding",
				Embedding: []float32{float32(len(req.Input[i])), 1},
				Index:     i,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	e, err := NewOpenAI(OpenAIConfig{
		BaseURL: srv.URL + "/v1",
		APIKey:  "test",
		Model:   "test-model",
	})
	require.NoError(t, err)

	texts := []string{"a", "bb", "ccc"}
	vecs, err := e.EmbedTexts(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vecs, len(texts))

	for i, text := range texts {
		assert.Equal(t, []float32{float32(len(text)), 1}, vecs[i])
	}
}

func TestEmbedText(t *testing.T) {
	var requests atomic.Int64
	srv := fakeEmbeddings(t, &requests)
	defer srv.Close()

	e, err := NewOpenAI(OpenAIConfig{
		BaseURL: srv.URL + "/v1",
		APIKey:  "test",
		Model:   "test-model",
	})
	require.NoError(t, err)

	vec, err := e.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 1}, vec)
	assert.Equal(t, "test-model", e.Model())
}

func TestEmbedTextsDimensionCheck(t *testing.T) {
	var requests atomic.Int64
	srv := fakeEmbeddings(t, &requests)
	defer srv.Close()

	e, err := NewOpenAI(OpenAIConfig{
		BaseURL:    srv.URL + "/v1",
		APIKey:     "test",
		Model:      "test-model",
		Dimensions: 3, // fake server always returns 2D vectors
	})
	require.NoError(t, err)

	_, err = e.EmbedTexts(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Equal(t, 3, e.Dimensions())
}
