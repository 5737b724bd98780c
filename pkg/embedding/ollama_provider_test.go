package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProviderEmbedNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)

		var req ollamaEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, []string{"I have fever"}, req.Input)

		_ = json.NewEncoder(w).Encode(ollamaEmbedResponse{Embeddings: [][]float64{{3, 4}}})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "")
	vec, err := p.Embed(context.Background(), "I have fever")
	require.NoError(t, err)

	require.Len(t, vec, 2)
	assert.InDelta(t, 0.6, vec[0], 1e-6)
	assert.InDelta(t, 0.8, vec[1], 1e-6)
}

func TestOllamaProviderEmbedBatch(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req ollamaEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		resp := ollamaEmbedResponse{}
		for range req.Input {
			resp.Embeddings = append(resp.Embeddings, []float64{0, 2, 0})
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "m")
	vecs, err := p.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	assert.Equal(t, []float32{0, 1, 0}, vecs[2])
	assert.Equal(t, 1, calls)

	empty, err := p.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Equal(t, 1, calls)
}

func TestOllamaProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non 200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not found", http.StatusNotFound)
			},
		},
		{
			name: "empty vector",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"embeddings": [[]]}`))
			},
		},
		{
			name: "vector count mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"embeddings": []}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewOllamaProvider(srv.URL, "m").Embed(context.Background(), "x")
			assert.Error(t, err)
		})
	}
}

func TestNormalizeVectorZero(t *testing.T) {
	vec := normalizeVector([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, vec)

	unit := normalizeVector([]float32{2, 2, 2, 2})
	var sum float64
	for _, v := range unit {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-6)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider("ollama", "", "", "", "")
	require.NoError(t, err)
	assert.IsType(t, &OllamaProvider{}, p)

	p, err = NewProvider("openai", "", "", "sk-test", "")
	require.NoError(t, err)
	assert.IsType(t, &OpenAIProvider{}, p)

	_, err = NewProvider("gemini", "", "", "", "")
	assert.Error(t, err)
}
