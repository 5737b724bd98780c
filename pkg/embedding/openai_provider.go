package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider calls the OpenAI embeddings API
type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return NewOpenAIProviderWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIProviderWithConfig allows a custom base URL or HTTP client
func NewOpenAIProviderWithConfig(config openai.ClientConfig, model string) *OpenAIProvider {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  openai.EmbeddingModel(model),
	}
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (p *OpenAIProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if p.client == nil {
		return nil, errors.New("openai client not initialized")
	}
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: p.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embedding error: got %d vectors for %d texts", len(resp.Data), len(texts))
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, fmt.Errorf("openai embedding error: index %d out of range", d.Index)
		}
		out[d.Index] = normalizeVector(d.Embedding)
	}
	return out, nil
}

// NewProvider picks the embedding backend by name
func NewProvider(providerType, ollamaBaseURL, ollamaModel, openAIKey, openAIModel string) (EmbeddingProvider, error) {
	switch providerType {
	case "ollama", "":
		return NewOllamaProvider(ollamaBaseURL, ollamaModel), nil
	case "openai":
		return NewOpenAIProvider(openAIKey, openAIModel), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
