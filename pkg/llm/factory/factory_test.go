package factory

import (
	"testing"

	"rag-symptom-be/pkg/llm/ollama"
	"rag-symptom-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider("ollama", "llama3", "", "")
	require.NoError(t, err)
	o, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", o.BaseURL)

	p, err = NewLLMProvider("openai", "", "", "sk-test")
	require.NoError(t, err)
	assert.IsType(t, &openai.OpenAIProvider{}, p)

	_, err = NewLLMProvider("openai", "", "", "")
	assert.Error(t, err)

	_, err = NewLLMProvider("huggingface", "", "", "")
	assert.Error(t, err)
}
