package openai

import (
	"context"
	"errors"
	"math"

	"rag-symptom-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider calls the OpenAI chat completion API
type OpenAIProvider struct {
	client    *goopenai.Client
	ModelName string
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, modelName string) *OpenAIProvider {
	return NewOpenAIProviderWithConfig(goopenai.DefaultConfig(apiKey), modelName)
}

// NewOpenAIProviderWithConfig allows a custom base URL or HTTP client
func NewOpenAIProviderWithConfig(config goopenai.ClientConfig, modelName string) *OpenAIProvider {
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		client:    goopenai.NewClientWithConfig(config),
		ModelName: modelName,
	}
}

// wireTemperature keeps a zero temperature on the wire. The request field is
// omitempty, and an omitted temperature makes the API sample at 1.0.
func wireTemperature(t float64) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if p.client == nil {
		return "", errors.New("openai client not initialized")
	}
	options := llm.ApplyOptions(0.2, opts...)

	msgs := make([]goopenai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		role := m.Role
		if role == "model" {
			role = goopenai.ChatMessageRoleAssistant
		}
		if role != goopenai.ChatMessageRoleSystem && role != goopenai.ChatMessageRoleUser && role != goopenai.ChatMessageRoleAssistant {
			// coerce anything unknown to user
			role = goopenai.ChatMessageRoleUser
		}
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: wireTemperature(options.Temperature),
		MaxTokens:   options.MaxTokens,
		Seed:        options.Seed,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: goopenai.ChatMessageRoleUser, Content: prompt}}, opts...)
}
