package response

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/llm"
	"rag-symptom-be/pkg/rag"
)

// maxAttempts is the first call plus one retry with identical input
const maxAttempts = 2

// Config controls decoding and hardening of generation calls
type Config struct {
	MaxTokens int
	Timeout   time.Duration
}

// DefaultConfig returns default generation configuration
func DefaultConfig() Config {
	return Config{
		MaxTokens: 256,
		Timeout:   60 * time.Second,
	}
}

// Generator produces the final answer text from a composed prompt
type Generator struct {
	llmProvider llm.LLMProvider
	config      Config
	logger      logger.ILogger
}

// NewGenerator creates a new response generator
func NewGenerator(llmProvider llm.LLMProvider, config Config, logger logger.ILogger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		config:      config,
		logger:      logger,
	}
}

// Generate runs deterministic decoding with a bounded timeout per attempt.
// Decoding is deterministic, so the retry only covers transient infra errors.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := g.attempt(ctx, prompt)
		if err == nil {
			g.logger.Info("GENERATOR", "Answer generated", map[string]interface{}{
				"attempt":       attempt,
				"prompt_length": len(prompt),
				"answer_length": len(text),
			})
			return text, nil
		}

		lastErr = err
		g.logger.Error("GENERATOR", "LLM generation failed", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})

		// Caller gave up; retrying would only burn the budget
		if ctx.Err() != nil {
			break
		}
	}

	return "", fmt.Errorf("%w: %v", rag.ErrGenerationFailed, lastErr)
}

func (g *Generator) attempt(ctx context.Context, prompt string) (string, error) {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	opts := []llm.Option{llm.WithDeterministic()}
	if g.config.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(g.config.MaxTokens))
	}

	text, err := g.llmProvider.Generate(ctx, prompt, opts...)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty completion")
	}
	return strings.TrimSpace(text), nil
}
