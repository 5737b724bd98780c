package response

import (
	"context"
	"errors"
	"testing"
	"time"

	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/llm"
	"rag-symptom-be/pkg/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLLM struct {
	replies []string
	errs    []error
	prompts []string
	opts    []*llm.Options
	block   bool
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, options...)
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	i := len(s.prompts)
	s.prompts = append(s.prompts, prompt)
	s.opts = append(s.opts, llm.ApplyOptions(0.7, options...))
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return "", errors.New("no scripted reply")
}

func TestGenerateSucceedsFirstTry(t *testing.T) {
	fake := &scriptedLLM{replies: []string{"  summary  "}}
	g := NewGenerator(fake, DefaultConfig(), logger.NewNopLogger())

	out, err := g.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "summary", out)
	assert.Len(t, fake.prompts, 1)

	opts := fake.opts[0]
	assert.Equal(t, float64(0), opts.Temperature)
	assert.Equal(t, 256, opts.MaxTokens)
	require.NotNil(t, opts.Seed)
}

func TestGenerateRetriesOnceWithIdenticalPrompt(t *testing.T) {
	fake := &scriptedLLM{
		errs:    []error{errors.New("connection reset"), nil},
		replies: []string{"", "recovered"},
	}
	g := NewGenerator(fake, DefaultConfig(), logger.NewNopLogger())

	out, err := g.Generate(context.Background(), "same prompt")
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Equal(t, []string{"same prompt", "same prompt"}, fake.prompts)
}

func TestGenerateFailsAfterSecondError(t *testing.T) {
	fake := &scriptedLLM{errs: []error{errors.New("a"), errors.New("b")}}
	g := NewGenerator(fake, DefaultConfig(), logger.NewNopLogger())

	_, err := g.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, rag.ErrGenerationFailed)
	assert.Len(t, fake.prompts, 2)
}

func TestGenerateTreatsBlankCompletionAsFailure(t *testing.T) {
	fake := &scriptedLLM{replies: []string{"   ", "\n"}}
	g := NewGenerator(fake, DefaultConfig(), logger.NewNopLogger())

	_, err := g.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, rag.ErrGenerationFailed)
}

func TestGenerateTimesOutEachAttempt(t *testing.T) {
	fake := &scriptedLLM{block: true}
	g := NewGenerator(fake, Config{MaxTokens: 10, Timeout: 20 * time.Millisecond}, logger.NewNopLogger())

	start := time.Now()
	_, err := g.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, rag.ErrGenerationFailed)
	assert.Len(t, fake.prompts, 2)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGenerateStopsWhenCallerCancelled(t *testing.T) {
	fake := &scriptedLLM{block: true}
	g := NewGenerator(fake, Config{Timeout: time.Second}, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, "p")
	assert.ErrorIs(t, err, rag.ErrGenerationFailed)
	assert.Len(t, fake.prompts, 1)
}
