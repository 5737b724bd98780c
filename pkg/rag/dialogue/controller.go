// Package dialogue implements the multi-turn consultation state machine:
// retrieve once, ask the condition's clarifying questions in order, then
// compose and generate the prescription summary.
package dialogue

import (
	"context"
	"errors"
	"strings"

	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/knowledge"
	"rag-symptom-be/pkg/rag"
	"rag-symptom-be/pkg/rag/prompt"
	"rag-symptom-be/pkg/rag/state"
	"rag-symptom-be/pkg/store"
)

// CandidateSelector ranks knowledge-base conditions for a query
type CandidateSelector interface {
	Select(ctx context.Context, query string, k int) ([]store.Candidate, error)
}

// TextGenerator produces the final answer for a composed prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Outcome string

const (
	OutcomeQuestion         Outcome = "QUESTION"
	OutcomeFinalized        Outcome = "FINALIZED"
	OutcomeNotFound         Outcome = "NOT_FOUND"
	OutcomeMissingEntry     Outcome = "MISSING_ENTRY"
	OutcomeGenerationFailed Outcome = "GENERATION_FAILED"
)

// Result is what one turn (or one single-shot ask) produced
type Result struct {
	Reply      string
	Outcome    Outcome
	Condition  string
	Candidates []store.Candidate
	// Prompt is the text sent to the generator, empty unless a prescription was composed
	Prompt string
	// Err carries the underlying failure for logging; it is never shown to users
	Err error
}

// Controller ties selector, composer and generator together. It holds no
// per-session state; sessions are passed in on every call.
type Controller struct {
	kb        *knowledge.Base
	selector  CandidateSelector
	generator TextGenerator
	states    *state.Manager
	topK      int
	logger    logger.ILogger
}

func NewController(
	kb *knowledge.Base,
	selector CandidateSelector,
	generator TextGenerator,
	states *state.Manager,
	topK int,
	logger logger.ILogger,
) *Controller {
	return &Controller{
		kb:        kb,
		selector:  selector,
		generator: generator,
		states:    states,
		topK:      topK,
		logger:    logger,
	}
}

// NextQuestion returns the first question not yet asked, in list order
func NextQuestion(questions []string, asked []string) (string, bool) {
	seen := make(map[string]struct{}, len(asked))
	for _, q := range asked {
		seen[q] = struct{}{}
	}
	for _, q := range questions {
		if _, ok := seen[q]; !ok {
			return q, true
		}
	}
	return "", false
}

// Turn advances the session by one user message. Infrastructure failures
// during retrieval are returned as errors and leave the session untouched;
// every other outcome is reported through Result and recorded in history.
func (c *Controller) Turn(ctx context.Context, session *store.Session, message string) (*Result, error) {
	if session.IsFinalized() {
		return nil, rag.ErrSessionFinalized
	}

	if session.ActiveCondition == "" {
		candidates, err := c.selector.Select(ctx, message, c.topK)
		if err != nil {
			return nil, err
		}

		c.states.Append(session, store.SpeakerUser, message)

		if len(candidates) == 0 {
			c.logger.Info("DIALOGUE", "No candidate for first message", map[string]interface{}{"session_id": session.ID})
			c.states.Append(session, store.SpeakerAssistant, rag.NoCandidateReply)
			c.states.Finalize(session, "no candidate")
			return &Result{Reply: rag.NoCandidateReply, Outcome: OutcomeNotFound, Err: rag.ErrNoCandidate}, nil
		}

		c.states.Focus(session, candidates[0].Condition, candidates)
	} else {
		c.states.Append(session, store.SpeakerUser, message)
	}

	condition, ok := c.kb.Get(session.ActiveCondition)
	if !ok {
		c.logger.Warn("DIALOGUE", "Retrieved condition missing from knowledge base", map[string]interface{}{
			"session_id": session.ID,
			"condition":  session.ActiveCondition,
		})
		reply := rag.MissingEntryReply(session.ActiveCondition)
		c.states.Append(session, store.SpeakerAssistant, reply)
		c.states.Finalize(session, "missing knowledge entry")
		return &Result{
			Reply:      reply,
			Outcome:    OutcomeMissingEntry,
			Condition:  session.ActiveCondition,
			Candidates: session.Candidates,
			Err:        rag.ErrMissingKnowledgeEntry,
		}, nil
	}

	if next, ok := NextQuestion(condition.Questions, session.QuestionsAsked); ok {
		c.states.RecordQuestion(session, next)
		c.states.Append(session, store.SpeakerAssistant, next)
		c.logger.Info("DIALOGUE", "Asked clarifying question", map[string]interface{}{
			"session_id": session.ID,
			"condition":  condition.Name,
			"asked":      len(session.QuestionsAsked),
			"total":      len(condition.Questions),
		})
		return &Result{
			Reply:      next,
			Outcome:    OutcomeQuestion,
			Condition:  condition.Name,
			Candidates: session.Candidates,
		}, nil
	}

	res := c.prescribe(ctx, condition, "")
	res.Candidates = session.Candidates
	c.states.Append(session, store.SpeakerAssistant, res.Reply)
	if res.Outcome == OutcomeFinalized {
		c.states.Finalize(session, "prescription")
	}
	return res, nil
}

// Ask is the single-turn flow: retrieve, take the top candidate and answer
// directly without clarifying questions.
func (c *Controller) Ask(ctx context.Context, question string, k int) (*Result, error) {
	if k <= 0 {
		k = c.topK
	}
	candidates, err := c.selector.Select(ctx, question, k)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &Result{Reply: rag.NoCandidateReply, Outcome: OutcomeNotFound, Candidates: []store.Candidate{}, Err: rag.ErrNoCandidate}, nil
	}

	top := candidates[0].Condition
	condition, ok := c.kb.Get(top)
	if !ok {
		c.logger.Warn("DIALOGUE", "Retrieved condition missing from knowledge base", map[string]interface{}{"condition": top})
		return &Result{
			Reply:      rag.MissingEntryReply(top),
			Outcome:    OutcomeMissingEntry,
			Condition:  top,
			Candidates: candidates,
			Err:        rag.ErrMissingKnowledgeEntry,
		}, nil
	}

	res := c.prescribe(ctx, condition, question)
	res.Candidates = candidates
	return res, nil
}

func (c *Controller) prescribe(ctx context.Context, condition knowledge.Condition, userQuestion string) *Result {
	promptText := prompt.Compose(condition, userQuestion)

	answer, err := c.generator.Generate(ctx, promptText)
	if err != nil {
		if !errors.Is(err, rag.ErrGenerationFailed) {
			err = errors.Join(rag.ErrGenerationFailed, err)
		}
		return &Result{
			Reply:     rag.GenerationFailedReply,
			Outcome:   OutcomeGenerationFailed,
			Condition: condition.Name,
			Prompt:    promptText,
			Err:       err,
		}
	}

	return &Result{
		Reply:     strings.TrimSpace(answer),
		Outcome:   OutcomeFinalized,
		Condition: condition.Name,
		Prompt:    promptText,
	}
}
