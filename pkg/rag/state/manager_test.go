package state

import (
	"testing"

	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestFocusIsSetOnce(t *testing.T) {
	m := NewManager(logger.NewNopLogger())
	s := &store.Session{ID: "s1", State: store.StateAwaitingFirstMessage}

	assert.True(t, m.Focus(s, "flu", []store.Candidate{{Condition: "flu"}}))
	assert.Equal(t, store.StateClarifying, s.State)

	assert.False(t, m.Focus(s, "migraine", nil))
	assert.Equal(t, "flu", s.ActiveCondition)
	assert.Len(t, s.Candidates, 1)
}

func TestRecordQuestionIgnoresDuplicates(t *testing.T) {
	m := NewManager(logger.NewNopLogger())
	s := &store.Session{ID: "s1"}

	assert.True(t, m.RecordQuestion(s, "fever?"))
	assert.False(t, m.RecordQuestion(s, "fever?"))
	assert.True(t, m.RecordQuestion(s, "cough?"))
	assert.Equal(t, []string{"fever?", "cough?"}, s.QuestionsAsked)
}

func TestAppendAndFinalize(t *testing.T) {
	m := NewManager(logger.NewNopLogger())
	s := &store.Session{ID: "s1", State: store.StateClarifying}

	m.Append(s, store.SpeakerUser, "hello")
	m.Append(s, store.SpeakerAssistant, "hi")
	m.Finalize(s, "prescription")

	assert.True(t, s.IsFinalized())
	assert.Equal(t, store.SpeakerUser, s.ChatHistory[0].Speaker)
	assert.Equal(t, "hi", s.ChatHistory[1].Content)
	assert.False(t, s.UpdatedAt.IsZero())
}
