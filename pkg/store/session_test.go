package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionHasAsked(t *testing.T) {
	s := &Session{QuestionsAsked: []string{"Do you have fever?"}}
	assert.True(t, s.HasAsked("Do you have fever?"))
	assert.False(t, s.HasAsked("do you have fever?"))
}

func TestSessionCloneIsDeep(t *testing.T) {
	s := &Session{
		ID:             "abc",
		State:          StateClarifying,
		ChatHistory:    []ChatMessage{{Speaker: SpeakerUser, Content: "fever"}},
		QuestionsAsked: []string{"q1"},
		Candidates:     []Candidate{{ID: "cond_0", Condition: "flu"}},
	}

	c := s.Clone()
	c.ChatHistory[0].Content = "changed"
	c.QuestionsAsked = append(c.QuestionsAsked, "q2")
	c.Candidates[0].Condition = "cold"
	c.State = StateFinalized

	assert.Equal(t, "fever", s.ChatHistory[0].Content)
	assert.Equal(t, []string{"q1"}, s.QuestionsAsked)
	assert.Equal(t, "flu", s.Candidates[0].Condition)
	assert.False(t, s.IsFinalized())
	assert.Nil(t, (*Session)(nil).Clone())
}
