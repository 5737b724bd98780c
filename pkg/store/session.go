package store

import "time"

// Candidate is a condition returned by retrieval for a query
type Candidate struct {
	ID        string  `json:"id"`
	Condition string  `json:"condition"`
	Document  string  `json:"doc"`
	Distance  float64 `json:"score"` // cosine distance, lower = closer
}

// ChatMessage is one entry of the session transcript
type ChatMessage struct {
	Speaker   string    `json:"speaker"` // "User" | "Assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the per-conversation state. It is owned by one caller at a time
// and passed into the dialogue controller on every turn.
type Session struct {
	ID    string `json:"id"`
	State string `json:"state"` // "AWAITING_FIRST_MESSAGE" | "CLARIFYING" | "FINALIZED"

	ChatHistory []ChatMessage `json:"chat_history"`

	// QuestionsAsked keeps insertion order; it is used as a set
	QuestionsAsked []string `json:"questions_asked"`

	// ActiveCondition is set once on first retrieval and never changes
	ActiveCondition string `json:"active_condition,omitempty"`

	// Candidates from the first retrieval, for display only
	Candidates []Candidate `json:"candidates,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	StateAwaitingFirstMessage = "AWAITING_FIRST_MESSAGE"
	StateClarifying           = "CLARIFYING"
	StateFinalized            = "FINALIZED"

	SpeakerUser      = "User"
	SpeakerAssistant = "Assistant"
)

// HasAsked reports whether question was already asked in this session
func (s *Session) HasAsked(question string) bool {
	for _, q := range s.QuestionsAsked {
		if q == question {
			return true
		}
	}
	return false
}

func (s *Session) IsFinalized() bool {
	return s.State == StateFinalized
}

// Clone returns a deep copy so repositories never share slices with callers
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.ChatHistory = append([]ChatMessage(nil), s.ChatHistory...)
	c.QuestionsAsked = append([]string(nil), s.QuestionsAsked...)
	c.Candidates = append([]Candidate(nil), s.Candidates...)
	return &c
}
