package state

import (
	"time"

	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/store"
)

// Manager handles session state transitions.
// AWAITING_FIRST_MESSAGE -> CLARIFYING -> FINALIZED, with a direct
// AWAITING_FIRST_MESSAGE -> FINALIZED edge when nothing matched.
type Manager struct {
	logger logger.ILogger
	now    func() time.Time
}

// NewManager creates a new state manager
func NewManager(logger logger.ILogger) *Manager {
	return &Manager{logger: logger, now: time.Now}
}

// Focus fixes the active condition. It is a no-op once a condition is set.
func (m *Manager) Focus(session *store.Session, condition string, candidates []store.Candidate) bool {
	if session.ActiveCondition != "" {
		m.logger.Warn("STATE", "Active condition already set, ignoring refocus", map[string]interface{}{
			"session_id": session.ID,
			"active":     session.ActiveCondition,
			"ignored":    condition,
		})
		return false
	}
	session.ActiveCondition = condition
	session.Candidates = candidates
	session.State = store.StateClarifying
	m.touch(session)
	m.logger.Info("STATE", "Transitioned to CLARIFYING", map[string]interface{}{
		"session_id": session.ID,
		"condition":  condition,
	})
	return true
}

// RecordQuestion marks a clarifying question as asked. Duplicates are ignored.
func (m *Manager) RecordQuestion(session *store.Session, question string) bool {
	if session.HasAsked(question) {
		return false
	}
	session.QuestionsAsked = append(session.QuestionsAsked, question)
	m.touch(session)
	return true
}

// Append adds a transcript entry
func (m *Manager) Append(session *store.Session, speaker, content string) {
	session.ChatHistory = append(session.ChatHistory, store.ChatMessage{
		Speaker:   speaker,
		Content:   content,
		CreatedAt: m.now(),
	})
	m.touch(session)
}

// Finalize moves the session to its terminal state
func (m *Manager) Finalize(session *store.Session, reason string) {
	session.State = store.StateFinalized
	m.touch(session)
	m.logger.Info("STATE", "Transitioned to FINALIZED", map[string]interface{}{
		"session_id": session.ID,
		"condition":  session.ActiveCondition,
		"reason":     reason,
	})
}

func (m *Manager) touch(session *store.Session) {
	session.UpdatedAt = m.now()
}
