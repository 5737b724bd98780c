package session

import (
	"context"
	"time"

	"rag-symptom-be/internal/repository/contract"
	"rag-symptom-be/pkg/store"

	"github.com/google/uuid"
)

// Manager handles session lifecycle on top of a session repository
type Manager struct {
	sessionRepo contract.SessionRepository
	now         func() time.Time
}

// NewManager creates a new session manager
func NewManager(sessionRepo contract.SessionRepository) *Manager {
	return &Manager{sessionRepo: sessionRepo, now: time.Now}
}

// Create starts a fresh session awaiting the first user message
func (m *Manager) Create(ctx context.Context) (*store.Session, error) {
	now := m.now().UTC()
	session := &store.Session{
		ID:             uuid.NewString(),
		State:          store.StateAwaitingFirstMessage,
		ChatHistory:    []store.ChatMessage{},
		QuestionsAsked: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := m.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Load returns rag.ErrSessionNotFound when the id is unknown or expired
func (m *Manager) Load(ctx context.Context, sessionID string) (*store.Session, error) {
	return m.sessionRepo.Get(ctx, sessionID)
}

// Save persists session state
func (m *Manager) Save(ctx context.Context, session *store.Session) error {
	return m.sessionRepo.Save(ctx, session)
}

func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.sessionRepo.Delete(ctx, sessionID)
}
