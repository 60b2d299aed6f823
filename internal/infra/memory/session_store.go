package memory

import (
	"context"
	"sync"

	"wiki-quiz-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.SessionState
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.SessionState),
	}
}

func (s *SessionStore) Save(_ context.Context, state domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.ID] = copyState(state)
	return nil
}

func (s *SessionStore) Load(_ context.Context, sessionID string) (domain.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}
	return copyState(state), nil
}

func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// copyState detaches the answers map so callers cannot mutate stored state.
func copyState(state domain.SessionState) domain.SessionState {
	answers := make(map[int]string, len(state.Answers))
	for idx, option := range state.Answers {
		answers[idx] = option
	}
	state.Answers = answers
	return state
}
