package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"wiki-quiz-service/internal/domain"
)

// SessionStore persists session snapshots in Redis so any instance can serve
// the next operation of a session. Every save refreshes the TTL; a session
// idle for longer than the TTL is gone.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *SessionStore) Save(ctx context.Context, state domain.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.key(state.ID), data, s.ttl).Err()
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (domain.SessionState, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if isMiss(err) {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("load session: %w", err)
	}
	var state domain.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.SessionState{}, fmt.Errorf("%w: %v", domain.ErrCorruptSession, err)
	}
	if state.Answers == nil {
		state.Answers = map[int]string{}
	}
	return state, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
