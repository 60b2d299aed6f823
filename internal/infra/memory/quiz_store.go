package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"wiki-quiz-service/internal/domain"
)

// QuizStore keeps quizzes in process memory; it stands in for Postgres in
// tests and when no database is configured. Saving an existing URL replaces
// the quiz and keeps its ID.
type QuizStore struct {
	mu     sync.RWMutex
	clock  func() time.Time
	nextID int64
	byID   map[int64]domain.QuizRecordRaw
	byURL  map[string]int64
}

func NewQuizStore(seed ...domain.QuizRecordRaw) *QuizStore {
	s := &QuizStore{
		clock: time.Now,
		byID:  make(map[int64]domain.QuizRecordRaw),
		byURL: make(map[string]int64),
	}
	for _, rec := range seed {
		_, _ = s.SaveQuiz(context.Background(), rec)
	}
	return s
}

func (s *QuizStore) SaveQuiz(_ context.Context, rec domain.QuizRecordRaw) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.byURL[rec.URL]
	if exists && rec.URL != "" {
		rec.CreatedAt = s.byID[id].CreatedAt
	} else {
		s.nextID++
		id = s.nextID
		rec.CreatedAt = s.clock().UTC()
		if rec.URL != "" {
			s.byURL[rec.URL] = id
		}
	}
	rec.ID = id
	s.byID[id] = rec
	return id, nil
}

func (s *QuizStore) ListQuizzes(_ context.Context) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.HistoryEntry, 0, len(s.byID))
	for _, rec := range s.byID {
		entries = append(entries, domain.HistoryEntry{
			ID:        rec.ID,
			Title:     rec.Title,
			URL:       rec.URL,
			CreatedAt: rec.CreatedAt,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

func (s *QuizStore) LoadQuiz(_ context.Context, quizID int64) (domain.QuizRecordRaw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.byID[quizID]; ok {
		return rec, nil
	}
	return domain.QuizRecordRaw{}, domain.ErrQuizNotFound
}
