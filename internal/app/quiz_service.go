package app

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"wiki-quiz-service/internal/domain"
)

// DefaultSourceMarker is the domain fragment a source URL must contain.
const DefaultSourceMarker = "wikipedia.org"

// Generator produces a raw quiz from a source article URL.
type Generator interface {
	Generate(ctx context.Context, url string) (domain.QuizRecordRaw, error)
}

// QuizStore persists generated quizzes.
type QuizStore interface {
	SaveQuiz(ctx context.Context, rec domain.QuizRecordRaw) (int64, error)
	ListQuizzes(ctx context.Context) ([]domain.HistoryEntry, error)
}

// QuizRepository loads stored quizzes (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID int64) (domain.QuizRecordRaw, error)
	Forget(ctx context.Context, quizID int64)
}

// SessionRepository abstracts how session snapshots are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Save(ctx context.Context, state domain.SessionState) error
	Load(ctx context.Context, sessionID string) (domain.SessionState, error)
	Delete(ctx context.Context, sessionID string) error
}

// Option customizes a QuizService.
type Option func(*QuizService)

// WithSourceMarker overrides the domain fragment accepted by Generate.
func WithSourceMarker(marker string) Option {
	return func(s *QuizService) {
		if marker != "" {
			s.sourceMarker = marker
		}
	}
}

// WithIDGenerator replaces the session ID source; tests use it for stable IDs.
func WithIDGenerator(next func() string) Option {
	return func(s *QuizService) { s.newID = next }
}

// QuizService contains the quiz use cases.
type QuizService struct {
	generator    Generator
	store        QuizStore
	quizzes      QuizRepository
	sessions     SessionRepository
	sourceMarker string
	newID        func() string
}

func NewQuizService(generator Generator, store QuizStore, quizzes QuizRepository, sessions SessionRepository, opts ...Option) *QuizService {
	s := &QuizService{
		generator:    generator,
		store:        store,
		quizzes:      quizzes,
		sessions:     sessions,
		sourceMarker: DefaultSourceMarker,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateSourceURL rejects URLs the generator would not recognize.
func (s *QuizService) ValidateSourceURL(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.ErrURLRequired
	}
	if !strings.Contains(url, s.sourceMarker) {
		return domain.ErrInvalidSourceURL
	}
	return nil
}

// Generate asks the generator for a new quiz, stores it, and returns it normalized.
// A failed save is logged and the quiz is still returned, without an ID.
func (s *QuizService) Generate(ctx context.Context, url string) (domain.QuizRecord, error) {
	if err := s.ValidateSourceURL(url); err != nil {
		return domain.QuizRecord{}, err
	}
	url = strings.TrimSpace(url)

	raw, err := s.generator.Generate(ctx, url)
	if err != nil {
		return domain.QuizRecord{}, err
	}
	if raw.URL == "" {
		raw.URL = url
	}

	decoded, err := DecodeLegacy(raw)
	if err != nil {
		return domain.QuizRecord{}, err
	}
	record := NormalizeRecord(decoded, GeneratedDifficulty)

	id, err := s.store.SaveQuiz(ctx, raw)
	if err != nil {
		log.Printf("warning: could not save quiz for %s: %v", url, err)
		return record, nil
	}
	record.ID = id
	s.quizzes.Forget(ctx, id)
	return record, nil
}

// History lists stored quizzes, newest first.
func (s *QuizService) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	return s.store.ListQuizzes(ctx)
}

// Quiz loads a stored quiz for review.
func (s *QuizService) Quiz(ctx context.Context, quizID int64) (domain.QuizRecord, error) {
	raw, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.QuizRecord{}, err
	}
	decoded, err := DecodeLegacy(raw)
	if err != nil {
		return domain.QuizRecord{}, err
	}
	record := NormalizeRecord(decoded, ReviewDifficulty)
	if record.ID == 0 {
		record.ID = quizID
	}
	return record, nil
}

// StartSession opens a new session over a stored quiz's questions.
func (s *QuizService) StartSession(ctx context.Context, quizID int64) (domain.SessionState, error) {
	quiz, err := s.Quiz(ctx, quizID)
	if err != nil {
		return domain.SessionState{}, err
	}
	session := NewSession(s.newID(), quiz.ID, quiz.Questions)
	state := session.Snapshot()
	if err := s.sessions.Save(ctx, state); err != nil {
		return domain.SessionState{}, err
	}
	return state, nil
}

// Session returns the stored state of a session.
func (s *QuizService) Session(ctx context.Context, sessionID string) (domain.SessionState, error) {
	return s.sessions.Load(ctx, sessionID)
}

// SelectAnswer records an answer for one question of a session.
func (s *QuizService) SelectAnswer(ctx context.Context, sessionID string, index int, option string) (domain.SessionState, error) {
	return s.update(ctx, sessionID, func(session *Session) error {
		return session.SelectAnswer(index, option)
	})
}

// Advance moves a session forward, finishing it from the last question.
func (s *QuizService) Advance(ctx context.Context, sessionID string) (domain.SessionState, error) {
	return s.update(ctx, sessionID, (*Session).Advance)
}

// Retreat moves a session back one question.
func (s *QuizService) Retreat(ctx context.Context, sessionID string) (domain.SessionState, error) {
	return s.update(ctx, sessionID, (*Session).Retreat)
}

// Reset restarts a session over the same questions.
func (s *QuizService) Reset(ctx context.Context, sessionID string) (domain.SessionState, error) {
	return s.update(ctx, sessionID, func(session *Session) error {
		session.Reset()
		return nil
	})
}

// Score reports the current score of a session, finished or not.
func (s *QuizService) Score(ctx context.Context, sessionID string) (domain.Score, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return domain.Score{}, err
	}
	return Score(state.Questions, state.Answers), nil
}

// EndSession discards a session.
func (s *QuizService) EndSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *QuizService) update(ctx context.Context, sessionID string, op func(*Session) error) (domain.SessionState, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return domain.SessionState{}, err
	}
	session, err := RestoreSession(state)
	if err != nil {
		return domain.SessionState{}, err
	}
	if err := op(session); err != nil {
		return domain.SessionState{}, err
	}
	next := session.Snapshot()
	if err := s.sessions.Save(ctx, next); err != nil {
		return domain.SessionState{}, err
	}
	return next, nil
}
