package app

import (
	"fmt"

	"wiki-quiz-service/internal/domain"
)

// Session walks one user through a fixed, ordered list of questions.
// It is not safe for concurrent use; callers serialize access.
type Session struct {
	id        string
	quizID    int64
	questions []domain.CanonicalQuestion
	current   int
	answers   map[int]string
	phase     domain.Phase
}

// NewSession starts an active session positioned on the first question.
// A session over zero questions finishes on its first Advance.
func NewSession(id string, quizID int64, questions []domain.CanonicalQuestion) *Session {
	return &Session{
		id:        id,
		quizID:    quizID,
		questions: cloneQuestions(questions),
		answers:   make(map[int]string),
		phase:     domain.PhaseActive,
	}
}

// RestoreSession rebuilds a session from a stored snapshot.
func RestoreSession(state domain.SessionState) (*Session, error) {
	if state.Phase != domain.PhaseActive && state.Phase != domain.PhaseFinished {
		return nil, fmt.Errorf("%w: unknown phase %q", domain.ErrCorruptSession, state.Phase)
	}
	n := len(state.Questions)
	if state.CurrentIndex < 0 || (n > 0 && state.CurrentIndex >= n) || (n == 0 && state.CurrentIndex != 0) {
		return nil, fmt.Errorf("%w: index %d outside %d questions", domain.ErrCorruptSession, state.CurrentIndex, n)
	}
	answers := make(map[int]string, len(state.Answers))
	for idx, option := range state.Answers {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: answer for unknown question %d", domain.ErrCorruptSession, idx)
		}
		answers[idx] = option
	}
	return &Session{
		id:        state.ID,
		quizID:    state.QuizID,
		questions: cloneQuestions(state.Questions),
		current:   state.CurrentIndex,
		answers:   answers,
		phase:     state.Phase,
	}, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) QuizID() int64 { return s.quizID }

func (s *Session) Phase() domain.Phase { return s.phase }

func (s *Session) CurrentIndex() int { return s.current }

func (s *Session) Len() int { return len(s.questions) }

func (s *Session) Finished() bool { return s.phase == domain.PhaseFinished }

// IsLast reports whether the cursor is on the final question.
func (s *Session) IsLast() bool { return s.current >= len(s.questions)-1 }

// Answer returns the option recorded for question index.
func (s *Session) Answer(index int) (string, bool) {
	option, ok := s.answers[index]
	return option, ok
}

// Current returns the question under the cursor; ok is false for an empty session.
func (s *Session) Current() (domain.CanonicalQuestion, bool) {
	if s.current >= len(s.questions) {
		return domain.CanonicalQuestion{}, false
	}
	return s.questions[s.current], true
}

// SelectAnswer records option as the answer to question index, replacing any
// earlier choice. The option is not checked against the question's options.
func (s *Session) SelectAnswer(index int, option string) error {
	if s.phase != domain.PhaseActive {
		return fmt.Errorf("select answer: %w: session is %s", domain.ErrInvalidTransition, s.phase)
	}
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("select answer: %w: no question %d", domain.ErrInvalidTransition, index)
	}
	s.answers[index] = option
	return nil
}

// Advance moves to the next question, or finishes the session from the last one.
func (s *Session) Advance() error {
	if s.phase != domain.PhaseActive {
		return fmt.Errorf("advance: %w: session is %s", domain.ErrInvalidTransition, s.phase)
	}
	if s.IsLast() {
		s.phase = domain.PhaseFinished
		return nil
	}
	s.current++
	return nil
}

// Retreat moves back one question; at the first question it does nothing.
func (s *Session) Retreat() error {
	if s.phase != domain.PhaseActive {
		return fmt.Errorf("retreat: %w: session is %s", domain.ErrInvalidTransition, s.phase)
	}
	if s.current > 0 {
		s.current--
	}
	return nil
}

// Reset returns the session to its initial state from either phase.
func (s *Session) Reset() {
	s.current = 0
	s.answers = make(map[int]string)
	s.phase = domain.PhaseActive
}

// Score reports the session's current outcome.
func (s *Session) Score() domain.Score {
	return Score(s.questions, s.answers)
}

// Snapshot copies the session into its serializable form.
func (s *Session) Snapshot() domain.SessionState {
	answers := make(map[int]string, len(s.answers))
	for idx, option := range s.answers {
		answers[idx] = option
	}
	return domain.SessionState{
		ID:           s.id,
		QuizID:       s.quizID,
		Questions:    cloneQuestions(s.questions),
		CurrentIndex: s.current,
		Answers:      answers,
		Phase:        s.phase,
	}
}

func cloneQuestions(in []domain.CanonicalQuestion) []domain.CanonicalQuestion {
	out := make([]domain.CanonicalQuestion, len(in))
	copy(out, in)
	return out
}
