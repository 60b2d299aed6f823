package app

import (
	"testing"

	"wiki-quiz-service/internal/domain"
)

func answered(answers ...string) []domain.CanonicalQuestion {
	out := make([]domain.CanonicalQuestion, 0, len(answers))
	for _, a := range answers {
		a := a
		out = append(out, domain.CanonicalQuestion{Text: "Q", Answer: &a})
	}
	return out
}

func TestScoreRoundsPercentage(t *testing.T) {
	score := Score(answered("B", "D", "A"), map[int]string{0: "B", 1: "D", 2: "X"})
	if score != (domain.Score{Correct: 2, Total: 3, Percentage: 67}) {
		t.Fatalf("unexpected score: %+v", score)
	}
}

func TestScoreCountsUnansweredInTotal(t *testing.T) {
	score := Score(answered("A", "B"), map[int]string{0: "A"})
	if score.Correct != 1 || score.Total != 2 || score.Percentage != 50 {
		t.Fatalf("unexpected score: %+v", score)
	}
}

func TestScoreEmptyQuiz(t *testing.T) {
	score := Score(nil, nil)
	if score != (domain.Score{}) {
		t.Fatalf("expected zero score, got %+v", score)
	}
}

func TestUnresolvedAnswerNeverCorrect(t *testing.T) {
	questions := []domain.CanonicalQuestion{{Text: "Q", Options: []string{""}}}
	if IsCorrect(questions[0], map[int]string{0: ""}, 0) {
		t.Fatalf("expected question without answer to be incorrect")
	}
	if s := Score(questions, map[int]string{0: ""}); s.Correct != 0 || s.Total != 1 {
		t.Fatalf("unexpected score: %+v", s)
	}
}
