package app

import (
	"math"

	"wiki-quiz-service/internal/domain"
)

// Score counts recorded answers that exactly match the canonical answer.
// Total is the size of the question list, answered or not; an empty list scores 0%.
func Score(questions []domain.CanonicalQuestion, answers map[int]string) domain.Score {
	total := len(questions)
	correct := 0
	for i, q := range questions {
		if IsCorrect(q, answers, i) {
			correct++
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(correct) / float64(total) * 100))
	}
	return domain.Score{Correct: correct, Total: total, Percentage: percentage}
}

// IsCorrect reports whether the answer recorded for question i matches q.
// A question without a resolved answer is never correct.
func IsCorrect(q domain.CanonicalQuestion, answers map[int]string, i int) bool {
	if q.Answer == nil {
		return false
	}
	selected, ok := answers[i]
	return ok && selected == *q.Answer
}
