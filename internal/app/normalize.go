package app

import "wiki-quiz-service/internal/domain"

const (
	// GeneratedDifficulty labels questions of a freshly generated quiz that carry no difficulty.
	GeneratedDifficulty = "Medium"
	// ReviewDifficulty labels stored questions without a difficulty; their level was never recorded.
	ReviewDifficulty = "N/A"
)

// Normalize resolves one raw question into its canonical form. The answer comes
// from the correct_answer index when one is present, and only otherwise from
// the answer string.
func Normalize(raw domain.RawQuestion, fallbackDifficulty string) domain.CanonicalQuestion {
	options := make([]string, len(raw.Options))
	copy(options, raw.Options)

	return domain.CanonicalQuestion{
		Text:        raw.Question,
		Options:     options,
		Answer:      resolveAnswer(raw, options),
		Difficulty:  firstNonEmpty(raw.Difficulty, raw.Level, fallbackDifficulty),
		Explanation: raw.Explanation,
	}
}

// NormalizeAll applies Normalize to every question, preserving order.
func NormalizeAll(raw []domain.RawQuestion, fallbackDifficulty string) []domain.CanonicalQuestion {
	out := make([]domain.CanonicalQuestion, 0, len(raw))
	for _, q := range raw {
		out = append(out, Normalize(q, fallbackDifficulty))
	}
	return out
}

// NormalizeRecord builds a QuizRecord from a decoded record.
func NormalizeRecord(rec domain.DecodedRecord, fallbackDifficulty string) domain.QuizRecord {
	return domain.QuizRecord{
		ID:            rec.ID,
		URL:           rec.URL,
		Title:         rec.Title,
		Summary:       rec.Summary,
		Questions:     NormalizeAll(rec.Questions, fallbackDifficulty),
		RelatedTopics: rec.RelatedTopics,
	}
}

func resolveAnswer(raw domain.RawQuestion, options []string) *string {
	if raw.CorrectAnswer != nil {
		idx := *raw.CorrectAnswer
		if idx < 0 || idx >= len(options) || options[idx] == "" {
			return nil
		}
		answer := options[idx]
		return &answer
	}
	if raw.Answer != "" {
		answer := raw.Answer
		return &answer
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
