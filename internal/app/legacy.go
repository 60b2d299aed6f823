package app

import (
	"bytes"
	"encoding/json"
	"errors"

	"wiki-quiz-service/internal/domain"
)

const (
	fieldQuiz          = "quiz"
	fieldRelatedTopics = "related_topics"
)

// DecodeLegacy turns a stored or generated record into one whose quiz and
// related_topics fields are structured, unwrapping the JSON-string encoding
// older rows were written with.
func DecodeLegacy(rec domain.QuizRecordRaw) (domain.DecodedRecord, error) {
	quiz, err := UnwrapLegacyField(fieldQuiz, rec.Quiz)
	if err != nil {
		return domain.DecodedRecord{}, err
	}
	topics, err := UnwrapLegacyField(fieldRelatedTopics, rec.RelatedTopics)
	if err != nil {
		return domain.DecodedRecord{}, err
	}

	questions, err := decodeQuestions(quiz)
	if err != nil {
		return domain.DecodedRecord{}, &domain.MalformedLegacyFieldError{Field: fieldQuiz, Err: err}
	}
	related, err := decodeRelatedTopics(topics)
	if err != nil {
		return domain.DecodedRecord{}, &domain.MalformedLegacyFieldError{Field: fieldRelatedTopics, Err: err}
	}

	return domain.DecodedRecord{
		ID:            rec.ID,
		URL:           rec.URL,
		Title:         rec.Title,
		Summary:       rec.Summary,
		Questions:     questions,
		RelatedTopics: related,
		CreatedAt:     rec.CreatedAt,
	}, nil
}

// UnwrapLegacyField returns raw unchanged unless it is a JSON string, in which
// case the string's contents must themselves be valid JSON and are returned.
// Applying it to its own output is the identity.
func UnwrapLegacyField(field string, raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return raw, nil
	}

	var encoded string
	if err := json.Unmarshal(trimmed, &encoded); err != nil {
		return nil, &domain.MalformedLegacyFieldError{Field: field, Err: err}
	}
	inner := json.RawMessage(encoded)
	if !json.Valid(inner) {
		return nil, &domain.MalformedLegacyFieldError{Field: field, Err: errors.New("string does not contain valid JSON")}
	}
	return inner, nil
}

func decodeQuestions(raw json.RawMessage) ([]domain.RawQuestion, error) {
	if isNull(raw) {
		return []domain.RawQuestion{}, nil
	}
	var questions []domain.RawQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []domain.RawQuestion{}
	}
	return questions, nil
}

// decodeRelatedTopics accepts a topic-to-URL object or a bare list of topic names.
func decodeRelatedTopics(raw json.RawMessage) (map[string]string, error) {
	topics := map[string]string{}
	if isNull(raw) {
		return topics, nil
	}

	var byName map[string]string
	if err := json.Unmarshal(raw, &byName); err == nil {
		for name, url := range byName {
			topics[name] = url
		}
		return topics, nil
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, errors.New("expected an object of topic URLs or a list of topic names")
	}
	for _, name := range names {
		topics[name] = ""
	}
	return topics, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
