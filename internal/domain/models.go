package domain

import (
	"encoding/json"
	"time"
)

// RawQuestion is a question as produced by the generator or read back from storage.
// Every field is optional; an empty string means the field was absent.
type RawQuestion struct {
	Question      string
	Options       []string
	Answer        string
	CorrectAnswer *int
	Difficulty    string
	Level         string
	Explanation   string
}

// CanonicalQuestion is a question with a resolved answer and defaulted metadata.
type CanonicalQuestion struct {
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	Answer      *string  `json:"answer"` // nil when it could not be resolved
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation,omitempty"`
}

// QuizRecordRaw is the wire and storage shape of a quiz. Quiz and RelatedTopics may
// hold either structured JSON or a JSON string wrapping it (older storage format).
type QuizRecordRaw struct {
	ID            int64           `json:"id,omitempty"`
	URL           string          `json:"url,omitempty"`
	Title         string          `json:"title"`
	Summary       string          `json:"summary"`
	Quiz          json.RawMessage `json:"quiz"`
	RelatedTopics json.RawMessage `json:"related_topics"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
}

// DecodedRecord is a QuizRecordRaw whose nested fields are guaranteed structured.
type DecodedRecord struct {
	ID            int64
	URL           string
	Title         string
	Summary       string
	Questions     []RawQuestion
	RelatedTopics map[string]string
	CreatedAt     time.Time
}

// QuizRecord is a fully normalized quiz, immutable once built.
type QuizRecord struct {
	ID            int64               `json:"id,omitempty"`
	URL           string              `json:"url,omitempty"`
	Title         string              `json:"title"`
	Summary       string              `json:"summary"`
	Questions     []CanonicalQuestion `json:"quiz"`
	RelatedTopics map[string]string   `json:"related_topics"`
}

// HistoryEntry summarizes a stored quiz.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Phase is the coarse lifecycle stage of a quiz session.
type Phase string

const (
	PhaseActive   Phase = "active"
	PhaseFinished Phase = "finished"
)

// SessionState is the serializable form of a quiz session.
type SessionState struct {
	ID           string              `json:"id"`
	QuizID       int64               `json:"quizId"`
	Questions    []CanonicalQuestion `json:"questions"`
	CurrentIndex int                 `json:"currentIndex"`
	Answers      map[int]string      `json:"answers"`
	Phase        Phase               `json:"phase"`
}

// Score summarizes how many recorded answers match the canonical ones.
type Score struct {
	Correct    int `json:"correctCount"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}
