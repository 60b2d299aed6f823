package domain

import (
	"encoding/json"
	"math"
)

type rawQuestionWire struct {
	Question      string   `json:"question,omitempty"`
	Options       []string `json:"options,omitempty"`
	Answer        string   `json:"answer,omitempty"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Level         string   `json:"level,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// MarshalJSON writes the generator's field names, omitting absent fields.
func (q RawQuestion) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawQuestionWire(q))
}

// UnmarshalJSON decodes a question tolerantly: a field holding an unexpected JSON
// type is left absent rather than failing the surrounding record.
func (q *RawQuestion) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*q = RawQuestion{
		Question:      stringField(fields["question"]),
		Options:       stringsField(fields["options"]),
		Answer:        stringField(fields["answer"]),
		CorrectAnswer: integerField(fields["correct_answer"]),
		Difficulty:    stringField(fields["difficulty"]),
		Level:         stringField(fields["level"]),
		Explanation:   stringField(fields["explanation"]),
	}
	return nil
}

func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func stringsField(raw json.RawMessage) []string {
	var out []string
	if len(raw) == 0 || json.Unmarshal(raw, &out) != nil {
		return nil
	}
	return out
}

// integerField accepts JSON numbers with an integral value, so 2 and 2.0 both count.
func integerField(raw json.RawMessage) *int {
	var n *float64
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil || n == nil {
		return nil
	}
	if *n != math.Trunc(*n) || math.Abs(*n) > math.MaxInt32 {
		return nil
	}
	i := int(*n)
	return &i
}
