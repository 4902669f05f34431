package model

import "encoding/json"

// Answer record kinds. The payload used to be a shape-varying JSON blob probed
// at runtime; it is now an explicit tagged union and the scorer matches on the
// tag instead of sniffing optional fields.
const (
	AnswerKindMCQ      = "mcq"
	AnswerKindFreeText = "free_text"
	AnswerKindCode     = "code"
)

// AnswerPayloadVersion is written into every record so a future shape change
// can be migrated rather than guessed at.
const AnswerPayloadVersion = 1

// AnswerRecord is one candidate response to one question. Created during
// save_progress/submit; immutable once the interview is completed.
type AnswerRecord struct {
	Version    int    `json:"version"`
	Kind       string `json:"kind"`
	QuestionID string `json:"questionId"`

	// mcq
	SelectedOption string `json:"selectedOption,omitempty"`
	CorrectOption  string `json:"correctOption,omitempty"`

	// free_text / code
	Response string `json:"response,omitempty"`
	Language string `json:"language,omitempty"`

	Correct          *bool `json:"correct,omitempty"`
	Score            *int  `json:"score,omitempty"`
	MaxScore         *int  `json:"maxScore,omitempty"`
	TimeSpentSeconds int   `json:"timeSpentSeconds,omitempty"`
}

// EncodeAnswers serializes an answer payload for the opaque storage column.
func EncodeAnswers(records []AnswerRecord) (string, error) {
	b, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeAnswers parses the stored payload. An empty column yields an empty
// slice, not an error.
func DecodeAnswers(raw string) ([]AnswerRecord, error) {
	if raw == "" {
		return nil, nil
	}
	var records []AnswerRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}
	return records, nil
}
