package exam

import (
	"time"

	"github.com/sebas-09/examen/internal/aiken"
)

// Session is one timed attempt: a drawn, option-shuffled subset of a bank.
// Questions hold exam copies whose options were re-keyed to A, B, C... in
// shuffled order, so the correct letter differs per draw.
type Session struct {
	ID        string            `json:"id"`
	BankID    string            `json:"bank_id"`
	Questions []aiken.Question  `json:"questions"`
	Answers   map[string]string `json:"answers"`
	Flagged   map[string]bool   `json:"flagged"`
	Index     int               `json:"index"`
	StartedAt time.Time         `json:"started_at"`
	Deadline  time.Time         `json:"deadline"`
	Submitted bool              `json:"submitted"`
	Score     *Score            `json:"score,omitempty"` // set on submit
}

// Score is the raw result of a submitted session.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// RecordAnswer upserts the chosen option for a question. The key is not
// validated against the question's options; a stray key simply never matches
// at scoring time. No-op once the session is submitted.
func (s *Session) RecordAnswer(questionID, optionKey string) {
	if s.Submitted {
		return
	}
	s.Answers[questionID] = optionKey
}

// ToggleFlag flips the review marker for a question.
func (s *Session) ToggleFlag(questionID string) {
	if s.Submitted {
		return
	}
	if s.Flagged[questionID] {
		delete(s.Flagged, questionID)
		return
	}
	s.Flagged[questionID] = true
}

// AnsweredCount reports how many exam questions have a stored answer.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, q := range s.Questions {
		if s.Answers[q.ID] != "" {
			n++
		}
	}
	return n
}
