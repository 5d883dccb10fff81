package http

import (
	"github.com/sebas-09/examen/internal/aiken"
	"github.com/sebas-09/examen/internal/exam"
)

// sessionView decorates the stored session with derived, render-ready
// fields. The embedded session already has answer keys stripped while the
// attempt is running.
type sessionView struct {
	exam.Session
	SecondsLeft int `json:"seconds_left"`
	Answered    int `json:"answered"`
}

func newSessionView(s exam.Session) sessionView {
	return sessionView{
		Session:     s,
		SecondsLeft: exam.SecondsLeft(!s.Submitted, s.Deadline, nowFunc()),
		Answered:    s.AnsweredCount(),
	}
}

type reviewItem struct {
	Question aiken.Question `json:"question"`
	Chosen   string         `json:"chosen,omitempty"`
	Flagged  bool           `json:"flagged,omitempty"`
	Correct  bool           `json:"correct"`
}

type resultView struct {
	Score  exam.Score   `json:"score"`
	Scale  float64      `json:"scale"`
	Grade  float64      `json:"grade"`
	Review []reviewItem `json:"review"`
}

func newResultView(s exam.Session, scale float64) resultView {
	review := make([]reviewItem, len(s.Questions))
	for i, q := range s.Questions {
		chosen := s.Answers[q.ID]
		review[i] = reviewItem{
			Question: q,
			Chosen:   chosen,
			Flagged:  s.Flagged[q.ID],
			Correct:  answerMatches(chosen, q.AnswerKey),
		}
	}
	return resultView{
		Score:  *s.Score,
		Scale:  scale,
		Grade:  exam.Grade(*s.Score, scale),
		Review: review,
	}
}
