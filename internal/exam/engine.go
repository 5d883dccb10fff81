package exam

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sebas-09/examen/internal/aiken"
	"github.com/sebas-09/examen/internal/rng"
)

// Clamp bounds for session configuration. Invalid input is clamped, never
// rejected.
const (
	MinMinutes = 1
	MaxMinutes = 600
	MinScale   = 1
	MaxScale   = 1000
)

// UsedIDs tracks question ids drawn since the bank was loaded. It lives as
// long as the bank does and carries across retries.
type UsedIDs map[string]struct{}

// Engine runs selection and presentation for exam sessions. The randomness
// source and clock are injected so tests can pin both.
type Engine struct {
	rand *rand.Rand
	now  func() time.Time
}

func NewEngine(r *rand.Rand, now func() time.Time) *Engine {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{rand: r, now: now}
}

// SelectForAttempt draws count questions from bank, skipping ids already in
// used. When the unused pool cannot cover the request, the shortfall is
// redrawn from the whole bank and the returned tracking set is replaced with
// just that second draw: exhaustion restarts the no-repeat cycle rather than
// rolling a window.
func (e *Engine) SelectForAttempt(bank []aiken.Question, count int, used UsedIDs) ([]aiken.Question, UsedIDs) {
	available := make([]aiken.Question, 0, len(bank))
	for _, q := range bank {
		if _, ok := used[q.ID]; !ok {
			available = append(available, q)
		}
	}

	take := count
	if take > len(available) {
		take = len(available)
	}
	selected := rng.Sample(e.rand, available, take)

	if take == count {
		next := make(UsedIDs, len(used)+len(selected))
		for id := range used {
			next[id] = struct{}{}
		}
		for _, q := range selected {
			next[q.ID] = struct{}{}
		}
		return selected, next
	}

	extra := rng.Sample(e.rand, bank, count-take)
	next := make(UsedIDs, len(extra))
	for _, q := range extra {
		next[q.ID] = struct{}{}
	}
	return append(selected, extra...), next
}

// Present returns an exam copy of q: options shuffled and re-keyed to
// A, B, C... in shuffled order, with the answer key moved to the letter the
// originally-correct option landed on. With duplicate option keys the first
// shuffled match wins, mirroring the permissiveness of the parser.
//
// The not-found branch is unreachable for parser-validated questions; it is
// surfaced as an error instead of silently handing out an exam whose answer
// can never match. The copy keeps the original answer key in that case.
func (e *Engine) Present(q aiken.Question) (aiken.Question, error) {
	shuffled := rng.Shuffle(e.rand, q.Options)

	out := q.Clone()
	answerAt := -1
	for i, o := range shuffled {
		out.Options[i] = aiken.Option{Key: string(rune('A' + i)), Text: o.Text}
		if answerAt == -1 && strings.EqualFold(o.Key, q.AnswerKey) {
			answerAt = i
		}
	}
	if answerAt == -1 {
		return out, fmt.Errorf("question %s: answer key %s not among options", q.ID, q.AnswerKey)
	}
	out.AnswerKey = string(rune('A' + answerAt))
	return out, nil
}

// StartSession draws an attempt from bank and stamps its timer window.
// count is clamped to [1, len(bank)] and minutes to [MinMinutes, MaxMinutes].
// The draw order is kept; questions are not re-shuffled at session level.
func (e *Engine) StartSession(bank []aiken.Question, count, minutes int, used UsedIDs) (*Session, UsedIDs, error) {
	if len(bank) == 0 {
		count = 0
	} else {
		count = clampInt(count, 1, len(bank))
	}
	minutes = clampInt(minutes, MinMinutes, MaxMinutes)

	selected, next := e.SelectForAttempt(bank, count, used)
	questions := make([]aiken.Question, len(selected))
	for i, q := range selected {
		pq, err := e.Present(q)
		if err != nil {
			return nil, nil, err
		}
		questions[i] = pq
	}

	start := e.now()
	return &Session{
		Questions: questions,
		Answers:   map[string]string{},
		Flagged:   map[string]bool{},
		StartedAt: start,
		Deadline:  start.Add(time.Duration(minutes) * time.Minute),
	}, next, nil
}

// ComputeScore compares stored answers against each question's answer key.
// Unanswered questions count as incorrect; it never fails.
func (s *Session) ComputeScore() Score {
	correct := 0
	for _, q := range s.Questions {
		if chosen, ok := s.Answers[q.ID]; ok && strings.ToUpper(chosen) == q.AnswerKey {
			correct++
		}
	}
	return Score{Correct: correct, Total: len(s.Questions)}
}

// ClampScale bounds a grading scale to [MinScale, MaxScale].
func ClampScale(scaleOver float64) float64 {
	return clampFloat(scaleOver, MinScale, MaxScale)
}

// Grade projects a raw score onto a grading scale. scaleOver is clamped to
// [MinScale, MaxScale]; an empty exam grades to 0 instead of dividing by
// zero.
func Grade(sc Score, scaleOver float64) float64 {
	scaleOver = ClampScale(scaleOver)
	total := sc.Total
	if total == 0 {
		total = 1
	}
	return float64(sc.Correct) / float64(total) * scaleOver
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func clampFloat(n, lo, hi float64) float64 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
