package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sebas-09/examen/internal/exam"
)

// CreateSessionHandler starts a timed attempt against an uploaded bank.
// Zero or missing count/minutes fall back to the configured defaults; out of
// range values are clamped by the engine, never rejected. Retrying an exam is
// simply another POST against the same bank: the no-repeat tracking carries
// over until the bank is exhausted or re-uploaded.
func CreateSessionHandler(store exam.Store, defCount, defMinutes int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			BankID  string `json:"bank_id"`
			Count   int    `json:"count"`
			Minutes int    `json:"minutes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.BankID == "" {
			http.Error(w, "bank_id required", http.StatusBadRequest)
			return
		}
		if req.Count == 0 {
			req.Count = defCount
		}
		if req.Minutes == 0 {
			req.Minutes = defMinutes
		}
		sess, err := store.NewSession(req.BankID, req.Count, req.Minutes)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, newSessionView(sess))
	}
}

func GetSessionHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := store.GetSession(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, newSessionView(sess))
	}
}

func SaveAnswerHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID string `json:"question_id"`
			OptionKey  string `json:"option_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.QuestionID == "" {
			http.Error(w, "question_id required", http.StatusBadRequest)
			return
		}
		sess, err := store.SaveAnswer(chi.URLParam(r, "sessionID"), req.QuestionID, req.OptionKey)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, newSessionView(sess))
	}
}

func ToggleFlagHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID string `json:"question_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.QuestionID == "" {
			http.Error(w, "question_id required", http.StatusBadRequest)
			return
		}
		sess, err := store.ToggleFlag(chi.URLParam(r, "sessionID"), req.QuestionID)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, newSessionView(sess))
	}
}

func NavigateHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Index int `json:"index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		sess, err := store.Navigate(chi.URLParam(r, "sessionID"), req.Index)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, newSessionView(sess))
	}
}

// SubmitSessionHandler ends the attempt. Submitting twice (or after the
// timer already auto-submitted) is a no-op that returns the settled state.
func SubmitSessionHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := store.Submit(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, newSessionView(sess))
	}
}

// ResultHandler reports score, grade and a per-question review for a
// submitted session. ?scale= picks the grading scale (default 100).
func ResultHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := store.GetSession(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		if !sess.Submitted || sess.Score == nil {
			http.Error(w, "session not submitted", http.StatusConflict)
			return
		}
		scale := 100.0
		if s := r.URL.Query().Get("scale"); s != "" {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				http.Error(w, "bad scale", http.StatusBadRequest)
				return
			}
			scale = exam.ClampScale(f)
		}
		writeJSON(w, http.StatusOK, newResultView(sess, scale))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, exam.ErrBankNotFound), errors.Is(err, exam.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, exam.ErrEmptyBank):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// answerMatches mirrors the scoring comparison for the review view.
func answerMatches(chosen, answerKey string) bool {
	return chosen != "" && strings.ToUpper(chosen) == answerKey
}

// nowFunc is read at request time only, never during view construction from
// stored state. Swapped in tests.
var nowFunc = time.Now
