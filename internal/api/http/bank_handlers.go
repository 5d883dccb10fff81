// Package http exposes the exam engine to the UI layer: bank upload plus the
// session lifecycle (start, answer, flag, navigate, submit, result).
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sebas-09/examen/internal/aiken"
	"github.com/sebas-09/examen/internal/exam"
)

// UploadBankHandler parses raw Aiken text into a bank. Accepts the text
// either as the request body (text/plain) or wrapped as {"text": "..."}.
// Malformed input comes back as a structured 400; a valid parse replaces
// nothing and returns a fresh bank id with an empty used-question set.
func UploadBankHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := readBankText(r)
		if err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		questions, err := aiken.Parse(text)
		if err != nil {
			var fe *aiken.FormatError
			if errors.As(err, &fe) {
				writeJSON(w, http.StatusBadRequest, map[string]interface{}{
					"error": map[string]string{"kind": fe.Kind, "message": fe.Error()},
				})
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		id, err := store.PutBank(questions)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"bank_id": id,
			"size":    len(questions),
		})
	}
}

func readBankText(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			return "", err
		}
		return req.Text, nil
	}
	return string(body), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
