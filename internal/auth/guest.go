package auth

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// GuestLoginHandler hands out a short-lived token for an anonymous exam
// taker. Identity is a throwaway "guest|<suffix>" subject; nothing is
// persisted.
func GuestLoginHandler(a *AuthService) http.HandlerFunc {
	type out struct {
		AccessToken string `json:"access_token"`
		Username    string `json:"username"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		sfx := strconv.FormatInt(time.Now().UnixNano(), 36)
		userID := "guest|" + sfx
		username := "guest-" + sfx[len(sfx)-6:]

		tok, err := a.IssueJWT(userID)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(out{AccessToken: tok, Username: username})
	}
}
