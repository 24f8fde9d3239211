package handlers

import (
	"encoding/json"
	"net/http"

	"nightshift/session"
)

// MinPasswordLength is the shortest password the backend accepts.
const MinPasswordLength = 6

type changePasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// CurrentUserHandler は現在ログイン中の従業員を返します。
func CurrentUserHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		u, err := s.CurrentUser(r.Context())
		if err != nil {
			writeError(w, err, "Failed to get current user")
			return
		}
		if u == nil {
			WriteJSONError(w, "Not logged in", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"employee": u})
	})
}

func ChangePasswordHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		var in changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.Password != in.ConfirmPassword {
			WriteJSONError(w, "Passwords do not match", http.StatusBadRequest)
			return
		}
		if len(in.Password) < MinPasswordLength {
			WriteJSONError(w, "Password must be at least 6 characters long", http.StatusBadRequest)
			return
		}
		if err := s.ChangePassword(r.Context(), in.Password); err != nil {
			writeError(w, err, "Failed to change password")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
