package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"nightshift/api"
	"nightshift/store"
)

// WriteJSONError はエラーを {"message": ...} 形式で返します。
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// writeError maps a store or API error to a status code. fallback is the
// message used when the error carries none.
func writeError(w http.ResponseWriter, err error, fallback string) {
	status := http.StatusInternalServerError
	var apiErr *api.Error
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &apiErr):
		status = apiErr.Status
		if status >= 500 {
			status = http.StatusBadGateway
		}
	}
	log.Printf("WARN: %s: %v", fallback, err)
	WriteJSONError(w, store.MessageOf(err, fallback), status)
}
