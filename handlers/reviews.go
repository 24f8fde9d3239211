package handlers

import (
	"encoding/json"
	"net/http"

	"nightshift/model"
	"nightshift/session"
)

type reviewResponse struct {
	Message           string                  `json:"message"`
	PerformanceReview model.PerformanceReview `json:"performanceReview"`
}

func ListReviewsHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		writeJSON(w, http.StatusOK, s.ReviewsGiven())
	})
}

// CreateReviewHandler は従業員評価を登録します。
func CreateReviewHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		var in model.ReviewInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.EmployeeID == "" {
			WriteJSONError(w, "employeeId is required", http.StatusBadRequest)
			return
		}
		if !in.Rating.Valid() {
			WriteJSONError(w, "Rating must be between 1 and 5", http.StatusBadRequest)
			return
		}
		rev, err := s.AddReview(r.Context(), in)
		if err != nil {
			writeError(w, err, "Failed to create review")
			return
		}
		writeJSON(w, http.StatusCreated, reviewResponse{Message: "Review Created!", PerformanceReview: rev})
	})
}

// UpdateReviewHandler only changes the rating or comments present in the body.
func UpdateReviewHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		var in model.ReviewInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.Rating != 0 && !in.Rating.Valid() {
			WriteJSONError(w, "Rating must be between 1 and 5", http.StatusBadRequest)
			return
		}
		in.EmployeeID = ""
		rev, err := s.UpdateReview(r.Context(), r.PathValue("id"), in)
		if err != nil {
			writeError(w, err, "Failed to update review")
			return
		}
		writeJSON(w, http.StatusOK, reviewResponse{Message: "Review updated successfully!", PerformanceReview: rev})
	})
}

func DeleteReviewHandler(a *App) http.HandlerFunc {
	return a.withSession(func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		if err := s.DeleteReview(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, err, "Failed to delete review")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
