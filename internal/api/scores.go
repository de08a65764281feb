package api

import (
	"net/http"
)

type ScoreSubmission struct {
	GameType string                 `json:"game_type"`
	Score    int                    `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// handleSubmitScore stores a score for the authenticated user.
func (s *APIServer) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, apiError{Error: "user not found in context"})
		return
	}

	var submission ScoreSubmission
	if err := readJSON(r, &submission); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	if submission.GameType == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "game_type is required"})
		return
	}
	if submission.Score < 0 {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "score must be non-negative"})
		return
	}

	if err := s.db.SaveGameScore(user.UserID, submission.GameType, submission.Score, submission.Metadata); err != nil {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to save score"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Score saved successfully",
	})
}
