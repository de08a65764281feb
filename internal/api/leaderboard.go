package api

import (
	"net/http"

	"github.com/isaacjstriker/notris/games/tetris"
)

const (
	defaultLeaderboardLimit = 15
	defaultRecentLimit      = 10
	maxListLimit            = 100
)

// handleGetLeaderboard handles requests for game leaderboards
func (s *APIServer) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	gameType := r.PathValue("gameType")

	entries, err := s.db.GetLeaderboard(gameType, queryLimit(r, defaultLeaderboardLimit, maxListLimit))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to fetch leaderboard"})
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// handleGetRecentGames lists the latest finished games, newest first.
func (s *APIServer) handleGetRecentGames(w http.ResponseWriter, r *http.Request) {
	gameType := r.PathValue("gameType")

	games, err := s.db.GetRecentGames(gameType, queryLimit(r, defaultRecentLimit, maxListLimit))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to fetch recent games"})
		return
	}

	writeJSON(w, http.StatusOK, games)
}

// handleGetStats returns the caller's own record for a game.
func (s *APIServer) handleGetStats(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, apiError{Error: "user not found in context"})
		return
	}

	stats, err := s.db.GetUserStats(user.UserID, r.PathValue("gameType"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, apiError{Error: "no stats for user"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// handleGetPalette lists the piece kinds with their display colours.
func (s *APIServer) handleGetPalette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tetris.Palette())
}
