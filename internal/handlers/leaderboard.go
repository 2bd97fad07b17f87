// internal/handlers/leaderboard.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fuseball/internal/cache"
)

// LeaderboardHandler returns the top players by cumulative XP. 503 when no
// leaderboard backend is configured.
func LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	if !cache.Enabled() {
		http.Error(w, "leaderboard is not enabled on this server", http.StatusServiceUnavailable)
		return
	}

	n := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 100 {
			n = v
		}
	}

	entries, err := cache.Top(r.Context(), n)
	if err != nil {
		http.Error(w, "failed to read leaderboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
