package leaderboard

import (
	"encoding/json"
	"net/http"

	"github.com/samber/lo"
)

type rankedEntry struct {
	Rank int `json:"rank"`
	Entry
}

// registerRoutes exposes the cache-only read contract. The handler
// never queries the store.
func registerRoutes(mux *http.ServeMux, cache *Cache) {
	mux.HandleFunc("GET /leaderboard", func(w http.ResponseWriter, r *http.Request) {
		entries := cache.Snapshot()
		ranked := lo.Map(entries, func(e Entry, i int) rankedEntry {
			return rankedEntry{Rank: i + 1, Entry: e}
		})
		writeJSON(w, map[string]any{"leaderboard": ranked})
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{
			"status":  "healthy",
			"service": groupID,
		})
	})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
