// Package finder exposes the grant recommendation search over HTTP.
package finder

import (
	"encoding/json"
	"log"
	"net/http"

	"grantsassist/backend/handlers"
	"grantsassist/backend/services/ai"
	"grantsassist/backend/services/nonprofit"
	"grantsassist/backend/services/recommend"
)

// SearchGrantsHandler runs a recommendation search for the stored
// profile. The client sends every (grantName, funderName) pair it has
// already seen; only the new batch comes back, and the client folds it
// into its running list.
func SearchGrantsHandler(engine *recommend.Engine, profiles *nonprofit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req SearchRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
		}

		p, err := profiles.Get()
		if err != nil {
			log.Printf("Error loading profile for search: %v", err)
			handlers.WriteError(w, err)
			return
		}

		recs, err := engine.Search(r.Context(), p, req.Exclude)
		if err != nil {
			handlers.WriteError(w, err)
			return
		}
		if recs == nil {
			recs = []ai.GrantRecommendation{}
		}
		json.NewEncoder(w).Encode(recs)
	}
}

// CachedRecommendationsHandler returns the last accumulated result list
// so the finder view can be restored across page loads.
func CachedRecommendationsHandler(engine *recommend.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		cached := engine.Cached()
		if cached == nil {
			cached = []ai.GrantRecommendation{}
		}
		json.NewEncoder(w).Encode(cached)
	}
}
