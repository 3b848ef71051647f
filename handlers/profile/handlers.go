// Package profile exposes the nonprofit profile over HTTP.
package profile

import (
	"encoding/json"
	"log"
	"net/http"

	"grantsassist/backend/handlers"
	"grantsassist/backend/services/nonprofit"
)

// GetProfileHandler returns the stored profile (empty defaults if none
// has been saved yet).
func GetProfileHandler(store *nonprofit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		p, err := store.Get()
		if err != nil {
			log.Printf("Error fetching profile: %v", err)
			handlers.WriteError(w, err)
			return
		}

		if err := json.NewEncoder(w).Encode(p); err != nil {
			log.Printf("Error encoding response: %v", err)
		}
	}
}

// UpdateProfileHandler replaces the stored profile wholesale. Partial
// updates are not supported: the client always sends the full profile.
func UpdateProfileHandler(store *nonprofit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var p nonprofit.NonprofitProfile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := store.Save(p); err != nil {
			log.Printf("Error saving profile: %v", err)
			handlers.WriteError(w, err)
			return
		}

		json.NewEncoder(w).Encode(p)
	}
}

// ResetProfileHandler resets the profile to empty values. The profile
// is never deleted outright.
func ResetProfileHandler(store *nonprofit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Reset(); err != nil {
			log.Printf("Error resetting profile: %v", err)
			handlers.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
