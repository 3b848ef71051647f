// Package settings exposes the AI credential and mock-data toggle over
// HTTP. The credential itself is never echoed back.
package settings

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"grantsassist/backend/handlers"
	"grantsassist/backend/services/settings"
)

// GetCredentialHandler reports whether a credential is configured and
// where it comes from, without exposing the secret.
func GetCredentialHandler(s *settings.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(CredentialStatus{
			Configured: s.HasCredential(),
			EnvManaged: s.EnvManaged(),
		})
	}
}

// SetCredentialHandler stores a user-supplied credential.
func SetCredentialHandler(s *settings.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetCredentialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.SetCredential(req.Credential); err != nil {
			if errors.Is(err, settings.ErrEnvManaged) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteCredentialHandler removes the user-supplied credential.
func DeleteCredentialHandler(s *settings.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.ClearCredential(); err != nil {
			if errors.Is(err, settings.ErrEnvManaged) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			log.Printf("Error clearing credential: %v", err)
			handlers.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetMockModeHandler reports the mock-data flag.
func GetMockModeHandler(s *settings.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(MockMode{Enabled: s.MockMode()})
	}
}

// SetMockModeHandler toggles the mock-data flag.
func SetMockModeHandler(s *settings.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MockMode
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.SetMockMode(req.Enabled); err != nil {
			log.Printf("Error setting mock mode: %v", err)
			handlers.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
