package handlers

import (
	"errors"
	"log"
	"net/http"

	"grantsassist/backend/services/ai"
	"grantsassist/backend/services/grants"
	"grantsassist/backend/services/nonprofit"
	"grantsassist/backend/services/workspace"
)

// WriteError maps service errors onto HTTP responses. The AI failure
// kinds stay distinguishable in the log even where the user-facing
// message is shared.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, nonprofit.ErrProfileIncomplete):
		http.Error(w, "Your nonprofit profile is incomplete. Fill in organization name, mission, goals, and needs before searching for grants.", http.StatusBadRequest)
	case errors.Is(err, ai.ErrMissingCredential):
		http.Error(w, "No AI credential is configured. Add your API key in Settings.", http.StatusUnauthorized)
	case errors.Is(err, ai.ErrEmptyResponse), errors.Is(err, ai.ErrMalformedResponse):
		log.Printf("AI response error: %v", err)
		http.Error(w, "The AI service did not return a usable response. Please try again.", http.StatusBadGateway)
	case ai.IsTransport(err):
		log.Printf("AI transport error: %v", err)
		http.Error(w, "The AI service did not return a usable response. Please try again.", http.StatusBadGateway)
	case errors.Is(err, grants.ErrNotFound):
		http.Error(w, "Project not found", http.StatusNotFound)
	case errors.Is(err, grants.ErrInvalidTransition):
		http.Error(w, "That status change is not allowed", http.StatusConflict)
	case errors.Is(err, workspace.ErrEmptyProposal):
		http.Error(w, "Write a proposal draft before requesting feedback", http.StatusBadRequest)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
