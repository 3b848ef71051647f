// Package projects exposes grant project CRUD and status transitions
// over HTTP.
package projects

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"grantsassist/backend/handlers"
	"grantsassist/backend/services/grants"
	"grantsassist/backend/services/workspace"
)

// Critiquer is the slice of the AI gateway the critique endpoint needs.
type Critiquer interface {
	GenerateCritique(ctx context.Context, proposalText, grantContext string) (string, error)
}

// ListProjectsHandler returns all projects, newest first.
func ListProjectsHandler(store *grants.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		projects, err := store.List()
		if err != nil {
			log.Printf("Error listing projects: %v", err)
			handlers.WriteError(w, err)
			return
		}
		if projects == nil {
			projects = []grants.GrantProject{}
		}
		json.NewEncoder(w).Encode(projects)
	}
}

// CreateProjectHandler creates a Draft project, optionally seeded from
// a recommendation's grant name and funder.
func CreateProjectHandler(store *grants.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req CreateProjectRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
		}

		project, err := store.Create(req.GrantTitle, req.Funder)
		if err != nil {
			log.Printf("Error creating project: %v", err)
			handlers.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(project)
	}
}

// GetProjectHandler returns a single project by ID.
func GetProjectHandler(store *grants.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		project, err := store.Get(mux.Vars(r)["id"])
		if err != nil {
			handlers.WriteError(w, err)
			return
		}
		json.NewEncoder(w).Encode(project)
	}
}

// DeleteProjectHandler removes a project permanently.
func DeleteProjectHandler(store *grants.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(mux.Vars(r)["id"]); err != nil {
			handlers.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// TransitionProjectHandler moves a project's status forward. The
// lifecycle only runs Draft -> Submitted -> Awarded/Declined; anything
// else is rejected.
func TransitionProjectHandler(store *grants.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req TransitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		to, err := grants.ParseStatus(req.Status)
		if err != nil {
			http.Error(w, "Unknown status", http.StatusBadRequest)
			return
		}

		project, err := store.Get(mux.Vars(r)["id"])
		if err != nil {
			handlers.WriteError(w, err)
			return
		}

		if !grants.CanTransition(project.Status, to) {
			handlers.WriteError(w, grants.ErrInvalidTransition)
			return
		}

		project.Status = to
		saved, err := store.Save(project)
		if err != nil {
			log.Printf("Error saving project %s: %v", project.ID, err)
			handlers.WriteError(w, err)
			return
		}
		json.NewEncoder(w).Encode(saved)
	}
}

// CritiqueProjectHandler requests advisory AI feedback on a project's
// proposal. The critique is returned to the caller and never written
// into the proposal.
func CritiqueProjectHandler(store *grants.Store, gateway Critiquer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		project, err := store.Get(mux.Vars(r)["id"])
		if err != nil {
			handlers.WriteError(w, err)
			return
		}

		if strings.TrimSpace(project.Proposal) == "" {
			handlers.WriteError(w, workspace.ErrEmptyProposal)
			return
		}

		grantContext := project.GrantTitle + " by " + project.Funder
		critique, err := gateway.GenerateCritique(r.Context(), project.Proposal, grantContext)
		if err != nil {
			handlers.WriteError(w, err)
			return
		}

		json.NewEncoder(w).Encode(CritiqueResponse{Critique: critique})
	}
}
