// Package editor is the websocket edit channel for an open proposal
// workspace. The SPA streams field edits over the socket; the server
// side owns the debounced autosave and pushes state and critique
// events back.
package editor

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"grantsassist/backend/services/ai"
	"grantsassist/backend/services/grants"
	"grantsassist/backend/services/nonprofit"
	"grantsassist/backend/services/workspace"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Frame is a client message on the edit channel.
type Frame struct {
	Type   string `json:"type"`             // "edit", "transition", "critique", "flush"
	Field  string `json:"field,omitempty"`  // "grantTitle", "funder", "proposal"
	Value  string `json:"value,omitempty"`
	Status string `json:"status,omitempty"`
}

// Event is a server message on the edit channel.
type Event struct {
	Type     string               `json:"type"` // "state", "critique", "error"
	Project  *grants.GrantProject `json:"project,omitempty"`
	Critique string               `json:"critique,omitempty"`
	Message  string               `json:"message,omitempty"`
}

// HandleWorkspaceSocket opens the project's workspace for the lifetime
// of the connection. Closing the socket flushes pending edits; critique
// responses that arrive after close are discarded.
func HandleWorkspaceSocket(mgr *workspace.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := mux.Vars(r)["id"]

		ws, err := mgr.Open(projectID)
		if err != nil {
			log.Printf("Error opening workspace for project %s: %v", projectID, err)
			if errors.Is(err, grants.ErrNotFound) {
				http.Error(w, "Project not found", http.StatusNotFound)
			} else {
				http.Error(w, "Error opening workspace", http.StatusInternalServerError)
			}
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Error upgrading connection: %v", err)
			ws.Close()
			return
		}
		defer conn.Close()
		defer ws.Close()

		// Critique responses arrive on their own goroutine, so writes
		// must be serialized.
		var writeMu sync.Mutex
		send := func(ev Event) {
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("Error writing event for project %s: %v", projectID, err)
			}
		}
		sendState := func() {
			snapshot := ws.Snapshot()
			send(Event{Type: "state", Project: &snapshot})
		}

		sendState()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var frame Frame
			if err := json.Unmarshal(raw, &frame); err != nil {
				send(Event{Type: "error", Message: "Invalid frame"})
				continue
			}

			switch frame.Type {
			case "edit":
				switch frame.Field {
				case "grantTitle":
					ws.SetGrantTitle(frame.Value)
				case "funder":
					ws.SetFunder(frame.Value)
				case "proposal":
					ws.SetProposal(frame.Value)
				default:
					send(Event{Type: "error", Message: "Unknown field"})
					continue
				}
				sendState()

			case "transition":
				to, err := grants.ParseStatus(frame.Status)
				if err != nil {
					send(Event{Type: "error", Message: "Unknown status"})
					continue
				}
				if _, err := ws.Transition(to); err != nil {
					send(Event{Type: "error", Message: userMessage(err)})
					continue
				}
				sendState()

			case "critique":
				go func() {
					critique, err := ws.RequestCritique(r.Context())
					if errors.Is(err, workspace.ErrClosed) {
						// The view is gone; abandon, don't apply.
						return
					}
					if err != nil {
						send(Event{Type: "error", Message: userMessage(err)})
						return
					}
					send(Event{Type: "critique", Critique: critique})
				}()

			case "flush":
				ws.Flush()
				sendState()

			default:
				send(Event{Type: "error", Message: "Unknown frame type"})
			}
		}
	}
}

// userMessage maps service errors to channel-safe text, mirroring the
// REST error mapping.
func userMessage(err error) string {
	switch {
	case errors.Is(err, grants.ErrInvalidTransition):
		return "That status change is not allowed"
	case errors.Is(err, workspace.ErrEmptyProposal):
		return "Write a proposal draft before requesting feedback"
	case errors.Is(err, ai.ErrMissingCredential):
		return "No AI credential is configured. Add your API key in Settings."
	case errors.Is(err, nonprofit.ErrProfileIncomplete):
		return "Your nonprofit profile is incomplete."
	case errors.Is(err, ai.ErrEmptyResponse), errors.Is(err, ai.ErrMalformedResponse), ai.IsTransport(err):
		return "The AI service did not return a usable response. Please try again."
	default:
		log.Printf("Workspace channel error: %v", err)
		return "Internal error"
	}
}
