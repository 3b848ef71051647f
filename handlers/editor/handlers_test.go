package editor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantsassist/backend/services/grants"
	"grantsassist/backend/services/storage"
	"grantsassist/backend/services/workspace"
)

type stubCritiquer struct {
	critique string
	err      error
}

func (s *stubCritiquer) GenerateCritique(context.Context, string, string) (string, error) {
	return s.critique, s.err
}

func dial(t *testing.T, server *httptest.Server, projectID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/workspace/" + projectID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestWorkspaceSocket_EditFlushTransition(t *testing.T) {
	store := grants.NewStore(storage.NewMemory())
	project, err := store.Create("Community Fund", "Acme Trust")
	require.NoError(t, err)

	mgr := workspace.NewManager(store, &stubCritiquer{critique: "## Feedback"})
	r := mux.NewRouter()
	r.HandleFunc("/ws/workspace/{id}", HandleWorkspaceSocket(mgr))
	server := httptest.NewServer(r)
	defer server.Close()

	conn := dial(t, server, project.ID)
	defer conn.Close()

	// The server opens with a state snapshot.
	ev := readEvent(t, conn)
	require.Equal(t, "state", ev.Type)
	require.NotNil(t, ev.Project)
	assert.Equal(t, grants.StatusDraft, ev.Project.Status)

	// Edits echo updated state but stay in the buffer until a save.
	require.NoError(t, conn.WriteJSON(Frame{Type: "edit", Field: "proposal", Value: "We will expand our pantry."}))
	ev = readEvent(t, conn)
	require.Equal(t, "state", ev.Type)
	assert.Equal(t, "We will expand our pantry.", ev.Project.Proposal)

	// Flush persists the buffered edit.
	require.NoError(t, conn.WriteJSON(Frame{Type: "flush"}))
	ev = readEvent(t, conn)
	require.Equal(t, "state", ev.Type)

	got, err := store.Get(project.ID)
	require.NoError(t, err)
	assert.Equal(t, "We will expand our pantry.", got.Proposal)

	// Illegal transitions come back as error events.
	require.NoError(t, conn.WriteJSON(Frame{Type: "transition", Status: "Awarded"}))
	ev = readEvent(t, conn)
	assert.Equal(t, "error", ev.Type)

	require.NoError(t, conn.WriteJSON(Frame{Type: "transition", Status: "Submitted"}))
	ev = readEvent(t, conn)
	require.Equal(t, "state", ev.Type)
	assert.Equal(t, grants.StatusSubmitted, ev.Project.Status)

	// Proposal edits after submit are no-ops.
	require.NoError(t, conn.WriteJSON(Frame{Type: "edit", Field: "proposal", Value: "sneaky edit"}))
	ev = readEvent(t, conn)
	require.Equal(t, "state", ev.Type)
	assert.Equal(t, "We will expand our pantry.", ev.Project.Proposal)

	// Critique arrives as its own event and never touches the buffer.
	require.NoError(t, conn.WriteJSON(Frame{Type: "critique"}))
	ev = readEvent(t, conn)
	require.Equal(t, "critique", ev.Type)
	assert.Equal(t, "## Feedback", ev.Critique)
}

func TestWorkspaceSocket_UnknownProject(t *testing.T) {
	store := grants.NewStore(storage.NewMemory())
	mgr := workspace.NewManager(store, &stubCritiquer{})
	r := mux.NewRouter()
	r.HandleFunc("/ws/workspace/{id}", HandleWorkspaceSocket(mgr))
	server := httptest.NewServer(r)
	defer server.Close()

	resp, err := http.Get(server.URL + "/ws/workspace/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWorkspaceSocket_CloseFlushesPendingEdits(t *testing.T) {
	store := grants.NewStore(storage.NewMemory())
	project, err := store.Create("Community Fund", "Acme Trust")
	require.NoError(t, err)

	mgr := workspace.NewManager(store, &stubCritiquer{})
	r := mux.NewRouter()
	r.HandleFunc("/ws/workspace/{id}", HandleWorkspaceSocket(mgr))
	server := httptest.NewServer(r)
	defer server.Close()

	conn := dial(t, server, project.ID)
	readEvent(t, conn) // initial state

	require.NoError(t, conn.WriteJSON(Frame{Type: "edit", Field: "funder", Value: "Beta Foundation"}))
	readEvent(t, conn)

	// Dropping the connection must not lose the last burst of edits.
	require.NoError(t, conn.Close())
	mgr.Close() // deterministic: the server-side close may still be in flight

	got, err := store.Get(project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beta Foundation", got.Funder)
}
