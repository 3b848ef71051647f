// Package workspace is the edit/submit/award lifecycle around a single
// open grant project: buffered edits, debounced autosave, and
// AI-assisted critique.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"grantsassist/backend/services/grants"
)

// DefaultDebounce is the quiescence window after the last edit before
// a save is committed.
const DefaultDebounce = time.Second

var (
	// ErrEmptyProposal is returned when critique is requested for a
	// blank proposal.
	ErrEmptyProposal = errors.New("proposal is empty")

	// ErrClosed is returned for operations on a closed workspace, and
	// for critique responses that arrive after close.
	ErrClosed = errors.New("workspace is closed")
)

// Critiquer is the slice of the AI gateway the workspace needs.
type Critiquer interface {
	GenerateCritique(ctx context.Context, proposalText, grantContext string) (string, error)
}

// Scheduler schedules a single deferred call. The returned cancel stops
// the call if it has not run yet. Tests substitute a manual
// implementation to drive the debounce deterministically.
type Scheduler func(d time.Duration, fn func()) (cancel func())

// TimerScheduler schedules on real wall-clock timers.
func TimerScheduler(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Workspace holds one project's edit buffer. The buffer is
// authoritative until a save succeeds: a failed debounced save keeps
// the buffer dirty and is retried on the next edit cycle or on close.
type Workspace struct {
	mu       sync.Mutex
	store    *grants.Store
	gateway  Critiquer
	schedule Scheduler
	debounce time.Duration

	project grants.GrantProject
	dirty   bool
	cancel  func()
	closed  bool
}

// Snapshot returns a copy of the current edit buffer.
func (w *Workspace) Snapshot() grants.GrantProject {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.project
}

// SetGrantTitle updates the title. A no-op unless the project is in
// Draft.
func (w *Workspace) SetGrantTitle(title string) {
	w.edit(func(p *grants.GrantProject) { p.GrantTitle = title })
}

// SetFunder updates the funder name. A no-op unless the project is in
// Draft.
func (w *Workspace) SetFunder(funder string) {
	w.edit(func(p *grants.GrantProject) { p.Funder = funder })
}

// SetProposal updates the proposal text. A no-op once the proposal is
// finalized (any status past Draft).
func (w *Workspace) SetProposal(text string) {
	w.edit(func(p *grants.GrantProject) { p.Proposal = text })
}

// edit applies a field mutation and reschedules the trailing-edge
// debounced save. Edits outside Draft are silently dropped: the
// pre-edit state is preserved byte for byte.
func (w *Workspace) edit(apply func(*grants.GrantProject)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.project.Status.Editable() {
		return
	}

	apply(&w.project)
	w.dirty = true
	w.reschedule()
}

// reschedule cancels any pending save and starts a fresh debounce
// window. Caller holds the lock.
func (w *Workspace) reschedule() {
	if w.cancel != nil {
		w.cancel()
	}
	w.cancel = w.schedule(w.debounce, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.closed {
			return
		}
		w.saveLocked()
	})
}

// saveLocked persists the buffer if dirty. Caller holds the lock, so
// no two saves for this project are ever in flight at once. On failure
// the buffer stays dirty for the next cycle.
func (w *Workspace) saveLocked() {
	if !w.dirty {
		return
	}
	saved, err := w.store.Save(w.project)
	if err != nil {
		log.Printf("Error saving project %s, will retry on next edit cycle: %v", w.project.ID, err)
		return
	}
	w.project.LastEdited = saved.LastEdited
	w.dirty = false
}

// Flush cancels any pending debounce and saves immediately.
func (w *Workspace) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.saveLocked()
}

// Close flushes pending edits and invalidates the workspace. Critique
// responses still in flight are discarded when they arrive.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.saveLocked()
	w.closed = true
}

// Transition moves the project's status forward and persists
// immediately, carrying any buffered edits with the save.
func (w *Workspace) Transition(to grants.Status) (grants.GrantProject, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return grants.GrantProject{}, ErrClosed
	}
	if !grants.CanTransition(w.project.Status, to) {
		return grants.GrantProject{}, fmt.Errorf("%w: %s -> %s", grants.ErrInvalidTransition, w.project.Status, to)
	}

	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.project.Status = to
	w.dirty = true
	w.saveLocked()
	if w.dirty {
		return grants.GrantProject{}, fmt.Errorf("error persisting status change for project %s", w.project.ID)
	}
	return w.project, nil
}

// RequestCritique asks the AI gateway for advisory feedback on the
// current proposal. The result is never applied to the buffer; if the
// workspace closes while the request is in flight, the response is
// discarded.
func (w *Workspace) RequestCritique(ctx context.Context) (string, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return "", ErrClosed
	}
	proposal := w.project.Proposal
	grantContext := fmt.Sprintf("%s by %s", w.project.GrantTitle, w.project.Funder)
	w.mu.Unlock()

	if strings.TrimSpace(proposal) == "" {
		return "", ErrEmptyProposal
	}

	critique, err := w.gateway.GenerateCritique(ctx, proposal, grantContext)
	if err != nil {
		return "", err
	}

	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		// Abandon, don't apply: the originating view is gone.
		return "", ErrClosed
	}
	return critique, nil
}
