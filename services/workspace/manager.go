package workspace

import (
	"sync"
	"time"

	"grantsassist/backend/services/grants"
)

// Manager enforces the one-open-workspace rule: opening a project
// flushes and closes whatever was open before.
type Manager struct {
	mu       sync.Mutex
	store    *grants.Store
	gateway  Critiquer
	schedule Scheduler
	debounce time.Duration
	current  *Workspace
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithDebounce overrides the autosave quiescence window.
func WithDebounce(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.debounce = d
	}
}

// WithScheduler substitutes the debounce scheduler (tests use a manual
// one instead of wall-clock timers).
func WithScheduler(s Scheduler) ManagerOption {
	return func(m *Manager) {
		m.schedule = s
	}
}

func NewManager(store *grants.Store, gateway Critiquer, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		gateway:  gateway,
		schedule: TimerScheduler,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open loads the project into a fresh workspace, closing the previous
// one (with a flush) first.
func (m *Manager) Open(projectID string) (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	project, err := m.store.Get(projectID)
	if err != nil {
		return nil, err
	}

	if m.current != nil {
		m.current.Close()
	}
	m.current = &Workspace{
		store:    m.store,
		gateway:  m.gateway,
		schedule: m.schedule,
		debounce: m.debounce,
		project:  project,
	}
	return m.current, nil
}

// Close flushes and closes the open workspace, if any.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		m.current.Close()
		m.current = nil
	}
}
