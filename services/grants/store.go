package grants

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"grantsassist/backend/services/storage"
)

// Defaults for projects created without a recommendation seed.
const (
	defaultTitle  = "New Grant Project"
	defaultFunder = "Funder Name"
)

// Store persists the project collection under a single key. Access is
// read-modify-write, last writer wins; the mutex keeps individual
// operations atomic within this process.
type Store struct {
	mu  sync.Mutex
	kv  storage.Store
	now func() time.Time
}

func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv, now: time.Now}
}

// NewStoreWithClock is used by tests that need deterministic timestamps.
func NewStoreWithClock(kv storage.Store, now func() time.Time) *Store {
	return &Store{kv: kv, now: now}
}

func (s *Store) load() ([]GrantProject, error) {
	var projects []GrantProject
	if _, err := s.kv.Get(storage.KeyProjects, &projects); err != nil {
		return nil, fmt.Errorf("error loading projects: %v", err)
	}
	return projects, nil
}

func (s *Store) persist(projects []GrantProject) error {
	if err := s.kv.Put(storage.KeyProjects, projects); err != nil {
		return fmt.Errorf("error saving projects: %v", err)
	}
	return nil
}

// List returns all projects, newest first.
func (s *Store) List() ([]GrantProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the project with the given ID.
func (s *Store) Get(id string) (GrantProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load()
	if err != nil {
		return GrantProject{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return GrantProject{}, ErrNotFound
}

// Create adds a new Draft project, optionally seeded with a
// recommendation's grant name and funder, and returns it. New projects
// are prepended so the dashboard shows them first.
func (s *Store) Create(grantTitle, funder string) (GrantProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if grantTitle == "" {
		grantTitle = defaultTitle
	}
	if funder == "" {
		funder = defaultFunder
	}

	project := GrantProject{
		ID:         uuid.New().String(),
		GrantTitle: grantTitle,
		Funder:     funder,
		Status:     StatusDraft,
		Proposal:   "",
		LastEdited: s.now(),
	}

	projects, err := s.load()
	if err != nil {
		return GrantProject{}, err
	}
	if err := s.persist(append([]GrantProject{project}, projects...)); err != nil {
		return GrantProject{}, err
	}
	return project, nil
}

// Save replaces the stored project with the same ID, stamping a fresh
// LastEdited. The timestamp never moves backward across saves.
func (s *Store) Save(project GrantProject) (GrantProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load()
	if err != nil {
		return GrantProject{}, err
	}

	for i, p := range projects {
		if p.ID != project.ID {
			continue
		}
		stamp := s.now()
		if stamp.Before(p.LastEdited) {
			stamp = p.LastEdited
		}
		project.LastEdited = stamp
		projects[i] = project
		if err := s.persist(projects); err != nil {
			return GrantProject{}, err
		}
		return project, nil
	}
	return GrantProject{}, ErrNotFound
}

// Delete removes a project permanently.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load()
	if err != nil {
		return err
	}

	kept := projects[:0]
	found := false
	for _, p := range projects {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return ErrNotFound
	}
	return s.persist(kept)
}
