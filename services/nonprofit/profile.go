// Package nonprofit owns the organization profile used to personalize
// grant searches.
package nonprofit

import (
	"errors"
	"fmt"
	"strings"

	"grantsassist/backend/services/storage"
)

// ErrProfileIncomplete is returned when a grant search is attempted
// before the profile's required fields are filled in.
var ErrProfileIncomplete = errors.New("profile is incomplete: organization name, mission, goals, and needs are required")

// NonprofitProfile describes the organization. All fields are free text.
type NonprofitProfile struct {
	OrgName      string `json:"orgName"`
	Mission      string `json:"mission"`
	Goals        string `json:"goals"`
	Needs        string `json:"needs"`
	Address      string `json:"address"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	Email        string `json:"email"`
	Website      string `json:"website"`
	TaxID        string `json:"taxId"`
}

// IsComplete reports whether the profile can drive a grant search:
// org name, mission, goals, and needs must all be non-blank.
func IsComplete(p NonprofitProfile) bool {
	for _, field := range []string{p.OrgName, p.Mission, p.Goals, p.Needs} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// Store persists the single profile for this installation.
type Store struct {
	kv storage.Store
}

func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Get returns the current profile, or an empty-valued profile if none
// has been saved yet.
func (s *Store) Get() (NonprofitProfile, error) {
	var p NonprofitProfile
	if _, err := s.kv.Get(storage.KeyProfile, &p); err != nil {
		return NonprofitProfile{}, fmt.Errorf("error loading profile: %v", err)
	}
	return p, nil
}

// Save replaces the stored profile wholesale. There is no partial merge.
func (s *Store) Save(p NonprofitProfile) error {
	if err := s.kv.Put(storage.KeyProfile, p); err != nil {
		return fmt.Errorf("error saving profile: %v", err)
	}
	return nil
}

// Reset replaces the stored profile with an empty one. The profile is
// never deleted outright.
func (s *Store) Reset() error {
	return s.Save(NonprofitProfile{})
}
