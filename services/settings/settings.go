// Package settings resolves the AI credential and the mock-data flag.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"grantsassist/backend/services/ai"
	"grantsassist/backend/services/storage"
)

// ErrEnvManaged is returned when a caller tries to change a credential
// that is supplied by the environment.
var ErrEnvManaged = errors.New("credential is managed by the environment and cannot be changed here")

// Settings backs the AI gateway's credential resolution and the
// view shell's mock-data toggle. The credential comes from exactly one
// source: the environment value captured at startup if present,
// otherwise the user-supplied value in the key-value store. The two are
// never layered.
type Settings struct {
	kv            storage.Store
	envCredential string
}

func New(kv storage.Store, envCredential string) *Settings {
	return &Settings{kv: kv, envCredential: strings.TrimSpace(envCredential)}
}

// Credential implements ai.CredentialSource.
func (s *Settings) Credential() (string, error) {
	if s.envCredential != "" {
		return s.envCredential, nil
	}

	var key string
	ok, err := s.kv.Get(storage.KeyAPICredential, &key)
	if err != nil {
		return "", fmt.Errorf("error reading credential: %v", err)
	}
	if !ok || strings.TrimSpace(key) == "" {
		return "", ai.ErrMissingCredential
	}
	return key, nil
}

// HasCredential reports whether a credential is configured, without
// exposing it.
func (s *Settings) HasCredential() bool {
	_, err := s.Credential()
	return err == nil
}

// EnvManaged reports whether the credential comes from the environment.
func (s *Settings) EnvManaged() bool {
	return s.envCredential != ""
}

// SetCredential stores a user-supplied credential.
func (s *Settings) SetCredential(key string) error {
	if s.envCredential != "" {
		return ErrEnvManaged
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("credential must not be blank")
	}
	return s.kv.Put(storage.KeyAPICredential, key)
}

// ClearCredential removes the user-supplied credential.
func (s *Settings) ClearCredential() error {
	if s.envCredential != "" {
		return ErrEnvManaged
	}
	return s.kv.Delete(storage.KeyAPICredential)
}

// MockMode reports whether the engine should serve generated data
// instead of calling the AI service. Defaults to off.
func (s *Settings) MockMode() bool {
	var on bool
	if ok, err := s.kv.Get(storage.KeyModeFlag, &on); err != nil || !ok {
		return false
	}
	return on
}

// SetMockMode toggles mock-data mode.
func (s *Settings) SetMockMode(on bool) error {
	return s.kv.Put(storage.KeyModeFlag, on)
}
