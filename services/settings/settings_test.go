package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantsassist/backend/services/ai"
	"grantsassist/backend/services/storage"
)

func TestCredential_MissingByDefault(t *testing.T) {
	s := New(storage.NewMemory(), "")

	_, err := s.Credential()
	assert.ErrorIs(t, err, ai.ErrMissingCredential)
	assert.False(t, s.HasCredential())
}

func TestCredential_EnvWinsAndLocksOutStoredValue(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Put(storage.KeyAPICredential, "stored-key"))

	s := New(kv, "env-key")

	key, err := s.Credential()
	require.NoError(t, err)
	assert.Equal(t, "env-key", key, "environment credential must never be layered with the stored one")
	assert.True(t, s.EnvManaged())

	assert.ErrorIs(t, s.SetCredential("other"), ErrEnvManaged)
	assert.ErrorIs(t, s.ClearCredential(), ErrEnvManaged)
}

func TestCredential_SetAndClear(t *testing.T) {
	s := New(storage.NewMemory(), "")

	require.NoError(t, s.SetCredential("user-key"))
	key, err := s.Credential()
	require.NoError(t, err)
	assert.Equal(t, "user-key", key)

	require.NoError(t, s.ClearCredential())
	_, err = s.Credential()
	assert.ErrorIs(t, err, ai.ErrMissingCredential)
}

func TestCredential_BlankRejected(t *testing.T) {
	s := New(storage.NewMemory(), "")
	assert.Error(t, s.SetCredential("   "))
}

func TestMockMode(t *testing.T) {
	s := New(storage.NewMemory(), "")

	assert.False(t, s.MockMode())
	require.NoError(t, s.SetMockMode(true))
	assert.True(t, s.MockMode())
	require.NoError(t, s.SetMockMode(false))
	assert.False(t, s.MockMode())
}
