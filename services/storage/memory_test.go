package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PutGet(t *testing.T) {
	m := NewMemory()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, m.Put("k", payload{Name: "acme", Count: 3}))

	var got payload
	ok, err := m.Get("k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Name: "acme", Count: 3}, got)
}

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory()

	var got string
	ok, err := m.Get("absent", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Put("k", "v"))
	require.NoError(t, m.Delete("k"))

	var got string
	ok, err := m.Get("k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_MalformedValueReadsAsMissing(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Put("k", "not an object"))

	var got struct{ X int }
	ok, err := m.Get("k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
