package grants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantsassist/backend/services/storage"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusDraft, StatusSubmitted, true},
		{StatusSubmitted, StatusAwarded, true},
		{StatusSubmitted, StatusDeclined, true},

		// No skipping Draft -> terminal.
		{StatusDraft, StatusAwarded, false},
		{StatusDraft, StatusDeclined, false},

		// No backward transitions.
		{StatusSubmitted, StatusDraft, false},
		{StatusAwarded, StatusDraft, false},
		{StatusAwarded, StatusSubmitted, false},
		{StatusDeclined, StatusSubmitted, false},

		// Terminal states stay terminal.
		{StatusAwarded, StatusDeclined, false},
		{StatusDeclined, StatusAwarded, false},

		// Self-transitions are not transitions.
		{StatusDraft, StatusDraft, false},
		{StatusSubmitted, StatusSubmitted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"Draft", "Submitted", "Awarded", "Declined"} {
		got, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, Status(valid), got)
	}

	_, err := ParseStatus("Approved")
	assert.Error(t, err)
}

func TestStore_CreateFromRecommendationSeed(t *testing.T) {
	s := NewStore(storage.NewMemory())

	p, err := s.Create("Community Fund", "Acme Trust")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Community Fund", p.GrantTitle)
	assert.Equal(t, "Acme Trust", p.Funder)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Empty(t, p.Proposal)
	assert.False(t, p.LastEdited.IsZero())
}

func TestStore_CreateDefaults(t *testing.T) {
	s := NewStore(storage.NewMemory())

	p, err := s.Create("", "")
	require.NoError(t, err)
	assert.Equal(t, "New Grant Project", p.GrantTitle)
	assert.Equal(t, "Funder Name", p.Funder)
}

func TestStore_CreatePrependsAndKeepsUniqueIDs(t *testing.T) {
	s := NewStore(storage.NewMemory())

	first, err := s.Create("First", "Funder A")
	require.NoError(t, err)
	second, err := s.Create("Second", "Funder B")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].GrantTitle)
	assert.Equal(t, "First", list[1].GrantTitle)
}

func TestStore_SaveReplacesByID(t *testing.T) {
	s := NewStore(storage.NewMemory())

	p, err := s.Create("Community Fund", "Acme Trust")
	require.NoError(t, err)

	p.Proposal = "We will expand our pantry."
	saved, err := s.Save(p)
	require.NoError(t, err)
	assert.Equal(t, p.ID, saved.ID)

	got, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "We will expand our pantry.", got.Proposal)
}

func TestStore_SaveUnknownID(t *testing.T) {
	s := NewStore(storage.NewMemory())
	_, err := s.Save(GrantProject{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_LastEditedNeverMovesBackward(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStoreWithClock(storage.NewMemory(), func() time.Time { return clock })

	p, err := s.Create("Community Fund", "Acme Trust")
	require.NoError(t, err)

	clock = clock.Add(time.Minute)
	p, err = s.Save(p)
	require.NoError(t, err)
	afterFirst := p.LastEdited

	// Clock regression (e.g. NTP step) must not produce an older stamp.
	clock = clock.Add(-time.Hour)
	p, err = s.Save(p)
	require.NoError(t, err)
	assert.False(t, p.LastEdited.Before(afterFirst))
}

func TestStore_Delete(t *testing.T) {
	s := NewStore(storage.NewMemory())

	p, err := s.Create("Community Fund", "Acme Trust")
	require.NoError(t, err)
	require.NoError(t, s.Delete(p.ID))

	_, err = s.Get(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(p.ID), ErrNotFound)
}
