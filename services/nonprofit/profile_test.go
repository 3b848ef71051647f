package nonprofit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantsassist/backend/services/storage"
)

func TestIsComplete(t *testing.T) {
	complete := NonprofitProfile{
		OrgName: "Acme Relief",
		Mission: "feed families",
		Goals:   "expand pantry",
		Needs:   "$10k refrigeration",
	}

	tests := []struct {
		name   string
		mutate func(*NonprofitProfile)
		want   bool
	}{
		{"all required fields set", func(p *NonprofitProfile) {}, true},
		{"missing org name", func(p *NonprofitProfile) { p.OrgName = "" }, false},
		{"missing mission", func(p *NonprofitProfile) { p.Mission = "" }, false},
		{"missing goals", func(p *NonprofitProfile) { p.Goals = "" }, false},
		{"missing needs", func(p *NonprofitProfile) { p.Needs = "" }, false},
		{"whitespace-only mission", func(p *NonprofitProfile) { p.Mission = "   \t" }, false},
		{"optional fields may be empty", func(p *NonprofitProfile) { p.Address = ""; p.Website = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := complete
			tt.mutate(&p)
			assert.Equal(t, tt.want, IsComplete(p))
		})
	}
}

func TestStore_GetDefaultsToEmpty(t *testing.T) {
	s := NewStore(storage.NewMemory())

	p, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, NonprofitProfile{}, p)
}

func TestStore_SaveReplacesWholesale(t *testing.T) {
	s := NewStore(storage.NewMemory())

	require.NoError(t, s.Save(NonprofitProfile{OrgName: "Acme Relief", Address: "1 Main St"}))
	require.NoError(t, s.Save(NonprofitProfile{OrgName: "Acme Relief"}))

	p, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, "Acme Relief", p.OrgName)
	assert.Empty(t, p.Address, "save must not merge with the previous profile")
}

func TestStore_Reset(t *testing.T) {
	s := NewStore(storage.NewMemory())
	require.NoError(t, s.Save(NonprofitProfile{OrgName: "Acme Relief", Mission: "feed families"}))
	require.NoError(t, s.Reset())

	p, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, NonprofitProfile{}, p)
}
