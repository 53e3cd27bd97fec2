package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetMembership(t *testing.T) {
	s := NewSet([]Grant{
		{Module: ModuleInquiries, Action: ActionView},
		{Module: ModuleInquiries, Action: ActionUpdate},
		{Module: ModulePrices, Action: ActionView},
	})

	assert.True(t, s.Has(ModuleInquiries, ActionView))
	assert.True(t, s.Has(ModuleInquiries, ActionUpdate))
	assert.True(t, s.Has(ModulePrices, ActionView))

	assert.False(t, s.Has(ModuleInquiries, ActionDelete))
	assert.False(t, s.Has(ModulePrices, ActionUpdate))
	assert.False(t, s.Has(ModuleUsers, ActionView))
}

func TestSetDuplicatesCollapse(t *testing.T) {
	s := NewSet([]Grant{
		{Module: ModulePrices, Action: ActionView},
		{Module: ModulePrices, Action: ActionView},
	})
	assert.Equal(t, 1, s.Len())
}

func TestNilSet(t *testing.T) {
	var s *Set
	assert.False(t, s.Has(ModulePrices, ActionView))
	assert.Nil(t, s.Grants())
	assert.Equal(t, 0, s.Len())
}

func TestGrantsRoundTrip(t *testing.T) {
	in := []Grant{
		{Module: ModuleUsers, Action: ActionCreate},
		{Module: ModuleSettings, Action: ActionUpdate},
	}
	out := NewSet(in).Grants()
	assert.ElementsMatch(t, in, out)
}
