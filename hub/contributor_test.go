package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPersonRequiresFamilyName(t *testing.T) {
	_, ok := NewPerson("Jane", "  ")
	assert.False(t, ok)

	p, ok := NewPerson(" Jane ", "Public")
	require.True(t, ok)
	assert.Equal(t, Personal, p.Type)
	assert.Equal(t, "Jane", p.GivenName)
	assert.Equal(t, "Public", p.FamilyName)
	assert.Empty(t, p.Name)
}

func TestNewOrganizationRequiresName(t *testing.T) {
	_, ok := NewOrganization("")
	assert.False(t, ok)

	o, ok := NewOrganization("Caltech Library", Identifier{Identifier: "05dxps055", Scheme: SchemeROR})
	require.True(t, ok)
	assert.False(t, o.IsPerson())
	assert.Equal(t, "05dxps055", o.IdentifierOf(SchemeROR))
	assert.Empty(t, o.ORCID())
}

func TestNameForms(t *testing.T) {
	p, _ := NewPerson("Miguel", "de Icaza")
	assert.Equal(t, "Miguel de Icaza", DirectName(p))
	assert.Equal(t, "de Icaza, Miguel", InvertedName(p))
	assert.Equal(t, "Miguel de Icaza", DisplayName(p))

	solo, _ := NewPerson("", "cho45")
	assert.Equal(t, "cho45", InvertedName(solo))

	o, _ := NewOrganization("NASA")
	assert.Equal(t, "NASA", DisplayName(o))
}

func TestRoleAssignmentWithRole(t *testing.T) {
	p, _ := NewPerson("Mike", "Hucka")
	a := RoleAssignment{PersonOrOrg: p}.WithRole("contactperson")
	assert.Equal(t, "contactperson", a.RoleID())
	assert.Equal(t, "", a.WithRole("").RoleID())
}
