package domain_test

import (
	"testing"

	"github.com/aretw0/hooksett/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoles_Builtins(t *testing.T) {
	roles := domain.NewRoles()

	for name, tag := range map[string]domain.Role{
		"Parameter": domain.RoleParameter,
		"Metric":    domain.RoleMetric,
		"Artifact":  domain.RoleArtifact,
		"Traced":    domain.RoleTraced,
	} {
		got, ok := roles.ByName(name)
		require.True(t, ok, "built-in role %s should be registered", name)
		assert.Equal(t, tag, got)
		assert.Equal(t, name, roles.Name(tag))
	}
}

func TestRoles_RegisterCustom(t *testing.T) {
	roles := domain.NewRoles()
	const hyper = domain.Role(100)

	roles.Register("Hyper", hyper)

	got, ok := roles.ByName("Hyper")
	require.True(t, ok)
	assert.Equal(t, hyper, got)
	assert.Equal(t, "Hyper", roles.Name(hyper))
}

func TestRoles_LastWriteWins(t *testing.T) {
	roles := domain.NewRoles()
	const first = domain.Role(101)
	const second = domain.Role(102)

	roles.Register("Custom", first)
	roles.Register("Custom", second)

	got, ok := roles.ByName("Custom")
	require.True(t, ok)
	assert.Equal(t, second, got)

	// The superseded tag no longer reverse-maps.
	assert.Equal(t, "Unknown", roles.Name(first))
	assert.Equal(t, "Custom", roles.Name(second))
}

func TestRoles_UnknownName(t *testing.T) {
	roles := domain.NewRoles()
	_, ok := roles.ByName("Nope")
	assert.False(t, ok)
	assert.Equal(t, "Unknown", roles.Name(domain.Role(999)))
}
