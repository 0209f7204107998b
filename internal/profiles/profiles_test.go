package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownProfiles(t *testing.T) {
	for _, name := range Names() {
		profile, ok := Get(name)
		require.True(t, ok, "built-in profile %s missing", name)
		assert.Equal(t, name, profile.Name)
		assert.NotEmpty(t, profile.Description)
		assert.NotEmpty(t, profile.Ports)

		for _, port := range profile.Ports {
			assert.GreaterOrEqual(t, port, 1)
			assert.LessOrEqual(t, port, 65535)
		}
	}
}

func TestGetUnknownProfile(t *testing.T) {
	_, ok := Get("stealth")
	assert.False(t, ok)
}

func TestFullProfileCoversWellKnownRange(t *testing.T) {
	profile, ok := Get(ProfileFull)
	require.True(t, ok)
	require.Len(t, profile.Ports, 1024)
	assert.Equal(t, 1, profile.Ports[0])
	assert.Equal(t, 1024, profile.Ports[1023])
}

func TestGetReturnsCopy(t *testing.T) {
	first, ok := Get(ProfileCore)
	require.True(t, ok)

	first.Ports[0] = 9999

	second, ok := Get(ProfileCore)
	require.True(t, ok)
	assert.NotEqual(t, 9999, second.Ports[0],
		"mutating a returned profile must not touch the table")
}

func TestNamesOrder(t *testing.T) {
	assert.Equal(t, []string{ProfileRecon, ProfileCore, ProfileFull}, Names())

	all := All()
	require.Len(t, all, 3)
	assert.Equal(t, ProfileRecon, all[0].Name)
}
