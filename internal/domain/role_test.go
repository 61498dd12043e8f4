package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Admin ")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, r)

	_, err = ParseRole("owner")
	require.Error(t, err)
}

func TestCapabilitiesFor(t *testing.T) {
	admin := CapabilitiesFor(RoleAdmin)
	require.True(t, admin.IsAdmin)
	for _, c := range []Capability{CapRegisterMembers, CapAddDeliveries, CapManagePayments, CapCaptureSnapshots} {
		require.True(t, admin.Allows(c), string(c))
	}

	user := CapabilitiesFor(RoleUser)
	require.False(t, user.IsAdmin)
	for _, c := range []Capability{CapRegisterMembers, CapAddDeliveries, CapManagePayments, CapCaptureSnapshots} {
		require.False(t, user.Allows(c), string(c))
	}

	unknown := CapabilitiesFor("")
	require.Equal(t, RoleUser, unknown.Role)
	require.False(t, unknown.Allows("anything"))
}
