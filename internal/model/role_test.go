package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	for _, role := range AllRoles {
		assert.True(t, role.Valid(), role)
	}
	assert.False(t, Role("Superuser").Valid())
	assert.False(t, Role("patient").Valid(), "role comparison is case sensitive")
	assert.False(t, Role("").Valid())
}

func TestRoleUnmarshalJSON(t *testing.T) {
	var role Role
	require.NoError(t, json.Unmarshal([]byte(`"Hospital Admin"`), &role))
	assert.Equal(t, RoleHospitalAdmin, role)

	assert.Error(t, json.Unmarshal([]byte(`"Nurse"`), &role))
	assert.Error(t, json.Unmarshal([]byte(`42`), &role))
}
