package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumLabels(t *testing.T) {
	assert.Equal(t, "Manufacturer", RoleManufacturer.String())
	assert.Equal(t, "Admin", RoleAdmin.String())
	assert.Equal(t, "Pending", StatusPending.String())
	assert.Equal(t, "Blocked", StatusBlocked.String())
	assert.Equal(t, "Manufactured", StageManufactured.String())
	assert.Equal(t, "Lost", StageLost.String())

	assert.Equal(t, "Unknown", Role(99).String())
	assert.Equal(t, "Unknown", UserStatus(99).String())
	assert.Equal(t, "Unknown", Stage(99).String())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role(4).Valid())
	assert.True(t, StatusBlocked.Valid())
	assert.False(t, UserStatus(5).Valid())
	assert.True(t, StageLost.Valid())
	assert.False(t, Stage(5).Valid())
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusBlocked.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusActive.Terminal())
	assert.False(t, StatusDeactivated.Terminal())

	assert.True(t, StageSold.Terminal())
	assert.True(t, StageLost.Terminal())
	assert.False(t, StageManufactured.Terminal())
	assert.False(t, StageDistributor.Terminal())
	assert.False(t, StageRetailer.Terminal())
}

func TestRoleByLabel(t *testing.T) {
	role, ok := RoleByLabel("Distributor")
	assert.True(t, ok)
	assert.Equal(t, RoleDistributor, role)

	_, ok = RoleByLabel("distributor")
	assert.False(t, ok)

	_, ok = RoleByLabel("")
	assert.False(t, ok)
}

func TestOptionListsCoverEveryValue(t *testing.T) {
	assert.Len(t, RoleOptions, 4)
	assert.Len(t, UserStatusOptions, 5)
	assert.Len(t, StageOptions, 5)

	for _, o := range StageOptions {
		assert.True(t, Stage(o.Value).Valid())
		assert.Equal(t, o.Label, Stage(o.Value).String())
	}
}
