package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountStateOf(t *testing.T) {
	assert.Equal(t, StateActive, AccountStateOf(true, true))
	assert.Equal(t, StatePending, AccountStateOf(false, false))
	assert.Equal(t, StatePending, AccountStateOf(true, false))
	assert.Equal(t, StatePending, AccountStateOf(false, true))
}

func TestInitialState(t *testing.T) {
	assert.Equal(t, StateActive, InitialState("superadmin"))
	assert.Equal(t, StateActive, InitialState("System Admin"))
	assert.Equal(t, StatePending, InitialState("surveyadmin"))
	assert.Equal(t, StatePending, InitialState(""))
}

func TestCanApproveAccount(t *testing.T) {
	assert.True(t, CanApproveAccount("superadmin", 1, 2))
	assert.False(t, CanApproveAccount("superadmin", 1, 1), "never the own row")
	assert.False(t, CanApproveAccount("surveyadmin", 1, 2))
}

func TestCanAssignRole(t *testing.T) {
	assert.True(t, CanAssignRole("system admin", 7, 9))
	assert.False(t, CanAssignRole("system admin", 7, 7))
	assert.False(t, CanAssignRole("analyst", 7, 9))
}
