package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeGuest(t *testing.T) {
	d := Authorize(Principal{}, "reports", "/admin/reports?tab=2", []string{"analyst"})
	assert.False(t, d.Allowed)
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Freports%3Ftab%3D2", d.RedirectTo)
}

func TestAuthorizeLegacyAdminFlag(t *testing.T) {
	p := Principal{Authenticated: true, IsAdmin: true}
	assert.True(t, Authorize(p, "reports", "/admin/reports", []string{"analyst"}).Allowed)
	assert.True(t, Authorize(p, "accounts", "/admin/accounts", nil).Allowed)
}

func TestAuthorizeNoRole(t *testing.T) {
	p := Principal{Authenticated: true}
	assert.True(t, Authorize(p, DefaultRoute, "/admin", nil).Allowed, "default page only")
	assert.False(t, Authorize(p, "reports", "/admin/reports", nil).Allowed)
}

func TestAuthorizeRoleList(t *testing.T) {
	allowed := []string{"surveyadmin", "analyst"}

	tests := []struct {
		role string
		want bool
	}{
		{"surveyadmin", true},
		{"survey admin", true}, // alias spelling in the principal
		{"report viewer", true},
		{"support", false},
		{"superadmin", true},   // passes every guard
		{"system admin", true}, // superadmin alias
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			d := Authorize(Principal{Authenticated: true, Role: tt.role}, "reports", "/admin/reports", allowed)
			assert.Equal(t, tt.want, d.Allowed)
		})
	}
}

func TestAuthorizeAliasInAllowedList(t *testing.T) {
	d := Authorize(Principal{Authenticated: true, Role: "analyst"},
		"reports", "/admin/reports", []string{"report viewer"})
	assert.True(t, d.Allowed, "allowed-role lists accept alias spellings too")
}

func TestAuthorizeEmptyAllowedList(t *testing.T) {
	d := Authorize(Principal{Authenticated: true, Role: "support"}, "feedback", "/admin/feedback", nil)
	assert.True(t, d.Allowed, "empty list means any role passes")
}
