package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{"superadmin", RoleSuperAdmin},
		{"system admin", RoleSuperAdmin},
		{" SYSTEM ADMIN ", RoleSuperAdmin},
		{"SurveyAdmin", RoleSurveyAdmin},
		{"survey admin", RoleSurveyAdmin},
		{"report viewer", RoleAnalyst},
		{"Analyst", RoleAnalyst},
		{"feedback manager", RoleSupport},
		{"support", RoleSupport},
		{"", RoleNone},
		{"owner", RoleNone},
		{"admin:", RoleNone},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, Normalize(tt.raw), "Normalize(%q)", tt.raw)
	}
}

func TestRoleAliasEquivalence(t *testing.T) {
	assert.True(t, CanEditSurvey("SurveyAdmin"))
	assert.True(t, CanEditSurvey("survey admin"))
	assert.True(t, CanEditSurvey(" SURVEYADMIN "))
	assert.False(t, CanEditSurvey("analyst"))
}

func TestCapabilityTable(t *testing.T) {
	tests := []struct {
		role              string
		editSurvey        bool
		editRoles         bool
		viewReports       bool
		manageFeedback    bool
		viewNotifications bool
	}{
		{"superadmin", true, true, true, true, true},
		{"surveyadmin", true, false, true, true, true},
		{"analyst", false, false, true, false, false},
		{"support", false, false, false, true, false},
		{"", false, false, false, false, false},
		{"garbage", false, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.editSurvey, CanEditSurvey(tt.role))
			assert.Equal(t, tt.editRoles, CanEditRoles(tt.role))
			assert.Equal(t, tt.viewReports, CanViewReports(tt.role))
			assert.Equal(t, tt.manageFeedback, CanManageFeedback(tt.role))
			assert.Equal(t, tt.viewNotifications, CanViewNotifications(tt.role))
		})
	}
}

func TestSuperadminHasEveryCapability(t *testing.T) {
	caps := []Capability{CapEditSurvey, CapEditRoles, CapViewReports, CapManageFeedback, CapViewNotifications}
	for _, spelling := range []string{"superadmin", "system admin"} {
		for _, c := range caps {
			assert.Truef(t, Has(spelling, c), "%s should grant %s", spelling, c)
		}
	}
}

func TestSupportScenario(t *testing.T) {
	// Principal with the support role: may manage feedback, may not view
	// notifications, and is denied the reports page.
	assert.False(t, CanViewNotifications("support"))
	assert.True(t, CanManageFeedback("support"))

	d := Authorize(Principal{Authenticated: true, Role: "support"},
		"reports", "/admin/reports", []string{"superadmin", "surveyadmin", "analyst"})
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Reason)
}
