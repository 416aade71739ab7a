package rbac

import "strings"

// Role is the canonical permission level of an admin account. A plain
// respondent carries no role at all.
type Role string

const (
	RoleSuperAdmin  Role = "superadmin"
	RoleSurveyAdmin Role = "surveyadmin"
	RoleAnalyst     Role = "analyst"
	RoleSupport     Role = "support"

	// RoleNone is what every unknown or empty role string normalizes to.
	RoleNone Role = ""
)

// Every canonical role has exactly one legacy alias; both spellings must
// be accepted wherever a raw role string enters the system.
var roleAliases = map[string]Role{
	"superadmin":       RoleSuperAdmin,
	"system admin":     RoleSuperAdmin,
	"surveyadmin":      RoleSurveyAdmin,
	"survey admin":     RoleSurveyAdmin,
	"analyst":          RoleAnalyst,
	"report viewer":    RoleAnalyst,
	"support":          RoleSupport,
	"feedback manager": RoleSupport,
}

// Normalize resolves a raw role string (any casing, surrounding space,
// either alias spelling) to its canonical Role. Unrecognized input yields
// RoleNone, which fails every capability check.
func Normalize(raw string) Role {
	return roleAliases[strings.ToLower(strings.TrimSpace(raw))]
}

// Known reports whether the raw string names a valid role.
func Known(raw string) bool {
	return Normalize(raw) != RoleNone
}

// Capability is one specific administrative permission. Capabilities are
// granted per role only, never per user.
type Capability string

const (
	CapEditSurvey        Capability = "editSurvey"
	CapEditRoles         Capability = "editRoles"
	CapViewReports       Capability = "viewReports"
	CapManageFeedback    Capability = "manageFeedback"
	CapViewNotifications Capability = "viewNotifications"
)

var grants = map[Role][]Capability{
	RoleSuperAdmin:  {CapEditSurvey, CapEditRoles, CapViewReports, CapManageFeedback, CapViewNotifications},
	RoleSurveyAdmin: {CapEditSurvey, CapViewReports, CapManageFeedback, CapViewNotifications},
	RoleAnalyst:     {CapViewReports},
	RoleSupport:     {CapManageFeedback},
}

// Capabilities returns the set granted to a raw role string.
func Capabilities(raw string) []Capability {
	return grants[Normalize(raw)]
}

// Has reports whether the raw role string grants the capability.
// Malformed roles fail closed.
func Has(raw string, cap Capability) bool {
	for _, c := range grants[Normalize(raw)] {
		if c == cap {
			return true
		}
	}
	return false
}

func CanEditSurvey(role string) bool        { return Has(role, CapEditSurvey) }
func CanEditRoles(role string) bool         { return Has(role, CapEditRoles) }
func CanViewReports(role string) bool       { return Has(role, CapViewReports) }
func CanManageFeedback(role string) bool    { return Has(role, CapManageFeedback) }
func CanViewNotifications(role string) bool { return Has(role, CapViewNotifications) }
