package rbac

import "net/url"

// DefaultRoute is the only admin page an authenticated principal without a
// role or admin flag may open.
const DefaultRoute = "overview"

// LoginPath is where denied guests are redirected; the requested path is
// preserved as the "next" query parameter.
const LoginPath = "/admin/login"

// Principal is the identity a route guard decides about. Authenticated
// false means a guest; IsAdmin is the legacy flag of accounts created
// before roles existed.
type Principal struct {
	Authenticated bool
	IsAdmin       bool
	Role          string
}

// Decision is the outcome of a guard check. Denial is a normal value, not
// an error: RedirectTo is set for guests, Reason otherwise.
type Decision struct {
	Allowed    bool
	RedirectTo string
	Reason     string
}

// Authorize decides whether the principal may open the route. allowedRoles
// empty means any authenticated admin; superadmin passes every guard.
func Authorize(p Principal, route string, requestedPath string, allowedRoles []string) Decision {
	if !p.Authenticated {
		return Decision{
			RedirectTo: LoginPath + "?next=" + url.QueryEscape(requestedPath),
			Reason:     "login required",
		}
	}

	role := Normalize(p.Role)
	if role == RoleNone {
		// Legacy accounts flagged admin before roles existed pass; everyone
		// else only reaches the default page.
		if p.IsAdmin || route == DefaultRoute {
			return Decision{Allowed: true}
		}
		return Decision{Reason: "you do not have access to this page"}
	}

	if role == RoleSuperAdmin {
		return Decision{Allowed: true}
	}
	if len(allowedRoles) == 0 {
		return Decision{Allowed: true}
	}
	for _, allowed := range allowedRoles {
		if Normalize(allowed) == role {
			return Decision{Allowed: true}
		}
	}
	return Decision{Reason: "you do not have access to this page"}
}
