package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rllagas/csm-server/rbac"
)

// RequireCapability blocks the endpoint unless the authenticated user's
// role grants the capability. This is the server-side counterpart of the
// dashboard's page gating; denial is a plain 403, never an error.
func RequireCapability(cap rbac.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		if !rbac.Has(u.Role, cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "You do not have access to this resource"})
			return
		}
		c.Next()
	}
}

// RequirePage applies the dashboard page guard to an endpoint. Guests get
// a 401 carrying the login redirect, an empty role list admits any admin,
// superadmin passes always. Pair it with OptionalAuth so the guard itself
// decides what a guest sees.
func RequirePage(page string, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		p := rbac.Principal{Authenticated: ok, IsAdmin: u.IsAdmin, Role: u.Role}
		d := rbac.Authorize(p, page, c.Request.URL.RequestURI(), allowed)
		if d.Allowed {
			c.Next()
			return
		}
		if d.RedirectTo != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized", "redirect": d.RedirectTo})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": d.Reason})
	}
}
