package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rllagas/csm-server/models"
	"github.com/rllagas/csm-server/rbac"
)

// guardRouter mounts the handler chain behind a stub that injects the user
// the way AuthJWT would. A nil user means a guest request.
func guardRouter(u *models.User, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/overview", func(c *gin.Context) {
		if u != nil {
			c.Set(CtxUser, *u)
		}
	}, guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequirePageGuestRedirect(t *testing.T) {
	r := guardRouter(nil, RequirePage(rbac.DefaultRoute))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/overview?tab=summary", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Foverview%3Ftab%3Dsummary", body["redirect"])
}

func TestRequirePageRoleless(t *testing.T) {
	respondent := &models.User{ID: 7, Email: "r@example.com"}

	tests := []struct {
		name string
		page string
		want int
	}{
		{"overview allowed", rbac.DefaultRoute, http.StatusOK},
		{"other pages denied", "responses", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := guardRouter(respondent, RequirePage(tt.page))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/overview", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequirePageRoles(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed []string
		want    int
	}{
		{"listed role passes", "analyst", []string{"analyst"}, http.StatusOK},
		{"alias spelling passes", "Report Viewer", []string{"analyst"}, http.StatusOK},
		{"unlisted role denied", "support", []string{"analyst"}, http.StatusForbidden},
		{"superadmin always passes", "superadmin", []string{"analyst"}, http.StatusOK},
		{"empty list admits any role", "support", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &models.User{ID: 1, Role: tt.role, IsAdmin: true}
			r := guardRouter(u, RequirePage("responses", tt.allowed...))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/overview", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		cap  rbac.Capability
		want int
	}{
		{"guest", nil, rbac.CapViewReports, http.StatusUnauthorized},
		{"role without grant", &models.User{Role: "support", IsAdmin: true}, rbac.CapViewReports, http.StatusForbidden},
		{"role with grant", &models.User{Role: "analyst", IsAdmin: true}, rbac.CapViewReports, http.StatusOK},
		{"unknown role fails closed", &models.User{Role: "manager", IsAdmin: true}, rbac.CapViewReports, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := guardRouter(tt.user, RequireCapability(tt.cap))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/overview", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
