package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func registerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", Register)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAdminRequiresRole(t *testing.T) {
	r := registerRouter()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "admin without role",
			body: `{"name":"Ana","email":"ana@example.com","password":"secret1","admin":true}`,
		},
		{
			name: "admin with unknown role",
			body: `{"name":"Ana","email":"ana@example.com","password":"secret1","admin":true,"role":"boss"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/register", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), "role")
		})
	}
}
