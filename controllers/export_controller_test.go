package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rllagas/csm-server/config"
)

// brokenDB swaps config.DB for a connection where every statement fails,
// restoring the previous handle when the test ends.
func brokenDB(t *testing.T) {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	prev := config.DB
	config.DB = gdb
	t.Cleanup(func() {
		config.DB = prev
		sqlDB.Close()
	})
}

func exportRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/exports", CreateExport)
	return r
}

func TestCreateExportRejectsUnknownFormat(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/exports", strings.NewReader(`{"format":"pdf"}`))
	req.Header.Set("Content-Type", "application/json")
	exportRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateExportQueueFailure(t *testing.T) {
	brokenDB(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/exports", strings.NewReader(`{"format":"csv"}`))
	req.Header.Set("Content-Type", "application/json")
	exportRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Could not queue export")
}
