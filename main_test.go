package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/table-orders-api/config"
	"github.com/kendall-kelly/table-orders-api/tests/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// TestHealthCheck is a unit test for the healthCheck handler function
func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	healthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 2, "Response should have exactly 2 fields")
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Table orders API is running", response["message"])
}

func TestDatabaseStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	previous := config.GetDB()
	t.Cleanup(func() { config.SetDB(previous) })

	tests := []struct {
		name       string
		connect    bool
		wantStatus int
		wantCode   string
	}{
		{name: "connected", connect: true, wantStatus: http.StatusOK},
		{name: "not connected", connect: false, wantStatus: http.StatusInternalServerError, wantCode: "DATABASE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.connect {
				config.SetDB(testutil.NewTestDB(t))
			} else {
				config.SetDB(nil)
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/database/status", nil)

			databaseStatus(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.wantCode != "" {
				assert.Equal(t, false, response["success"])
				assert.Equal(t, tt.wantCode, response["error"].(map[string]interface{})["code"])
				return
			}

			assert.Equal(t, true, response["success"])
			assert.Equal(t, "sqlite", response["dialect"])
			assert.Subset(t, response["tables"],
				[]interface{}{"tables", "menu_items", "orders", "order_lines"})
		})
	}
}
