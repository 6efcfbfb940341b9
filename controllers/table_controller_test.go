package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/kendall-kelly/table-orders-api/models"
	"github.com/kendall-kelly/table-orders-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTable(t *testing.T) {
	api := setupTestAPI(t, nil)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedCode   string
	}{
		{"registers a new table", map[string]interface{}{"code": "T-01"}, http.StatusCreated, ""},
		{"returns the existing table", map[string]interface{}{"code": "T-01"}, http.StatusOK, ""},
		{"missing code", map[string]interface{}{}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"blank code", map[string]interface{}{"code": "   "}, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	var firstID float64
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := api.do(t, http.MethodPost, "/api/v1/tables", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				assert.False(t, response["success"].(bool))
				assert.Equal(t, tt.expectedCode, errorCode(response))
				return
			}

			assert.True(t, response["success"].(bool))
			data := response["data"].(map[string]interface{})
			assert.Equal(t, "T-01", data["code"])
			if firstID == 0 {
				firstID = data["id"].(float64)
			}
			assert.Equal(t, firstID, data["id"])
		})
	}
}

func TestListTables(t *testing.T) {
	api := setupTestAPI(t, nil)

	w, response := api.do(t, http.MethodGet, "/api/v1/tables", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, response["data"])

	testutil.SeedTables(t, api.db, "T-01", "T-02")

	w, response = api.do(t, http.MethodGet, "/api/v1/tables", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := response["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "T-02", data[1].(map[string]interface{})["code"])
}

func TestTableOrderViews(t *testing.T) {
	api := setupTestAPI(t, nil)
	tables := testutil.SeedTables(t, api.db, "T-01", "T-02")
	menus := testutil.SeedMenuItems(t, api.db, "Ramen", "Gyoza")
	testutil.SeedOrder(t, api.db, tables[0].ID,
		models.OrderLine{MenuID: menus[0].ID, Quantity: 2, CookingTime: 18},
		models.OrderLine{MenuID: menus[1].ID, Quantity: 1, CookingTime: 7},
	)

	t.Run("order for table", func(t *testing.T) {
		w, response := api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tables/%d/order", tables[0].ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "T-01", data["table_code"])
		assert.Equal(t, float64(25), data["total_cooking_time"])
		assert.Len(t, data["lines"], 2)
	})

	t.Run("table without order", func(t *testing.T) {
		w, response := api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tables/%d/order", tables[1].ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(response))
	})

	t.Run("table items", func(t *testing.T) {
		w, response := api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tables/%d/items", tables[0].ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		items := response["data"].([]interface{})
		require.Len(t, items, 2)
		first := items[0].(map[string]interface{})
		assert.Equal(t, "Ramen", first["menu_name"])
		assert.Equal(t, float64(2), first["quantity"])
		assert.Equal(t, float64(18), first["cooking_time"])
	})

	t.Run("items of a table without order", func(t *testing.T) {
		w, response := api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tables/%d/items", tables[1].ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []interface{}{}, response["data"])
	})

	t.Run("single item", func(t *testing.T) {
		w, response := api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tables/%d/items/%d", tables[0].ID, menus[1].ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "Gyoza", data["menu_name"])
	})

	t.Run("missing item", func(t *testing.T) {
		w, response := api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tables/%d/items/%d", tables[1].ID, menus[1].ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(response))
	})
}

func TestTableRoutesRejectMalformedIDs(t *testing.T) {
	api := setupTestAPI(t, nil)

	paths := []string{
		"/api/v1/tables/abc/order",
		"/api/v1/tables/0/items",
		"/api/v1/tables/-1/items",
		"/api/v1/tables/1/items/x",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w, response := api.do(t, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "INVALID_ID", errorCode(response))
		})
	}
}
