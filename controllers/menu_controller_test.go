package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/kendall-kelly/table-orders-api/services"
	"github.com/kendall-kelly/table-orders-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMenu(t *testing.T) {
	api := setupTestAPI(t, nil)

	w, response := api.do(t, http.MethodPost, "/api/v1/menus", map[string]interface{}{"name": "Ramen"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := response["data"].(map[string]interface{})["id"]

	w, response = api.do(t, http.MethodPost, "/api/v1/menus", map[string]interface{}{"name": "Ramen"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, response["data"].(map[string]interface{})["id"])

	w, response = api.do(t, http.MethodPost, "/api/v1/menus", map[string]interface{}{"title": "Ramen"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))

	w, response = api.do(t, http.MethodGet, "/api/v1/menus", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := response["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Ramen", items[0].(map[string]interface{})["name"])
}

func TestUploadMenuImage(t *testing.T) {
	images := services.NewMockImageService()
	api := setupTestAPI(t, images)
	menu := testutil.SeedMenuItems(t, api.db, "Ramen")[0]
	path := fmt.Sprintf("/api/v1/menus/%d/image", menu.ID)

	t.Run("stores the photo", func(t *testing.T) {
		w, response := api.upload(t, path, "image", "ramen.png", []byte("png bytes"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		data := response["data"].(map[string]interface{})
		key := data["image_s3_key"].(string)
		assert.Equal(t, fmt.Sprintf("menu-items/%d/mock_ramen.png", menu.ID), key)
		assert.Contains(t, data["image_url"], key)
		assert.True(t, images.ImageExists(key))
	})

	t.Run("listing includes the photo URL", func(t *testing.T) {
		w, response := api.do(t, http.MethodGet, "/api/v1/menus", nil)
		require.Equal(t, http.StatusOK, w.Code)
		item := response["data"].([]interface{})[0].(map[string]interface{})
		assert.NotEmpty(t, item["image_url"])
	})

	t.Run("rejects unsupported formats", func(t *testing.T) {
		w, response := api.upload(t, path, "image", "ramen.gif", []byte("gif"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_FILE_FORMAT", errorCode(response))
	})

	t.Run("requires a file", func(t *testing.T) {
		w, response := api.upload(t, path, "", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "NO_FILE", errorCode(response))
	})

	t.Run("unknown menu item", func(t *testing.T) {
		w, response := api.upload(t, "/api/v1/menus/999/image", "image", "ramen.png", []byte("png"))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(response))
	})
}

func TestUploadMenuImageDisabled(t *testing.T) {
	api := setupTestAPI(t, nil)
	menu := testutil.SeedMenuItems(t, api.db, "Ramen")[0]

	w, response := api.upload(t, fmt.Sprintf("/api/v1/menus/%d/image", menu.ID), "image", "ramen.png", []byte("png"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "IMAGES_DISABLED", errorCode(response))
}
