package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/table-orders-api/events"
	"github.com/kendall-kelly/table-orders-api/services"
	"github.com/kendall-kelly/table-orders-api/tests/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testAPI struct {
	router   *gin.Engine
	db       *gorm.DB
	recorder *events.Recorder
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// setupTestAPI wires the full handler stack over an in-memory database.
// images may be nil to run with menu photos disabled.
func setupTestAPI(t *testing.T, images services.ImageService) testAPI {
	db := testutil.NewTestDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	rec := events.NewRecorder()
	h := New(Dependencies{
		DB:         db,
		Images:     images,
		Estimator:  services.EstimatorFunc(func() int { return 10 }),
		Dispatcher: rec,
		Log:        log,
	})

	router := setupTestRouter()
	h.RegisterRoutes(router.Group("/api/v1"))
	return testAPI{router: router, db: db, recorder: rec}
}

func (api testAPI) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w, response
}

func (api testAPI) upload(t *testing.T, path, field, filename string, content []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w, response
}

func errorCode(response map[string]interface{}) string {
	errObj, _ := response["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}
