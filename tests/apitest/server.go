// Package apitest serves the full ordering API over an in-memory database for
// tests that talk to it over real HTTP.
package apitest

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/table-orders-api/controllers"
	"github.com/kendall-kelly/table-orders-api/events"
	"github.com/kendall-kelly/table-orders-api/services"
	"github.com/kendall-kelly/table-orders-api/tests/testutil"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Server is a running API backed by a fresh database
type Server struct {
	*httptest.Server
	DB     *gorm.DB
	Events *events.Recorder
}

// NewServer starts an API server whose cooking time estimate is always
// cookingTime. It is closed when the test ends.
func NewServer(t *testing.T, cookingTime int) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	db := testutil.NewTestDB(t)
	rec := events.NewRecorder()
	h := controllers.New(controllers.Dependencies{
		DB:         db,
		Estimator:  services.EstimatorFunc(func() int { return cookingTime }),
		Dispatcher: rec,
		Log:        log,
	})

	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &Server{Server: srv, DB: db, Events: rec}
}
