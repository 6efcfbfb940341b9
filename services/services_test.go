package services

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"testing"

	"github.com/kendall-kelly/table-orders-api/events"
	"github.com/kendall-kelly/table-orders-api/ledger"
	"github.com/kendall-kelly/table-orders-api/models"
	"github.com/kendall-kelly/table-orders-api/tests/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	db         *gorm.DB
	ledger     *ledger.Ledger
	recorder   *events.Recorder
	resolution *ResolutionService
	closure    *ClosureService
	queries    *OrderQueries
	tables     []models.Table
	menus      []models.MenuItem
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// sequence returns an estimator yielding values in turn, repeating the last one
func sequence(values ...int) CookingTimeEstimator {
	i := 0
	return EstimatorFunc(func() int {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	})
}

func setupServices(t *testing.T, estimator CookingTimeEstimator) env {
	db := testutil.NewTestDB(t)
	l := ledger.New(db)
	rec := events.NewRecorder()
	log := quietLogger()

	return env{
		db:         db,
		ledger:     l,
		recorder:   rec,
		resolution: NewResolutionService(l, estimator, rec, log),
		closure:    NewClosureService(l, rec, log),
		queries:    NewOrderQueries(l),
		tables:     testutil.SeedTables(t, db, "T-01", "T-02"),
		menus:      testutil.SeedMenuItems(t, db, "Menu-01", "Menu-02", "Menu-03"),
	}
}

func (e env) line(t *testing.T, tableID, menuID uint) *models.OrderLine {
	t.Helper()
	var line models.OrderLine
	err := e.db.Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.table_id = ? AND order_lines.menu_id = ?", tableID, menuID).
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	require.NoError(t, err)
	return &line
}

func (e env) orderCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Order{}).Count(&n).Error)
	return n
}

func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	require.Len(t, form.File["image"], 1)
	return form.File["image"][0]
}
