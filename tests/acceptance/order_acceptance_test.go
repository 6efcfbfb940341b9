package acceptance

import (
	"context"
	"net/http"
	"testing"

	"github.com/kendall-kelly/table-orders-api/events"
	"github.com/kendall-kelly/table-orders-api/simulator"
	"github.com/kendall-kelly/table-orders-api/tests/apitest"
	"github.com/stretchr/testify/suite"
)

// OrderAcceptanceTestSuite walks one table through a full meal over real HTTP,
// the way a waiter's handheld would.
type OrderAcceptanceTestSuite struct {
	suite.Suite
	server *apitest.Server
	client *simulator.Client
	ctx    context.Context

	table   uint
	ramen   uint
	gyoza   uint
	orderID uint
}

func (suite *OrderAcceptanceTestSuite) SetupSuite() {
	suite.server = apitest.NewServer(suite.T(), 7)
	suite.client = simulator.NewClient(suite.server.URL, nil)
	suite.ctx = context.Background()

	var err error
	suite.table, err = suite.client.RegisterTable(suite.ctx, "T-01")
	suite.Require().NoError(err)
	suite.ramen, err = suite.client.RegisterMenu(suite.ctx, "Ramen")
	suite.Require().NoError(err)
	suite.gyoza, err = suite.client.RegisterMenu(suite.ctx, "Gyoza")
	suite.Require().NoError(err)
}

func (suite *OrderAcceptanceTestSuite) items() map[uint]simulator.Item {
	items, err := suite.client.TableItems(suite.ctx, suite.table)
	suite.Require().NoError(err)
	byMenu := make(map[uint]simulator.Item, len(items))
	for _, item := range items {
		byMenu[item.MenuID] = item
	}
	return byMenu
}

// The steps share one table and run in order.
func (suite *OrderAcceptanceTestSuite) TestMeal() {
	suite.Run("first order opens the tab", func() {
		res, err := suite.client.CreateOrder(suite.ctx, suite.table, []uint{suite.ramen, suite.gyoza})
		suite.Require().NoError(err)
		suite.Equal("created", res.Outcome)
		suite.orderID = res.OrderID

		items := suite.items()
		suite.Len(items, 2)
		suite.Equal(1, items[suite.ramen].Quantity)
		suite.Equal(1, items[suite.gyoza].Quantity)
	})

	suite.Run("second order joins the same tab", func() {
		res, err := suite.client.CreateOrder(suite.ctx, suite.table, []uint{suite.ramen, suite.ramen})
		suite.Require().NoError(err)
		suite.Equal("merged", res.Outcome)
		suite.Equal(suite.orderID, res.OrderID)

		ramen := suite.items()[suite.ramen]
		suite.Equal(3, ramen.Quantity)
		suite.Equal(21, ramen.CookingTime)
	})

	suite.Run("taking back one ramen reduces the line", func() {
		res, err := suite.client.RemoveItem(suite.ctx, suite.table, suite.ramen)
		suite.Require().NoError(err)
		suite.Equal("quantity_reduced", res.Outcome)

		ramen, err := suite.client.TableItem(suite.ctx, suite.table, suite.ramen)
		suite.Require().NoError(err)
		suite.Equal(2, ramen.Quantity)
		suite.Equal(14, ramen.CookingTime)
	})

	suite.Run("taking back the gyoza removes its line", func() {
		res, err := suite.client.RemoveItem(suite.ctx, suite.table, suite.gyoza)
		suite.Require().NoError(err)
		suite.Equal("item_removed", res.Outcome)
		suite.Equal("Menu deleted successfully", res.Message)

		_, err = suite.client.TableItem(suite.ctx, suite.table, suite.gyoza)
		suite.requireAPIError(err, http.StatusNotFound)
	})

	suite.Run("taking back the last ramen closes the tab", func() {
		res, err := suite.client.RemoveItem(suite.ctx, suite.table, suite.ramen)
		suite.Require().NoError(err)
		suite.Equal("quantity_reduced", res.Outcome)

		res, err = suite.client.RemoveItem(suite.ctx, suite.table, suite.ramen)
		suite.Require().NoError(err)
		suite.Equal("order_closed", res.Outcome)
		suite.Empty(suite.items())

		_, err = suite.client.RemoveItem(suite.ctx, suite.table, suite.ramen)
		suite.requireAPIError(err, http.StatusNotFound)
	})

	suite.Equal([]events.Type{
		events.OrderOpened,
		events.LinesMerged,
		events.QuantityReduced,
		events.ItemRemoved,
		events.QuantityReduced,
		events.OrderClosed,
	}, suite.server.Events.Types())
}

func (suite *OrderAcceptanceTestSuite) requireAPIError(err error, status int) {
	suite.Require().Error(err)
	apiErr, ok := err.(*simulator.APIError)
	suite.Require().True(ok, "expected an API error, got %v", err)
	suite.Equal(status, apiErr.Status)
}

func TestOrderAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderAcceptanceTestSuite))
}
