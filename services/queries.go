package services

import (
	"context"
	"fmt"

	"github.com/kendall-kelly/table-orders-api/ledger"
	"github.com/kendall-kelly/table-orders-api/models"
)

// OrderQueries answers read-only questions about open orders
type OrderQueries struct {
	ledger *ledger.Ledger
}

// NewOrderQueries creates the read side over l
func NewOrderQueries(l *ledger.Ledger) *OrderQueries {
	return &OrderQueries{ledger: l}
}

// ListOrders returns every open order with its lines and total cooking time
func (q *OrderQueries) ListOrders(ctx context.Context) ([]models.OrderSummary, error) {
	return q.ledger.OrderSummaries(ctx, 0)
}

// GetOrderForTable returns the table's open order
func (q *OrderQueries) GetOrderForTable(ctx context.Context, tableID uint) (*models.OrderSummary, error) {
	summaries, err := q.ledger.OrderSummaries(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("%w: table %d has no active order", ErrNotFound, tableID)
	}
	return &summaries[0], nil
}

// ListTableItems returns the lines of the table's open order. A table without an
// order has no items.
func (q *OrderQueries) ListTableItems(ctx context.Context, tableID uint) ([]models.LineView, error) {
	return q.ledger.LineViewsForTable(ctx, tableID)
}

// GetTableItem returns the table's line for one menu item
func (q *OrderQueries) GetTableItem(ctx context.Context, tableID, menuID uint) (*models.LineView, error) {
	view, err := q.ledger.LineViewForTable(ctx, tableID, menuID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, fmt.Errorf("%w: no item %d found for table %d", ErrNotFound, menuID, tableID)
	}
	return view, nil
}
