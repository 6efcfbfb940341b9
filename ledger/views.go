package ledger

import (
	"context"

	"github.com/kendall-kelly/table-orders-api/models"
	"gorm.io/gorm"
)

const lineViewColumns = "order_lines.id, order_lines.order_id, order_lines.menu_id, " +
	"menu_items.name AS menu_name, order_lines.quantity, order_lines.cooking_time"

func (l *Ledger) lineViews(ctx context.Context) *gorm.DB {
	return l.conn(ctx).Table("order_lines").
		Select(lineViewColumns).
		Joins("JOIN menu_items ON menu_items.id = order_lines.menu_id")
}

// LineViews returns the order's lines with their menu item names
func (l *Ledger) LineViews(ctx context.Context, orderID uint) ([]models.LineView, error) {
	views := []models.LineView{}
	err := l.lineViews(ctx).
		Where("order_lines.order_id = ?", orderID).
		Order("order_lines.id").
		Scan(&views).Error
	if err != nil {
		return nil, classify(err, ErrConstraintViolation)
	}
	return views, nil
}

// LineViewsForTable returns the lines of the table's active order with menu item names
func (l *Ledger) LineViewsForTable(ctx context.Context, tableID uint) ([]models.LineView, error) {
	views := []models.LineView{}
	err := l.lineViews(ctx).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.table_id = ?", tableID).
		Order("order_lines.id").
		Scan(&views).Error
	if err != nil {
		return nil, classify(err, ErrConstraintViolation)
	}
	return views, nil
}

// LineViewForTable returns one menu item's line on the table's active order, or nil
func (l *Ledger) LineViewForTable(ctx context.Context, tableID, menuID uint) (*models.LineView, error) {
	var views []models.LineView
	err := l.lineViews(ctx).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.table_id = ? AND order_lines.menu_id = ?", tableID, menuID).
		Limit(1).
		Scan(&views).Error
	if err != nil {
		return nil, classify(err, ErrConstraintViolation)
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

type orderRow struct {
	ID        uint
	TableID   uint
	TableCode string
}

// OrderSummaries returns every open order with its table code, lines and total
// cooking time. tableID narrows the result to one table when non-zero.
func (l *Ledger) OrderSummaries(ctx context.Context, tableID uint) ([]models.OrderSummary, error) {
	var rows []orderRow
	q := l.conn(ctx).Table("orders").
		Select("orders.id, orders.table_id, tables.code AS table_code").
		Joins("JOIN tables ON tables.id = orders.table_id").
		Order("orders.id")
	if tableID != 0 {
		q = q.Where("orders.table_id = ?", tableID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, classify(err, ErrConstraintViolation)
	}

	summaries := make([]models.OrderSummary, 0, len(rows))
	for _, row := range rows {
		lines, err := l.LineViews(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.OrderSummary{
			ID:               row.ID,
			TableID:          row.TableID,
			TableCode:        row.TableCode,
			TotalCookingTime: models.TotalCookingTime(lines),
			Lines:            lines,
		})
	}
	return summaries, nil
}
