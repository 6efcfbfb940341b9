// Package ledger stores orders and order lines and upholds their two
// uniqueness rules: one active order per table, one line per menu item per order.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/kendall-kelly/table-orders-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger reads and writes orders and order lines
type Ledger struct {
	db *gorm.DB
	// inTx is set on ledgers handed out by Transaction; reads of orders and
	// lines then take row locks where the dialect supports them.
	inTx bool
}

// New creates a ledger over db
func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Transaction runs fn inside a single database transaction. The ledger passed to
// fn must be used for every read and write of the unit of work. An error returned
// by fn rolls the transaction back and is returned as is.
func (l *Ledger) Transaction(ctx context.Context, fn func(tx *Ledger) error) error {
	var fnErr error
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&Ledger{db: tx, inTx: true})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return classify(err, ErrConstraintViolation)
}

func (l *Ledger) conn(ctx context.Context) *gorm.DB {
	return l.db.WithContext(ctx)
}

func (l *Ledger) locking(ctx context.Context) *gorm.DB {
	q := l.conn(ctx)
	if l.inTx {
		q = q.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	return q
}

// FindActiveOrder returns the table's open order, or nil when the table has none
func (l *Ledger) FindActiveOrder(ctx context.Context, tableID uint) (*models.Order, error) {
	var order models.Order
	err := l.locking(ctx).Where("table_id = ?", tableID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err, ErrConstraintViolation)
	}
	return &order, nil
}

// FindLine returns the order's line for a menu item, or nil when there is none
func (l *Ledger) FindLine(ctx context.Context, orderID, menuID uint) (*models.OrderLine, error) {
	var line models.OrderLine
	err := l.locking(ctx).Where("order_id = ? AND menu_id = ?", orderID, menuID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err, ErrConstraintViolation)
	}
	return &line, nil
}

// CreateOrder opens a new order for the table. It fails with ErrOrderExists when
// the table already has one and ErrUnknownReference when the table is not registered.
func (l *Ledger) CreateOrder(ctx context.Context, tableID uint) (*models.Order, error) {
	order := models.Order{TableID: tableID}
	if err := l.conn(ctx).Omit(clause.Associations).Create(&order).Error; err != nil {
		return nil, classify(err, ErrOrderExists)
	}
	return &order, nil
}

// CreateLine adds a line to an order. Callers check FindLine first; a second line
// for the same menu item fails with ErrLineExists.
func (l *Ledger) CreateLine(ctx context.Context, orderID, menuID uint, cookingTime, quantity int) (*models.OrderLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrConstraintViolation, quantity)
	}
	if cookingTime < 0 {
		return nil, fmt.Errorf("%w: cooking time must not be negative, got %d", ErrConstraintViolation, cookingTime)
	}

	line := models.OrderLine{
		OrderID:     orderID,
		MenuID:      menuID,
		Quantity:    quantity,
		CookingTime: cookingTime,
	}
	if err := l.conn(ctx).Omit(clause.Associations).Create(&line).Error; err != nil {
		return nil, classify(err, ErrLineExists)
	}
	return &line, nil
}

// UpdateLine persists the line's quantity and cooking time
func (l *Ledger) UpdateLine(ctx context.Context, line *models.OrderLine) error {
	result := l.conn(ctx).Model(line).Updates(map[string]interface{}{
		"quantity":     line.Quantity,
		"cooking_time": line.CookingTime,
	})
	if result.Error != nil {
		return classify(result.Error, ErrConstraintViolation)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: order line %d no longer exists", ErrInternal, line.ID)
	}
	return nil
}

// DeleteLine removes a line. Deleting a missing line is not an error.
func (l *Ledger) DeleteLine(ctx context.Context, lineID uint) error {
	err := l.conn(ctx).Delete(&models.OrderLine{}, lineID).Error
	return classify(err, ErrConstraintViolation)
}

// DeleteOrder removes an order together with any lines it still owns.
// Deleting a missing order is not an error.
func (l *Ledger) DeleteOrder(ctx context.Context, orderID uint) error {
	err := l.conn(ctx).Delete(&models.Order{}, orderID).Error
	return classify(err, ErrConstraintViolation)
}

// ListLines returns the order's lines in insertion order
func (l *Ledger) ListLines(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	err := l.conn(ctx).Where("order_id = ?", orderID).Order("id").Find(&lines).Error
	if err != nil {
		return nil, classify(err, ErrConstraintViolation)
	}
	return lines, nil
}

// ListLinesForTable returns the lines of the table's active order, if any
func (l *Ledger) ListLinesForTable(ctx context.Context, tableID uint) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	err := l.conn(ctx).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.table_id = ?", tableID).
		Order("order_lines.id").
		Find(&lines).Error
	if err != nil {
		return nil, classify(err, ErrConstraintViolation)
	}
	return lines, nil
}

// CountLines returns how many lines the order has
func (l *Ledger) CountLines(ctx context.Context, orderID uint) (int64, error) {
	var count int64
	err := l.conn(ctx).Model(&models.OrderLine{}).Where("order_id = ?", orderID).Count(&count).Error
	if err != nil {
		return 0, classify(err, ErrConstraintViolation)
	}
	return count, nil
}

// TotalCookingTime sums the aggregate cooking time of the order's lines.
// It is derived on every call and never stored.
func (l *Ledger) TotalCookingTime(ctx context.Context, orderID uint) (int, error) {
	var total int
	err := l.conn(ctx).Model(&models.OrderLine{}).
		Select("COALESCE(SUM(cooking_time), 0)").
		Where("order_id = ?", orderID).
		Scan(&total).Error
	if err != nil {
		return 0, classify(err, ErrConstraintViolation)
	}
	return total, nil
}
