package models

import (
	"time"
)

// Order is the single open tab of a table. It exists only while it has at least one line.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TableID   uint      `gorm:"uniqueIndex;not null" json:"table_id"` // one active order per table
	Table     Table     `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine is one menu item within an order. CookingTime is the aggregate
// for the whole line, not a per-unit value.
type OrderLine struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;uniqueIndex:idx_order_lines_order_menu" json:"order_id"`
	Order       Order     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID      uint      `gorm:"not null;uniqueIndex:idx_order_lines_order_menu;index" json:"menu_id"`
	Menu        MenuItem  `gorm:"foreignKey:MenuID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity    int       `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	CookingTime int       `gorm:"not null;check:cooking_time >= 0" json:"cooking_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{&Table{}, &MenuItem{}, &Order{}, &OrderLine{}}
}
