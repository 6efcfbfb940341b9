package services

// OutcomeKind tells callers which terminal state an order operation reached
type OutcomeKind int

const (
	// Created means a new order was opened for the table
	Created OutcomeKind = iota + 1
	// Merged means the items were added to the table's existing order
	Merged
	// QuantityReduced means one unit was removed from a line that still has units left
	QuantityReduced
	// ItemRemoved means a line was deleted and the order still has other lines
	ItemRemoved
	// OrderClosed means the last line was deleted and the order with it
	OrderClosed
)

func (k OutcomeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Merged:
		return "merged"
	case QuantityReduced:
		return "quantity_reduced"
	case ItemRemoved:
		return "item_removed"
	case OrderClosed:
		return "order_closed"
	default:
		return "unknown"
	}
}

// Message is the human readable confirmation returned to API clients
func (k OutcomeKind) Message() string {
	switch k {
	case Created:
		return "Order and all order items created successfully"
	case Merged:
		return "All order items updated successfully"
	case QuantityReduced:
		return "Menu quantity updated successfully"
	case ItemRemoved:
		return "Menu deleted successfully"
	case OrderClosed:
		return "Menu deleted successfully and order deleted"
	default:
		return ""
	}
}

// Outcome is the result of Resolve and RemoveItem
type Outcome struct {
	Kind OutcomeKind
	// OrderID is the order that was opened, amended or closed
	OrderID uint
}
