package models

// LineView is an order line joined with its menu item name
type LineView struct {
	ID          uint   `json:"id"`
	OrderID     uint   `json:"order_id"`
	MenuID      uint   `json:"menu_id"`
	MenuName    string `json:"menu_name"`
	Quantity    int    `json:"quantity"`
	CookingTime int    `json:"cooking_time"`
}

// OrderSummary is an order with its table code, lines and the derived total cooking time
type OrderSummary struct {
	ID               uint       `json:"id"`
	TableID          uint       `json:"table_id"`
	TableCode        string     `json:"table_code"`
	TotalCookingTime int        `json:"total_cooking_time"`
	Lines            []LineView `json:"lines"`
}

// TotalCookingTime sums the aggregate cooking time of the given lines
func TotalCookingTime(lines []LineView) int {
	total := 0
	for _, l := range lines {
		total += l.CookingTime
	}
	return total
}
