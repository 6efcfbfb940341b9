package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "tables", Table{}.TableName(), "Table name should be 'tables'")
	assert.Equal(t, "menu_items", MenuItem{}.TableName(), "Table name should be 'menu_items'")
	assert.Equal(t, "orders", Order{}.TableName(), "Table name should be 'orders'")
	assert.Equal(t, "order_lines", OrderLine{}.TableName(), "Table name should be 'order_lines'")
}

func TestAllModelsInMigrationOrder(t *testing.T) {
	all := All()
	assert.Len(t, all, 4)
	assert.IsType(t, &Table{}, all[0])
	assert.IsType(t, &MenuItem{}, all[1])
	assert.IsType(t, &Order{}, all[2])
	assert.IsType(t, &OrderLine{}, all[3])
}

func TestTotalCookingTime(t *testing.T) {
	tests := []struct {
		name  string
		lines []LineView
		want  int
	}{
		{"no lines", nil, 0},
		{"single line", []LineView{{CookingTime: 9}}, 9},
		{"several lines", []LineView{{CookingTime: 9}, {CookingTime: 5}, {CookingTime: 15}}, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalCookingTime(tt.lines))
		})
	}
}
