package models

import (
	"errors"
	"fmt"
)

var (
	// ErrQuantityFloor is returned when a decrement would leave a line at zero units.
	// Such a line must be deleted instead.
	ErrQuantityFloor = errors.New("line quantity cannot drop below one")

	// ErrInconsistentLine is returned when a stored line breaks quantity >= 1 or cooking_time >= 0
	ErrInconsistentLine = errors.New("order line is inconsistent")
)

// PerUnitCookingTime reconstructs the per-unit time of a line by floor division.
// It is never persisted.
func PerUnitCookingTime(cookingTime, quantity int) (int, error) {
	if err := checkLine(cookingTime, quantity); err != nil {
		return 0, err
	}
	return cookingTime / quantity, nil
}

// IncrementCookingTime returns the aggregate cooking time and quantity after one
// more unit is added. The existing per-unit estimate is replicated at the new
// scale, so a remainder lost to floor division is never recovered:
// (7, 2) becomes (9, 3).
func IncrementCookingTime(cookingTime, quantity int) (newCookingTime, newQuantity int, err error) {
	perUnit, err := PerUnitCookingTime(cookingTime, quantity)
	if err != nil {
		return 0, 0, err
	}
	return perUnit * (quantity + 1), quantity + 1, nil
}

// DecrementCookingTime returns the aggregate cooking time and quantity after one
// unit is removed. quantity must be greater than one.
func DecrementCookingTime(cookingTime, quantity int) (newCookingTime, newQuantity int, err error) {
	perUnit, err := PerUnitCookingTime(cookingTime, quantity)
	if err != nil {
		return 0, 0, err
	}
	if quantity == 1 {
		return 0, 0, ErrQuantityFloor
	}
	return cookingTime - perUnit, quantity - 1, nil
}

// Increment adds one unit to the line, rescaling its aggregate cooking time
func (l *OrderLine) Increment() error {
	cookingTime, quantity, err := IncrementCookingTime(l.CookingTime, l.Quantity)
	if err != nil {
		return fmt.Errorf("increment line %d: %w", l.ID, err)
	}
	l.CookingTime, l.Quantity = cookingTime, quantity
	return nil
}

// Decrement removes one unit from the line
func (l *OrderLine) Decrement() error {
	cookingTime, quantity, err := DecrementCookingTime(l.CookingTime, l.Quantity)
	if err != nil {
		return fmt.Errorf("decrement line %d: %w", l.ID, err)
	}
	l.CookingTime, l.Quantity = cookingTime, quantity
	return nil
}

func checkLine(cookingTime, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity %d", ErrInconsistentLine, quantity)
	}
	if cookingTime < 0 {
		return fmt.Errorf("%w: cooking time %d", ErrInconsistentLine, cookingTime)
	}
	return nil
}
