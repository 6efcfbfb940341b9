package ledger

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrConstraintViolation is returned when the store rejects a write because of a
	// uniqueness, referential-integrity or check constraint.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrOrderExists is returned when a table already has an active order
	ErrOrderExists = fmt.Errorf("%w: table already has an active order", ErrConstraintViolation)

	// ErrLineExists is returned when an order already has a line for the menu item
	ErrLineExists = fmt.Errorf("%w: order already has a line for this menu item", ErrConstraintViolation)

	// ErrUnknownReference is returned when a table, order or menu item id does not exist
	ErrUnknownReference = fmt.Errorf("%w: referenced row does not exist", ErrConstraintViolation)

	// ErrInternal is returned when the store fails for any other reason
	ErrInternal = errors.New("internal failure")
)

// classify maps a driver error onto the ledger taxonomy. duplicate is the error
// reported for a unique-key collision on the statement that failed.
func classify(err error, duplicate error) error {
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}

	switch {
	case isDuplicateKey(err):
		return fmt.Errorf("%w: %w", duplicate, err)
	case isForeignKey(err):
		return fmt.Errorf("%w: %w", ErrUnknownReference, err)
	case isCheckConstraint(err):
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}

func isClassified(err error) bool {
	return errors.Is(err, ErrConstraintViolation) || errors.Is(err, ErrInternal)
}

// The string checks cover drivers that do not translate their errors
// (works with both PostgreSQL and SQLite messages).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

func isCheckConstraint(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint")
}
