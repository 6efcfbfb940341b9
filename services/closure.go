package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kendall-kelly/table-orders-api/events"
	"github.com/kendall-kelly/table-orders-api/ledger"
	"github.com/sirupsen/logrus"
)

// ClosureService removes items from a table's order and closes the order once it is empty
type ClosureService struct {
	ledger *ledger.Ledger
	events events.Dispatcher
	log    *logrus.Logger
}

// NewClosureService creates a closure service
func NewClosureService(l *ledger.Ledger, dispatcher events.Dispatcher, log *logrus.Logger) *ClosureService {
	if dispatcher == nil {
		dispatcher = events.NopDispatcher{}
	}
	return &ClosureService{ledger: l, events: dispatcher, log: log}
}

// RemoveItem takes one unit of menuID off the table's order. A line with a single
// unit is deleted, and the order is deleted with its last line.
func (s *ClosureService) RemoveItem(ctx context.Context, tableID, menuID uint) (Outcome, error) {
	var outcome Outcome
	err := s.ledger.Transaction(ctx, func(tx *ledger.Ledger) error {
		order, err := tx.FindActiveOrder(ctx, tableID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: table %d has no active order", ErrNotFound, tableID)
		}
		outcome.OrderID = order.ID

		line, err := tx.FindLine(ctx, order.ID, menuID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: order %d has no line for menu item %d", ErrNotFound, order.ID, menuID)
		}

		if line.Quantity > 1 {
			if err := line.Decrement(); err != nil {
				return fmt.Errorf("%w: %w", ledger.ErrInternal, err)
			}
			outcome.Kind = QuantityReduced
			return tx.UpdateLine(ctx, line)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("%w: order line %d has quantity %d", ledger.ErrInternal, line.ID, line.Quantity)
		}

		if err := tx.DeleteLine(ctx, line.ID); err != nil {
			return err
		}
		remaining, err := tx.CountLines(ctx, order.ID)
		if err != nil {
			return err
		}
		if remaining > 0 {
			outcome.Kind = ItemRemoved
			return nil
		}

		outcome.Kind = OrderClosed
		return tx.DeleteOrder(ctx, order.ID)
	})
	if err != nil {
		return Outcome{}, err
	}

	s.log.WithFields(logrus.Fields{
		"table_id": tableID,
		"order_id": outcome.OrderID,
		"menu_id":  menuID,
		"outcome":  outcome.Kind.String(),
	}).Info("order item removed")

	if err := s.events.Dispatch(ctx, events.Event{
		Type:       closureEvent(outcome.Kind),
		OrderID:    outcome.OrderID,
		TableID:    tableID,
		MenuIDs:    []uint{menuID},
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		s.log.WithFields(logrus.Fields{
			"order_id": outcome.OrderID,
			"error":    err,
		}).Warn("failed to publish order event")
	}
	return outcome, nil
}

func closureEvent(kind OutcomeKind) events.Type {
	switch kind {
	case QuantityReduced:
		return events.QuantityReduced
	case OrderClosed:
		return events.OrderClosed
	default:
		return events.ItemRemoved
	}
}
