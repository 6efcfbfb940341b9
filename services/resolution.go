package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kendall-kelly/table-orders-api/events"
	"github.com/kendall-kelly/table-orders-api/ledger"
	"github.com/sirupsen/logrus"
)

// ResolutionService adds requested menu items to a table's order, opening one when needed
type ResolutionService struct {
	ledger    *ledger.Ledger
	estimator CookingTimeEstimator
	events    events.Dispatcher
	log       *logrus.Logger
}

// NewResolutionService creates a resolution service
func NewResolutionService(l *ledger.Ledger, estimator CookingTimeEstimator, dispatcher events.Dispatcher, log *logrus.Logger) *ResolutionService {
	if dispatcher == nil {
		dispatcher = events.NopDispatcher{}
	}
	return &ResolutionService{ledger: l, estimator: estimator, events: dispatcher, log: log}
}

// Resolve makes menuIDs part of the table's order. When the table has no order a
// new one is created; otherwise each item either bumps the quantity of its line
// or gets a new line. All changes are applied in one transaction.
//
// A request that loses a race to open the order or a line is retried once, at
// which point the winner's rows are visible and the request merges into them.
func (s *ResolutionService) Resolve(ctx context.Context, tableID uint, menuIDs []uint) (Outcome, error) {
	if len(menuIDs) == 0 {
		return Outcome{}, fmt.Errorf("%w: please add items", ErrInvalidRequest)
	}

	outcome, err := s.resolve(ctx, tableID, menuIDs)
	if errors.Is(err, ledger.ErrOrderExists) || errors.Is(err, ledger.ErrLineExists) {
		s.log.WithFields(logrus.Fields{
			"table_id": tableID,
			"error":    err,
		}).Info("concurrent order write detected, retrying as merge")
		outcome, err = s.resolve(ctx, tableID, menuIDs)
	}
	if err != nil {
		return Outcome{}, err
	}

	s.log.WithFields(logrus.Fields{
		"table_id": tableID,
		"order_id": outcome.OrderID,
		"outcome":  outcome.Kind.String(),
		"items":    len(menuIDs),
	}).Info("order resolved")

	eventType := events.LinesMerged
	if outcome.Kind == Created {
		eventType = events.OrderOpened
	}
	s.dispatch(ctx, events.Event{
		Type:       eventType,
		OrderID:    outcome.OrderID,
		TableID:    tableID,
		MenuIDs:    menuIDs,
		OccurredAt: time.Now().UTC(),
	})
	return outcome, nil
}

func (s *ResolutionService) resolve(ctx context.Context, tableID uint, menuIDs []uint) (Outcome, error) {
	var outcome Outcome
	err := s.ledger.Transaction(ctx, func(tx *ledger.Ledger) error {
		order, err := tx.FindActiveOrder(ctx, tableID)
		if err != nil {
			return err
		}

		outcome.Kind = Merged
		if order == nil {
			order, err = tx.CreateOrder(ctx, tableID)
			if err != nil {
				return err
			}
			outcome.Kind = Created
		}
		outcome.OrderID = order.ID

		for _, menuID := range menuIDs {
			if err := s.addUnit(ctx, tx, order.ID, menuID); err != nil {
				return err
			}
		}
		return nil
	})
	return outcome, err
}

// addUnit increments the order's line for menuID, or creates it with quantity 1
func (s *ResolutionService) addUnit(ctx context.Context, tx *ledger.Ledger, orderID, menuID uint) error {
	line, err := tx.FindLine(ctx, orderID, menuID)
	if err != nil {
		return err
	}
	if line == nil {
		_, err = tx.CreateLine(ctx, orderID, menuID, s.estimator.Estimate(), 1)
		return err
	}

	if err := line.Increment(); err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrInternal, err)
	}
	return tx.UpdateLine(ctx, line)
}

func (s *ResolutionService) dispatch(ctx context.Context, event events.Event) {
	if err := s.events.Dispatch(ctx, event); err != nil {
		s.log.WithFields(logrus.Fields{
			"event":    event.Type,
			"order_id": event.OrderID,
			"error":    err,
		}).Warn("failed to publish order event")
	}
}
