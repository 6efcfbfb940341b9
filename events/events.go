// Package events announces order lifecycle changes to interested listeners.
package events

import (
	"context"
	"sync"
	"time"
)

// Type names a lifecycle change
type Type string

const (
	OrderOpened     Type = "order_opened"
	LinesMerged     Type = "lines_merged"
	QuantityReduced Type = "quantity_reduced"
	ItemRemoved     Type = "item_removed"
	OrderClosed     Type = "order_closed"
)

// Event is published after a ledger change has been committed
type Event struct {
	Type       Type      `json:"type"`
	OrderID    uint      `json:"order_id"`
	TableID    uint      `json:"table_id"`
	MenuIDs    []uint    `json:"menu_ids,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey is the topic the event is published under
func (e Event) RoutingKey() string {
	return "order." + string(e.Type)
}

// Dispatcher delivers events. Implementations must be safe for concurrent use.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}

// NopDispatcher drops every event
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(context.Context, Event) error { return nil }

// Recorder keeps dispatched events in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith makes every following Dispatch return err without recording the event
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *Recorder) Dispatch(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything recorded so far
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the type of every recorded event in dispatch order
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
