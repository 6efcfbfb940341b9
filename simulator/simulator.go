package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options shape a simulation run
type Options struct {
	Tables        int
	Menus         int
	Workers       int
	ItemsPerOrder int
	Pause         time.Duration
}

// DefaultOptions mirrors a small dining room: five tables, five dishes, ten waiters
func DefaultOptions() Options {
	return Options{
		Tables:        5,
		Menus:         5,
		Workers:       10,
		ItemsPerOrder: 3,
		Pause:         time.Second,
	}
}

// Validate rejects options that cannot produce a session
func (o Options) Validate() error {
	switch {
	case o.Tables < 1:
		return fmt.Errorf("tables must be at least 1, got %d", o.Tables)
	case o.Menus < 1:
		return fmt.Errorf("menus must be at least 1, got %d", o.Menus)
	case o.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", o.Workers)
	case o.ItemsPerOrder < 1:
		return fmt.Errorf("items per order must be at least 1, got %d", o.ItemsPerOrder)
	case o.Pause < 0:
		return fmt.Errorf("pause must not be negative, got %s", o.Pause)
	}
	return nil
}

// Catalog is the set of ids registered by Seed
type Catalog struct {
	TableIDs []uint
	MenuIDs  []uint
}

// Report counts the outcomes observed during a run
type Report struct {
	Sessions int
	Outcomes map[string]int
}

// Simulator runs concurrent waiter sessions against the API
type Simulator struct {
	client *Client
	opts   Options
	log    *logrus.Logger

	mu     sync.Mutex
	report Report
}

// New creates a simulator
func New(client *Client, opts Options, log *logrus.Logger) *Simulator {
	return &Simulator{
		client: client,
		opts:   opts,
		log:    log,
		report: Report{Outcomes: map[string]int{}},
	}
}

// TableCode names the i-th simulated table, starting at 1
func TableCode(i int) string { return fmt.Sprintf("T-%02d", i) }

// MenuName names the i-th simulated menu item, starting at 1
func MenuName(i int) string { return fmt.Sprintf("Menu-%02d", i) }

// Seed registers the simulated tables and menu items. Registration is
// idempotent, so seeding twice returns the same ids.
func (s *Simulator) Seed(ctx context.Context) (Catalog, error) {
	if err := s.opts.Validate(); err != nil {
		return Catalog{}, err
	}

	var catalog Catalog
	for i := 1; i <= s.opts.Tables; i++ {
		id, err := s.client.RegisterTable(ctx, TableCode(i))
		if err != nil {
			return Catalog{}, fmt.Errorf("register table %s: %w", TableCode(i), err)
		}
		catalog.TableIDs = append(catalog.TableIDs, id)
	}
	for i := 1; i <= s.opts.Menus; i++ {
		id, err := s.client.RegisterMenu(ctx, MenuName(i))
		if err != nil {
			return Catalog{}, fmt.Errorf("register menu %s: %w", MenuName(i), err)
		}
		catalog.MenuIDs = append(catalog.MenuIDs, id)
	}

	s.log.WithFields(logrus.Fields{
		"tables": len(catalog.TableIDs),
		"menus":  len(catalog.MenuIDs),
	}).Info("catalog seeded")
	return catalog, nil
}

// Run seeds the catalog and then runs one session per worker concurrently.
// The first failing session cancels the others.
func (s *Simulator) Run(ctx context.Context) (Report, error) {
	catalog, err := s.Seed(ctx)
	if err != nil {
		return Report{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < s.opts.Workers; w++ {
		worker := w
		g.Go(func() error {
			return s.session(gctx, worker, catalog)
		})
	}
	if err := g.Wait(); err != nil {
		return s.snapshot(), err
	}

	report := s.snapshot()
	s.log.WithFields(logrus.Fields{
		"sessions": report.Sessions,
		"outcomes": report.Outcomes,
	}).Info("simulation finished")
	return report, nil
}

// session plays one waiter: order a few dishes for a random table, look at the
// table's items, look at the first dish, then take it back off the order
func (s *Simulator) session(ctx context.Context, worker int, catalog Catalog) error {
	tableID := catalog.TableIDs[rand.Intn(len(catalog.TableIDs))]
	menuIDs := pickMenus(catalog.MenuIDs, s.opts.ItemsPerOrder)
	log := s.log.WithFields(logrus.Fields{"worker": worker, "table_id": tableID})

	created, err := s.client.CreateOrder(ctx, tableID, menuIDs)
	if err != nil {
		return fmt.Errorf("worker %d: create order: %w", worker, err)
	}
	s.record(created.Outcome)
	log.WithFields(logrus.Fields{"menu_ids": menuIDs, "outcome": created.Outcome}).Info("order placed")
	if err := pause(ctx, s.opts.Pause); err != nil {
		return err
	}

	items, err := s.client.TableItems(ctx, tableID)
	if err != nil {
		return fmt.Errorf("worker %d: list items: %w", worker, err)
	}
	log.WithField("items", len(items)).Info("table items listed")
	if err := pause(ctx, s.opts.Pause); err != nil {
		return err
	}

	first := menuIDs[0]
	item, err := s.client.TableItem(ctx, tableID, first)
	if err != nil {
		return fmt.Errorf("worker %d: get item %d: %w", worker, first, err)
	}
	log.WithFields(logrus.Fields{
		"menu":         item.MenuName,
		"quantity":     item.Quantity,
		"cooking_time": item.CookingTime,
	}).Info("table item fetched")
	if err := pause(ctx, s.opts.Pause); err != nil {
		return err
	}

	removed, err := s.client.RemoveItem(ctx, tableID, first)
	if err != nil {
		return fmt.Errorf("worker %d: remove item %d: %w", worker, first, err)
	}
	s.record(removed.Outcome)
	log.WithFields(logrus.Fields{"menu_id": first, "outcome": removed.Outcome}).Info("item removed")

	s.mu.Lock()
	s.report.Sessions++
	s.mu.Unlock()
	return nil
}

func (s *Simulator) record(outcome string) {
	s.mu.Lock()
	s.report.Outcomes[outcome]++
	s.mu.Unlock()
}

func (s *Simulator) snapshot() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	outcomes := make(map[string]int, len(s.report.Outcomes))
	for k, v := range s.report.Outcomes {
		outcomes[k] = v
	}
	return Report{Sessions: s.report.Sessions, Outcomes: outcomes}
}

// pickMenus returns up to n distinct menu ids in random order
func pickMenus(menuIDs []uint, n int) []uint {
	if n > len(menuIDs) {
		n = len(menuIDs)
	}
	picked := make([]uint, 0, n)
	for _, i := range rand.Perm(len(menuIDs))[:n] {
		picked = append(picked, menuIDs[i])
	}
	return picked
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// SortedOutcomes lists the report's outcome names alphabetically
func (r Report) SortedOutcomes() []string {
	names := make([]string, 0, len(r.Outcomes))
	for name := range r.Outcomes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
