// Package store holds the in-memory front-of-house aggregate and every
// operation that mutates it. All writes go through one mutex: validate,
// apply, then persist the whole snapshot through the gateway.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"tableside/internal/common/logger"
	"tableside/internal/domain"
	"tableside/internal/storage"
)

type Store struct {
	mu    sync.Mutex
	state domain.Aggregate
	gw    storage.Gateway
	lg    *logger.Logger

	// overridable in tests
	now   func() time.Time
	newID func(prefix string) string
}

func New(gw storage.Gateway, lg *logger.Logger) *Store {
	return &Store{
		gw:    gw,
		lg:    lg,
		now:   func() time.Time { return time.Now().UTC() },
		newID: domain.NewID,
	}
}

// Hydrate replaces the aggregate from the persisted snapshot. It must run
// once, before any other operation. A missing snapshot installs the seed
// aggregate and persists it so ids stay stable across restarts.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.gw.Load(ctx, storage.KeyData)
	if err != nil {
		return fmt.Errorf("load data snapshot: %w", err)
	}
	if blob == nil {
		s.state = s.seed()
		s.lg.Info("seeded_default_state", map[string]any{
			"menu_items": len(s.state.MenuItems),
			"tables":     len(s.state.Tables),
		})
		s.persist(ctx)
		return nil
	}

	var agg domain.Aggregate
	if err := json.Unmarshal(blob, &agg); err != nil {
		return fmt.Errorf("decode data snapshot: %w", err)
	}
	s.state = agg
	s.lg.Info("hydrated", map[string]any{
		"menu_items": len(agg.MenuItems),
		"tables":     len(agg.Tables),
		"orders":     len(agg.Orders),
	})
	return nil
}

// persist writes the current aggregate under the data key. Must be called
// with the mutex held. A failed write is logged and dropped: the in-memory
// mutation already happened and durability failure does not undo it.
func (s *Store) persist(ctx context.Context) {
	blob, err := json.Marshal(s.state)
	if err != nil {
		s.lg.Error("encode_snapshot_failed", err, nil)
		return
	}
	if err := s.gw.Save(ctx, storage.KeyData, blob); err != nil {
		s.lg.Error("persist_failed", err, map[string]any{"key": storage.KeyData})
	}
}

// Aggregate returns a deep copy of the whole state.
func (s *Store) Aggregate() domain.Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) MenuItems() []domain.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MenuItem, len(s.state.MenuItems))
	copy(out, s.state.MenuItems)
	return out
}

func (s *Store) Tables() []domain.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Table, len(s.state.Tables))
	copy(out, s.state.Tables)
	return out
}

// Orders returns all orders, newest first.
func (s *Store) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone().Orders
}

func (s *Store) MenuItem(id string) (domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m := s.findMenuItem(id); m != nil {
		return *m, nil
	}
	return domain.MenuItem{}, fmt.Errorf("menu item %s: %w", id, domain.ErrNotFound)
}

func (s *Store) Table(id string) (domain.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.findTable(id); t != nil {
		return *t, nil
	}
	return domain.Table{}, fmt.Errorf("table %s: %w", id, domain.ErrNotFound)
}

func (s *Store) Order(id string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o := s.findOrder(id); o != nil {
		return o.Clone(), nil
	}
	return domain.Order{}, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

// lookup helpers; all require the mutex to be held.

func (s *Store) findMenuItem(id string) *domain.MenuItem {
	for i := range s.state.MenuItems {
		if s.state.MenuItems[i].ID == id {
			return &s.state.MenuItems[i]
		}
	}
	return nil
}

func (s *Store) findTable(id string) *domain.Table {
	for i := range s.state.Tables {
		if s.state.Tables[i].ID == id {
			return &s.state.Tables[i]
		}
	}
	return nil
}

func (s *Store) findOrder(id string) *domain.Order {
	for i := range s.state.Orders {
		if s.state.Orders[i].ID == id {
			return &s.state.Orders[i]
		}
	}
	return nil
}

// menuItemReferenced reports whether any non-completed order has a line for
// the menu item.
func (s *Store) menuItemReferenced(id string) bool {
	for _, o := range s.state.Orders {
		if !o.Open() {
			continue
		}
		for _, it := range o.Items {
			if it.MenuItemID == id {
				return true
			}
		}
	}
	return false
}

// tableReferenced reports whether any non-completed order is bound to the
// table.
func (s *Store) tableReferenced(id string) bool {
	for _, o := range s.state.Orders {
		if o.Open() && o.TableID == id {
			return true
		}
	}
	return false
}
