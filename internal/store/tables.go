package store

import (
	"context"
	"fmt"

	"tableside/internal/domain"
)

func (s *Store) AddTable(ctx context.Context, name string) (domain.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := domain.Table{
		ID:     s.newID(domain.IDTable),
		Name:   name,
		Status: domain.TableAvailable,
	}
	s.state.Tables = append(s.state.Tables, t)
	s.persist(ctx)
	s.lg.Debug("table_added", map[string]any{"id": t.ID, "name": t.Name})
	return t, nil
}

func (s *Store) DeleteTable(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findTable(id) == nil {
		return fmt.Errorf("delete table %s: %w", id, domain.ErrNotFound)
	}
	if s.tableReferenced(id) {
		return fmt.Errorf("delete table %s: %w", id, domain.ErrReferentialLock)
	}

	tables := s.state.Tables[:0]
	for _, t := range s.state.Tables {
		if t.ID != id {
			tables = append(tables, t)
		}
	}
	s.state.Tables = tables
	s.persist(ctx)
	s.lg.Debug("table_deleted", map[string]any{"id": id})
	return nil
}

// BookTable marks the table as reserved. Applicable from any status; it
// touches neither orders nor ActiveOrderID.
func (s *Store) BookTable(ctx context.Context, id string) error {
	return s.setTableStatus(ctx, id, domain.TableBooked)
}

// OccupyTable marks the table as seated without creating an order.
func (s *Store) OccupyTable(ctx context.Context, id string) error {
	return s.setTableStatus(ctx, id, domain.TableOccupied)
}

func (s *Store) setTableStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTable(id)
	if t == nil {
		return fmt.Errorf("set table %s %s: %w", id, status, domain.ErrNotFound)
	}
	t.Status = status
	s.persist(ctx)
	return nil
}

// ReleaseTable returns the table to available and clears its active order
// reference. A table still bound to a non-completed order cannot be
// released; completing the order is the only way out, otherwise the order
// would be orphaned with no table-side back-reference.
func (s *Store) ReleaseTable(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTable(id)
	if t == nil {
		return fmt.Errorf("release table %s: %w", id, domain.ErrNotFound)
	}
	if t.ActiveOrderID != "" {
		if o := s.findOrder(t.ActiveOrderID); o != nil && o.Open() {
			return fmt.Errorf("release table %s: order %s: %w", id, o.ID, domain.ErrReferentialLock)
		}
	}
	t.Status = domain.TableAvailable
	t.ActiveOrderID = ""
	s.persist(ctx)
	return nil
}
