package store

import (
	"context"
	"fmt"

	"tableside/internal/domain"
)

// MenuItemInput is the caller-supplied part of a new menu item. Input
// validation (non-empty name, price >= 0) happens at the presentation
// boundary, not here.
type MenuItemInput struct {
	Name      string
	Price     float64
	Category  string
	Available bool
}

func (s *Store) AddMenuItem(ctx context.Context, in MenuItemInput) (domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := domain.MenuItem{
		ID:        s.newID(domain.IDMenuItem),
		Name:      in.Name,
		Price:     in.Price,
		Category:  in.Category,
		Available: in.Available,
	}
	s.state.MenuItems = append(s.state.MenuItems, item)
	s.persist(ctx)
	s.lg.Debug("menu_item_added", map[string]any{"id": item.ID, "name": item.Name})
	return item, nil
}

// UpdateMenuItem merges the patch into an existing item. Items referenced by
// a non-completed order are frozen until that order completes.
func (s *Store) UpdateMenuItem(ctx context.Context, id string, patch domain.MenuItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findMenuItem(id)
	if item == nil {
		return fmt.Errorf("update menu item %s: %w", id, domain.ErrNotFound)
	}
	if s.menuItemReferenced(id) {
		return fmt.Errorf("update menu item %s: %w", id, domain.ErrReferentialLock)
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}
	s.persist(ctx)
	return nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findMenuItem(id) == nil {
		return fmt.Errorf("delete menu item %s: %w", id, domain.ErrNotFound)
	}
	if s.menuItemReferenced(id) {
		return fmt.Errorf("delete menu item %s: %w", id, domain.ErrReferentialLock)
	}

	items := s.state.MenuItems[:0]
	for _, m := range s.state.MenuItems {
		if m.ID != id {
			items = append(items, m)
		}
	}
	s.state.MenuItems = items
	s.persist(ctx)
	s.lg.Debug("menu_item_deleted", map[string]any{"id": id})
	return nil
}
