package store

import "tableside/internal/domain"

// seed builds the starter aggregate installed when no snapshot exists yet:
// a small menu and three free tables, no orders.
func (s *Store) seed() domain.Aggregate {
	return domain.Aggregate{
		MenuItems: []domain.MenuItem{
			{ID: s.newID(domain.IDMenuItem), Name: "Burger", Price: 8.99, Category: "Main", Available: true},
			{ID: s.newID(domain.IDMenuItem), Name: "Pizza", Price: 12.5, Category: "Main", Available: true},
			{ID: s.newID(domain.IDMenuItem), Name: "Coke", Price: 2.5, Category: "Drinks", Available: true},
		},
		Tables: []domain.Table{
			{ID: s.newID(domain.IDTable), Name: "Table 1", Status: domain.TableAvailable},
			{ID: s.newID(domain.IDTable), Name: "Table 2", Status: domain.TableAvailable},
			{ID: s.newID(domain.IDTable), Name: "Table 3", Status: domain.TableAvailable},
		},
		Orders: []domain.Order{},
	}
}
