package store

import (
	"context"
	"fmt"

	"tableside/internal/domain"
)

// CreateOrderForTable opens an order bound to the table and occupies it.
// If the table already carries a non-completed order the existing order id
// is returned and nothing changes, so a double tap cannot open two orders
// for one table.
func (s *Store) CreateOrderForTable(ctx context.Context, tableID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTable(tableID)
	if t == nil {
		return "", fmt.Errorf("create order for table %s: %w", tableID, domain.ErrNotFound)
	}
	if t.ActiveOrderID != "" {
		if o := s.findOrder(t.ActiveOrderID); o != nil && o.Open() {
			return o.ID, nil
		}
	}

	order := domain.Order{
		ID:        s.newID(domain.IDOrder),
		TableID:   tableID,
		Items:     []domain.OrderItem{},
		Status:    domain.OrderPending,
		CreatedAt: s.now(),
	}
	// newest first
	s.state.Orders = append([]domain.Order{order}, s.state.Orders...)
	t.Status = domain.TableOccupied
	t.ActiveOrderID = order.ID

	s.persist(ctx)
	s.lg.Info("order_created", map[string]any{"order_id": order.ID, "table_id": tableID})
	return order.ID, nil
}

// AddItemToOrder adds quantity of a menu item to the order. A line for the
// same menu item already on the order absorbs the quantity instead of a
// second line appearing.
func (s *Store) AddItemToOrder(ctx context.Context, orderID, menuItemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(orderID)
	if o == nil {
		return fmt.Errorf("add item to order %s: %w", orderID, domain.ErrNotFound)
	}
	if !o.Open() {
		return fmt.Errorf("add item to order %s: %w", orderID, domain.ErrOrderClosed)
	}

	merged := false
	for i := range o.Items {
		if o.Items[i].MenuItemID == menuItemID {
			o.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		o.Items = append(o.Items, domain.OrderItem{
			ID:         s.newID(domain.IDOrderItem),
			MenuItemID: menuItemID,
			Quantity:   quantity,
		})
	}
	s.persist(ctx)
	return nil
}

// UpdateOrderItemQty replaces a line's quantity. Callers pre-clamp to >= 1;
// no clamping happens here.
func (s *Store) UpdateOrderItemQty(ctx context.Context, orderID, orderItemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(orderID)
	if o == nil {
		return fmt.Errorf("update item on order %s: %w", orderID, domain.ErrNotFound)
	}
	if !o.Open() {
		return fmt.Errorf("update item on order %s: %w", orderID, domain.ErrOrderClosed)
	}
	for i := range o.Items {
		if o.Items[i].ID == orderItemID {
			o.Items[i].Quantity = quantity
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("order %s item %s: %w", orderID, orderItemID, domain.ErrNotFound)
}

func (s *Store) RemoveOrderItem(ctx context.Context, orderID, orderItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(orderID)
	if o == nil {
		return fmt.Errorf("remove item from order %s: %w", orderID, domain.ErrNotFound)
	}
	if !o.Open() {
		return fmt.Errorf("remove item from order %s: %w", orderID, domain.ErrOrderClosed)
	}
	for i := range o.Items {
		if o.Items[i].ID == orderItemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("order %s item %s: %w", orderID, orderItemID, domain.ErrNotFound)
}

// SendOrderToKitchen advances the order to sentToKitchen.
func (s *Store) SendOrderToKitchen(ctx context.Context, orderID string) error {
	return s.advanceStatus(ctx, orderID, domain.OrderSentToKitchen)
}

// ConfirmOrder advances the order to confirmed.
func (s *Store) ConfirmOrder(ctx context.Context, orderID string) error {
	return s.advanceStatus(ctx, orderID, domain.OrderConfirmed)
}

// advanceStatus writes a forward-only status. Skipping ahead is allowed;
// moving to the same or an earlier workflow stage is not. Completion does
// not go through here because it also has to release the table.
func (s *Store) advanceStatus(ctx context.Context, orderID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(orderID)
	if o == nil {
		return fmt.Errorf("advance order %s: %w", orderID, domain.ErrNotFound)
	}
	if !o.Open() {
		return fmt.Errorf("advance order %s: %w", orderID, domain.ErrOrderClosed)
	}
	if domain.StatusRank(status) <= domain.StatusRank(o.Status) {
		return fmt.Errorf("advance order %s from %s to %s: %w",
			orderID, o.Status, status, domain.ErrStatusOrder)
	}
	o.Status = status
	s.persist(ctx)
	s.lg.Info("order_status_changed", map[string]any{"order_id": orderID, "status": status})
	return nil
}

// CompleteOrder closes the order and frees its table. This is the only path
// from occupied back to available while an order is bound, and it applies
// even if the table was manually re-booked in the meantime.
func (s *Store) CompleteOrder(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(orderID)
	if o == nil {
		return fmt.Errorf("complete order %s: %w", orderID, domain.ErrNotFound)
	}
	if !o.Open() {
		return fmt.Errorf("complete order %s: %w", orderID, domain.ErrOrderClosed)
	}

	now := s.now()
	o.Status = domain.OrderCompleted
	o.CompletedAt = &now

	if t := s.findTable(o.TableID); t != nil {
		t.Status = domain.TableAvailable
		t.ActiveOrderID = ""
	}

	s.persist(ctx)
	s.lg.Info("order_completed", map[string]any{"order_id": orderID, "table_id": o.TableID})
	return nil
}

// OrderTotal prices the order's lines against the current catalog. Lines
// whose menu item has since been deleted (possible once the order is
// completed) contribute nothing.
func (s *Store) OrderTotal(orderID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(orderID)
	if o == nil {
		return 0, fmt.Errorf("total for order %s: %w", orderID, domain.ErrNotFound)
	}
	var total float64
	for _, it := range o.Items {
		if m := s.findMenuItem(it.MenuItemID); m != nil {
			total += float64(it.Quantity) * m.Price
		}
	}
	return total, nil
}
