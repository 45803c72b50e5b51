package domain

import "time"

// Table statuses.
const (
	TableAvailable = "available"
	TableBooked    = "booked"
	TableOccupied  = "occupied"
)

// Order statuses, in workflow order.
const (
	OrderPending       = "pending"
	OrderSentToKitchen = "sentToKitchen"
	OrderConfirmed     = "confirmed"
	OrderCompleted     = "completed"
)

// statusRank orders the workflow. Higher rank means further along; status
// writes may skip ahead but never move back.
var statusRank = map[string]int{
	OrderPending:       0,
	OrderSentToKitchen: 1,
	OrderConfirmed:     2,
	OrderCompleted:     3,
}

// StatusRank returns the workflow rank of an order status, or -1 for an
// unknown status.
func StatusRank(status string) int {
	r, ok := statusRank[status]
	if !ok {
		return -1
	}
	return r
}

type MenuItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category,omitempty"`
	Available bool    `json:"available"`
}

// MenuItemPatch carries partial updates; nil fields are left unchanged.
type MenuItemPatch struct {
	Name      *string
	Price     *float64
	Category  *string
	Available *bool
}

type Table struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	// ActiveOrderID is empty unless the table is occupied by a
	// non-completed order.
	ActiveOrderID string `json:"activeOrderId,omitempty"`
}

type OrderItem struct {
	ID         string `json:"id"`
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

type Order struct {
	ID          string      `json:"id"`
	TableID     string      `json:"tableId"`
	Items       []OrderItem `json:"items"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

// Open reports whether the order still holds its table and menu references.
func (o Order) Open() bool { return o.Status != OrderCompleted }

// Aggregate is the complete front-of-house state, treated as one consistency
// unit: it is snapshotted and persisted as a whole after every mutation.
// Orders are kept newest-first; order items keep insertion order.
type Aggregate struct {
	MenuItems []MenuItem `json:"menuItems"`
	Tables    []Table    `json:"tables"`
	Orders    []Order    `json:"orders"`
}

// Clone returns a deep copy so callers can hand out state without aliasing
// the live aggregate.
func (a Aggregate) Clone() Aggregate {
	out := Aggregate{
		MenuItems: make([]MenuItem, len(a.MenuItems)),
		Tables:    make([]Table, len(a.Tables)),
		Orders:    make([]Order, len(a.Orders)),
	}
	copy(out.MenuItems, a.MenuItems)
	copy(out.Tables, a.Tables)
	for i, o := range a.Orders {
		out.Orders[i] = o.Clone()
	}
	return out
}

// Clone returns a deep copy of the order, items included.
func (o Order) Clone() Order {
	c := o
	c.Items = make([]OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		c.CompletedAt = &t
	}
	return c
}
