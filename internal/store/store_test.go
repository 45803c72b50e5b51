package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tableside/internal/common/logger"
	"tableside/internal/storage"
)

// newTestStore returns a hydrated store over an in-memory gateway with
// deterministic ids (prefix_1, prefix_2, ...) and a ticking fake clock.
// Hydrating an empty gateway installs the seed aggregate, so tests start
// with menu items m_1..m_3 (Burger, Pizza, Coke) and tables t_4..t_6.
func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()

	gw := storage.NewMemory()
	s := New(gw, logger.New("store-test").WithOutput(io.Discard))

	n := 0
	s.newID = func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		base = base.Add(time.Second)
		return base
	}

	require.NoError(t, s.Hydrate(context.Background()))
	return s, gw
}

func TestHydrateSeedsEmptyGateway(t *testing.T) {
	s, gw := newTestStore(t)

	require.Len(t, s.MenuItems(), 3)
	require.Len(t, s.Tables(), 3)
	require.Empty(t, s.Orders())

	// the seed itself is persisted so ids survive a restart
	require.True(t, gw.Has(storage.KeyData))

	burger, err := s.MenuItem("m_1")
	require.NoError(t, err)
	require.Equal(t, "Burger", burger.Name)
	require.InDelta(t, 8.99, burger.Price, 1e-9)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, gw := newTestStore(t)

	orderID, err := s.CreateOrderForTable(ctx, "t_4")
	require.NoError(t, err)
	require.NoError(t, s.AddItemToOrder(ctx, orderID, "m_1", 2))
	require.NoError(t, s.AddItemToOrder(ctx, orderID, "m_3", 1))
	require.NoError(t, s.SendOrderToKitchen(ctx, orderID))
	_, err = s.AddTable(ctx, "Patio 1")
	require.NoError(t, err)

	// a fresh store over the same gateway must see the identical aggregate
	s2 := New(gw, logger.New("store-test").WithOutput(io.Discard))
	require.NoError(t, s2.Hydrate(ctx))

	want, err := json.Marshal(s.Aggregate())
	require.NoError(t, err)
	got, err := json.Marshal(s2.Aggregate())
	require.NoError(t, err)
	require.JSONEq(t, string(want), string(got))

	// semantically ordered fields survive: orders newest-first, items in
	// insertion order
	orders := s2.Orders()
	require.Len(t, orders, 1)
	require.Equal(t, orderID, orders[0].ID)
	require.Len(t, orders[0].Items, 2)
	require.Equal(t, "m_1", orders[0].Items[0].MenuItemID)
	require.Equal(t, "m_3", orders[0].Items[1].MenuItemID)
}

func TestPersistFailureDoesNotRollBackMemory(t *testing.T) {
	ctx := context.Background()
	s, gw := newTestStore(t)

	gw.FailSaves = errors.New("disk full")

	table, err := s.AddTable(ctx, "Window 1")
	require.NoError(t, err)

	got, err := s.Table(table.ID)
	require.NoError(t, err)
	require.Equal(t, "Window 1", got.Name)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	orderID, err := s.CreateOrderForTable(ctx, "t_4")
	require.NoError(t, err)
	require.NoError(t, s.AddItemToOrder(ctx, orderID, "m_1", 2))

	o, err := s.Order(orderID)
	require.NoError(t, err)
	o.Items[0].Quantity = 99
	o.Status = "mangled"

	again, err := s.Order(orderID)
	require.NoError(t, err)
	require.Equal(t, 2, again.Items[0].Quantity)
	require.Equal(t, "pending", again.Status)
}
