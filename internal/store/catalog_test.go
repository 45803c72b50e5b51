package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tableside/internal/domain"
)

func TestAddMenuItem(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	item, err := s.AddMenuItem(ctx, MenuItemInput{Name: "Salad", Price: 6.5, Category: "Starters", Available: true})
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)

	items := s.MenuItems()
	require.Len(t, items, 4)
	require.Equal(t, item, items[3])
}

func TestUpdateMenuItemPatch(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	price := 9.49
	available := false
	require.NoError(t, s.UpdateMenuItem(ctx, "m_1", domain.MenuItemPatch{Price: &price, Available: &available}))

	burger, err := s.MenuItem("m_1")
	require.NoError(t, err)
	require.InDelta(t, 9.49, burger.Price, 1e-9)
	require.False(t, burger.Available)
	// untouched fields keep their values
	require.Equal(t, "Burger", burger.Name)
	require.Equal(t, "Main", burger.Category)

	require.ErrorIs(t, s.UpdateMenuItem(ctx, "m_missing", domain.MenuItemPatch{}), domain.ErrNotFound)
}

func TestMenuItemGuardedWhileOrderOpen(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	orderID, err := s.CreateOrderForTable(ctx, "t_4")
	require.NoError(t, err)
	require.NoError(t, s.AddItemToOrder(ctx, orderID, "m_1", 1))

	name := "Double Burger"
	require.ErrorIs(t, s.DeleteMenuItem(ctx, "m_1"), domain.ErrReferentialLock)
	require.ErrorIs(t, s.UpdateMenuItem(ctx, "m_1", domain.MenuItemPatch{Name: &name}), domain.ErrReferentialLock)

	// guard checks run before mutation: nothing changed
	burger, err := s.MenuItem("m_1")
	require.NoError(t, err)
	require.Equal(t, "Burger", burger.Name)

	// unreferenced items stay editable
	require.NoError(t, s.DeleteMenuItem(ctx, "m_2"))

	t.Run("released after completion", func(t *testing.T) {
		require.NoError(t, s.CompleteOrder(ctx, orderID))
		require.NoError(t, s.DeleteMenuItem(ctx, "m_1"))
		_, err := s.MenuItem("m_1")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteMenuItemNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	require.ErrorIs(t, s.DeleteMenuItem(context.Background(), "m_missing"), domain.ErrNotFound)
}
