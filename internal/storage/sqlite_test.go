package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshots.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s, path
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := testSQLite(t)

	require.NoError(t, s.Save(ctx, KeyData, []byte(`{"menuItems":[]}`)))

	got, err := s.Load(ctx, KeyData)
	require.NoError(t, err)
	require.Equal(t, []byte(`{"menuItems":[]}`), got)

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, KeyData, []byte(`v2`)))
		got, err := s.Load(ctx, KeyData)
		require.NoError(t, err)
		require.Equal(t, []byte(`v2`), got)
	})
}

func TestSQLiteLoadMissingKey(t *testing.T) {
	s, _ := testSQLite(t)

	got, err := s.Load(context.Background(), "never-written")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSQLiteRemove(t *testing.T) {
	ctx := context.Background()
	s, _ := testSQLite(t)

	require.NoError(t, s.Save(ctx, KeyAuth, []byte(`session`)))
	require.NoError(t, s.Remove(ctx, KeyAuth))

	got, err := s.Load(ctx, KeyAuth)
	require.NoError(t, err)
	require.Nil(t, got)

	// removing an absent key is fine
	require.NoError(t, s.Remove(ctx, KeyAuth))
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshots.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, KeyData, []byte(`durable`)))
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	s2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Load(ctx, KeyData)
	require.NoError(t, err)
	require.Equal(t, []byte(`durable`), got)
}

func TestMemoryGateway(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	got, err := m.Load(ctx, KeyData)
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, m.Save(ctx, KeyData, []byte(`x`)))
	require.True(t, m.Has(KeyData))

	require.NoError(t, m.Remove(ctx, KeyData))
	require.False(t, m.Has(KeyData))
}
