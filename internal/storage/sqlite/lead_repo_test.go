package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"leadbot/internal/domain"
)

func newTestRepo(t *testing.T) *LeadRepo {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db))
	return NewLeadRepo(db)
}

func TestMigrateIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestInsertAssignsIDAndTimestamp(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, domain.Lead{Name: "Alice", Phone: "555-0100", Comment: "call after 5pm"})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	leads, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.Equal(t, "Alice", leads[0].Name)
	require.Equal(t, "555-0100", leads[0].Phone)
	require.Equal(t, "call after 5pm", leads[0].Comment)
	require.False(t, leads[0].CreatedAt.IsZero())
}

func TestListRecentOrderAndLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := repo.Insert(ctx, domain.Lead{Name: name, Phone: "1"})
		require.NoError(t, err)
	}

	leads, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	require.Equal(t, "third", leads[0].Name)
	require.Equal(t, "second", leads[1].Name)
	require.True(t, !leads[0].CreatedAt.Before(leads[1].CreatedAt))
}

func TestListRecentEmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	leads, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, leads)
}

func TestListRecentZeroLimit(t *testing.T) {
	repo := newTestRepo(t)

	leads, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, leads)
}
