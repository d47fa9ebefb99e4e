package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/famous-quotes/internal/domain"
)

// newTestStore opens an in-memory SQLite store with migrations applied.
func newTestStore(t *testing.T) *QuoteStore {
	t.Helper()

	store, err := Open(context.Background(), Config{
		Driver: DriverSQLite,
		DSN:    ":memory:",
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	store, err := Open(context.Background(), Config{Driver: "mysql", DSN: "whatever"})

	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpen_CreatesSchema(t *testing.T) {
	store := newTestStore(t)

	var tables []string
	err := store.db.Select(&tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('quotes', 'saved_quotes') ORDER BY name`)
	require.NoError(t, err)

	assert.Equal(t, []string{"quotes", "saved_quotes"}, tables)
}

func TestMigrateUp_Idempotent(t *testing.T) {
	store := newTestStore(t)

	err := migrateUp(context.Background(), store.db.DB, DriverSQLite)

	require.NoError(t, err)
}

func TestQuoteStore_List_Empty(t *testing.T) {
	store := newTestStore(t)

	quotes, err := store.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, quotes)
	assert.Empty(t, quotes)
}

func TestQuoteStore_InsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	added := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	created, err := store.Insert(ctx, &domain.Quote{
		Author:    "Test Author 1",
		Content:   "Test quote 1",
		DateAdded: added,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Test Author 1", got.Author)
	assert.Equal(t, "Test quote 1", got.Content)
	assert.WithinDuration(t, added, got.DateAdded, time.Second)
}

func TestQuoteStore_Insert_DefaultsDateAdded(t *testing.T) {
	store := newTestStore(t)
	before := time.Now().UTC()

	created, err := store.Insert(context.Background(), &domain.Quote{
		Author:  "Ada Lovelace",
		Content: "That brain of mine is something more than merely mortal.",
	})

	require.NoError(t, err)
	assert.False(t, created.DateAdded.IsZero())
	assert.WithinDuration(t, before, created.DateAdded, 5*time.Second)
	assert.Equal(t, time.UTC, created.DateAdded.Location())
}

func TestQuoteStore_Insert_DoesNotMutateInput(t *testing.T) {
	store := newTestStore(t)
	input := &domain.Quote{Author: "a", Content: "c"}

	created, err := store.Insert(context.Background(), input)

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Zero(t, input.ID)
	assert.True(t, input.DateAdded.IsZero())
}

func TestQuoteStore_Insert_AllowsDuplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	q := &domain.Quote{Author: "Same", Content: "Same words"}

	first, err := store.Insert(ctx, q)
	require.NoError(t, err)
	second, err := store.Insert(ctx, q)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	quotes, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, quotes, 2)
}

func TestQuoteStore_List_OrderedByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var ids []int64
	for _, author := range []string{"first", "second", "third"} {
		created, err := store.Insert(ctx, &domain.Quote{Author: author, Content: "content by " + author})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	quotes, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	for i, q := range quotes {
		assert.Equal(t, ids[i], q.ID)
	}
	assert.Equal(t, "first", quotes[0].Author)
	assert.Equal(t, "third", quotes[2].Author)
}

func TestQuoteStore_GetByID_NotFound(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetByID(context.Background(), 999)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, domain.IsNotFound(err))

	var nfe *domain.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "quote", nfe.Entity)
	assert.Equal(t, int64(999), nfe.ID)
}

func TestQuoteStore_DeleteByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Insert(ctx, &domain.Quote{Author: "a", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, created.ID))

	_, err = store.GetByID(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err))

	quotes, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuoteStore_DeleteByID_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.DeleteByID(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestQuoteStore_DeleteByID_Twice(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Insert(ctx, &domain.Quote{Author: "a", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, created.ID))
	err = store.DeleteByID(ctx, created.ID)

	assert.True(t, domain.IsNotFound(err))
}

func TestQuoteStore_IDsNotReusedAfterDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Insert(ctx, &domain.Quote{Author: "a", Content: "c"})
	require.NoError(t, err)
	require.NoError(t, store.DeleteByID(ctx, first.ID))

	second, err := store.Insert(ctx, &domain.Quote{Author: "b", Content: "d"})
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
}

func TestQuoteStore_HealthCheck(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, "database", store.Name())
	assert.NoError(t, store.Check(context.Background()))
}

func TestQuoteStore_Close(t *testing.T) {
	store, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, store.Close())

	err = store.Check(context.Background())
	assert.True(t, domain.IsUnavailable(err))
}

func TestOpen_FileDatabasePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "nested", "quotes.db")

	first, err := Open(ctx, Config{Driver: DriverSQLite, DSN: dsn})
	require.NoError(t, err)

	created, err := first.Insert(ctx, &domain.Quote{Author: "Seneca", Content: "Luck is what happens when preparation meets opportunity."})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(ctx, Config{Driver: DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seneca", got.Author)
}

func TestEnsureSQLiteDir(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name    string
		dsn     string
		created string
	}{
		{name: "memory", dsn: ":memory:"},
		{name: "shared memory uri", dsn: "file:quotes?mode=memory&cache=shared"},
		{name: "bare file in cwd", dsn: "quotes.db"},
		{name: "plain path", dsn: filepath.Join(base, "a", "quotes.db"), created: filepath.Join(base, "a")},
		{name: "file uri with query", dsn: "file:" + filepath.Join(base, "b", "quotes.db") + "?_pragma=foreign_keys(1)", created: filepath.Join(base, "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, ensureSQLiteDir(tt.dsn))
			if tt.created != "" {
				assert.DirExists(t, tt.created)
			}
		})
	}
}
