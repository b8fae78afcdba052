package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesreport/internal/storage"
)

func testConfig(t *testing.T) Config {
	return Config{
		DSN:   filepath.Join(t.TempDir(), "sales.db"),
		Table: "sales_clean",
	}
}

func TestNewRepositoryRejectsEmptyConfig(t *testing.T) {
	_, _, err := NewRepository(context.Background(), Config{Table: "t"})
	require.Error(t, err)
	_, _, err = NewRepository(context.Background(), Config{DSN: "x.db"})
	require.Error(t, err)
}

func TestEnsureTableAndCopyFrom(t *testing.T) {
	ctx := context.Background()
	repo, closeFn, err := NewRepository(ctx, testConfig(t))
	require.NoError(t, err)
	defer closeFn()

	columns := []string{"product_code", "quantity_ordered", "sales_amount"}
	require.NoError(t, repo.EnsureTable(ctx, columns))
	// Idempotent.
	require.NoError(t, repo.EnsureTable(ctx, columns))

	rows := [][]any{
		{"S18_1", 2.0, 20.0},
		{"S24_2", 3.0, nil},
	}
	n, err := repo.CopyFrom(ctx, columns, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var count int
	require.NoError(t, repo.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sales_clean").Scan(&count))
	assert.Equal(t, 2, count)

	var nulls int
	require.NoError(t, repo.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sales_clean WHERE sales_amount IS NULL").Scan(&nulls))
	assert.Equal(t, 1, nulls)
}

func TestCopyFromRowWidthMismatch(t *testing.T) {
	ctx := context.Background()
	repo, closeFn, err := NewRepository(ctx, testConfig(t))
	require.NoError(t, err)
	defer closeFn()

	columns := []string{"a", "b"}
	require.NoError(t, repo.EnsureTable(ctx, columns))

	_, err = repo.CopyFrom(ctx, columns, [][]any{{"only one"}})
	require.Error(t, err)
}

func TestFactoryRegistration(t *testing.T) {
	ctx := context.Background()
	repo, err := storage.New(ctx, storage.Config{
		Kind:  "sqlite",
		DSN:   filepath.Join(t.TempDir(), "sales.db"),
		Table: "sales_clean",
	})
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.EnsureTable(ctx, []string{"product_code"}))
	n, err := repo.CopyFrom(ctx, []string{"product_code"}, [][]any{{"S18_1"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
