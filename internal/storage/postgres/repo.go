// Package postgres implements a Postgres-backed storage.Repository using pgx
// v5. Bulk loads go through the COPY protocol, which is the cheapest way to
// move report-sized batches into a table.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesreport/internal/schema"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN   string // connection string for pgxpool
	Table string // target table name, optionally schema-qualified ("public.sales_clean")
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository constructs a Repository and returns a close function for
// cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	if strings.TrimSpace(cfg.Table) == "" {
		return nil, nil, fmt.Errorf("postgres: table must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	closeFn := func() { pool.Close() }
	return &Repository{pool: pool, cfg: cfg}, closeFn, nil
}

// EnsureTable creates the destination table when it does not exist. Numeric
// dataset columns are stored as double precision, everything else as text.
func (r *Repository) EnsureTable(ctx context.Context, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("postgres: EnsureTable: columns must not be empty")
	}
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = pgIdent(c) + " " + columnType(c)
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pgFQN(r.cfg.Table), strings.Join(defs, ", "))
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("postgres: create table: %w", err)
	}
	return nil
}

// CopyFrom streams rows into the configured table via the COPY protocol and
// returns the number of rows Postgres reported copied.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("postgres: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := r.pool.CopyFrom(ctx,
		tableIdentifier(r.cfg.Table),
		columns,
		pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("postgres: copy: %w", err)
	}
	return n, nil
}

// columnType maps the numeric dataset columns to double precision.
func columnType(col string) string {
	switch col {
	case schema.ColQuantity, schema.ColUnitPrice, schema.ColSales:
		return "double precision"
	default:
		return "text"
	}
}

// pgIdent quotes a single identifier.
func pgIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// pgFQN quotes a possibly schema-qualified table name part by part.
func pgFQN(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}

// tableIdentifier builds the pgx identifier for a possibly schema-qualified
// table name.
func tableIdentifier(table string) pgx.Identifier {
	return pgx.Identifier(strings.Split(table, "."))
}
