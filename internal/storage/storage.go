// Package storage contains storage-agnostic contracts and the backend
// factory. Concrete backends (Postgres, SQLite) register themselves in init
// and are selected by kind at runtime, keeping the report pipeline fully
// backend-agnostic.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"salesreport/internal/frame"
)

// Config selects and configures a storage backend.
type Config struct {
	Kind  string // registered backend name, e.g. "sqlite" or "postgres"
	DSN   string // connection string, passed through to the backend
	Table string // destination table name
}

// Repository is a bulk-load destination for the cleaned dataset.
type Repository interface {
	// EnsureTable creates the destination table for the given columns when
	// it does not exist yet.
	EnsureTable(ctx context.Context, columns []string) error
	// CopyFrom inserts rows (aligned to the columns order) and returns the
	// number of rows inserted. Nil cells map to SQL NULL.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	Close()
}

// Factory constructs a Repository for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under the given kind. It is intended to
// be called from backend init functions; duplicate registration panics.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := factories[kind]; dup {
		panic(fmt.Sprintf("storage: duplicate registration for kind %q", kind))
	}
	factories[kind] = f
}

// New opens a Repository for cfg.Kind. Unknown kinds report the registered
// alternatives.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, Kinds())
	}
	return f(ctx, cfg)
}

// Kinds lists the registered backend names in sorted order.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// batchSize bounds how many rows go into a single CopyFrom call so backends
// never materialize the whole dataset in one statement.
const batchSize = 500

// LoadFrame bulk-loads every row of f into repo in batches, preserving row
// order. It returns the total number of rows the backend reported inserted.
func LoadFrame(ctx context.Context, repo Repository, f *frame.Frame) (int64, error) {
	columns := f.Columns()
	if len(columns) == 0 {
		return 0, fmt.Errorf("storage: frame has no columns")
	}

	var total int64
	batch := make([][]any, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := repo.CopyFrom(ctx, columns, batch)
		total += n
		batch = batch[:0]
		return err
	}

	for i := 0; i < f.NumRows(); i++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		batch = append(batch, f.Row(i))
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}
