// This file wires the SQLite backend into the storage factory. Registration
// happens in init so callers only need a blank import.
package sqlite

import (
	"context"

	"salesreport/internal/storage"
)

// newRepository is a test hook pointing at NewRepository by default.
var newRepository = NewRepository

// wrappedRepo adapts *Repository to storage.Repository, adding a Close method
// backed by the cleanup function NewRepository returned.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN, Table: cfg.Table})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})
}
