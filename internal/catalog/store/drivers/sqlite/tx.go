package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore { return &txStore{tx: tx} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer Store owns the database.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Users() store.Users           { return &usersRepo{db: t.tx} }
func (t *txStore) Sessions() store.Sessions     { return &sessionsRepo{db: t.tx} }
func (t *txStore) Categories() store.Categories { return &categoriesRepo{db: t.tx} }
func (t *txStore) Tools() store.Tools           { return &toolsRepo{db: t.tx} }
func (t *txStore) Reviews() store.Reviews       { return &reviewsRepo{db: t.tx} }
func (t *txStore) Likes() store.Likes           { return &likesRepo{db: t.tx} }
func (t *txStore) Activities() store.Activities { return &activitiesRepo{db: t.tx} }
func (t *txStore) Stats() store.Stats           { return &statsRepo{db: t.tx} }
