// Package sqlite implements the repository interfaces on top of
// database/sql and github.com/mattn/go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/spec-kit/ticketing-api/internal/repository"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewRepositories returns SQLite-backed implementations sharing db.
func NewRepositories(db *sql.DB) repository.Repositories {
	return repository.Repositories{
		Users:      NewUserRepository(db),
		Tickets:    NewTicketRepository(db),
		WorkOrders: NewWorkOrderRepository(db),
		Transactor: &transactor{db: db},
	}
}

type transactor struct {
	db *sql.DB
}

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, repository.TxRepositories{
		Tickets:    &ticketRepository{db: tx},
		WorkOrders: &workOrderRepository{db: tx},
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return repository.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	return errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func requireAffected(res sql.Result, err error) error {
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
