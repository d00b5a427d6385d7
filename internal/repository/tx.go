package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// RunInTx executes fn inside one transaction. Any error from fn, or a
// panic, rolls back every write fn made; otherwise the transaction is
// committed and the commit error returned.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}
