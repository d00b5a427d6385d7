package repository

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

// GenreRepo manages the genres catalog and the user_genres link table.
type GenreRepo struct {
	db     *sqlx.DB
	seeded atomic.Bool
}

// NewGenreRepo constructs a GenreRepo with the given DB handle.
func NewGenreRepo(db *sqlx.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// EnsureCatalog seeds the fixed genre list when the genres table is
// empty. Rows are inserted with INSERT IGNORE against the unique name,
// so two callers racing on first use cannot create duplicates. Returns
// the number of rows inserted.
func (r *GenreRepo) EnsureCatalog(ctx context.Context) (int, error) {
	if r.seeded.Load() {
		return 0, nil
	}
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM genres`); err != nil {
		return 0, err
	}
	if n > 0 {
		r.seeded.Store(true)
		return 0, nil
	}
	inserted := 0
	err := RunInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, name := range model.GenreCatalog {
			res, err := tx.ExecContext(ctx, `INSERT IGNORE INTO genres (name) VALUES (?)`, name)
			if err != nil {
				return err
			}
			if c, _ := res.RowsAffected(); c > 0 {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed genres: %w", err)
	}
	r.seeded.Store(true)
	return inserted, nil
}

// All returns the catalog ordered by id.
func (r *GenreRepo) All(ctx context.Context) ([]model.Genre, error) {
	out := []model.Genre{}
	err := r.db.SelectContext(ctx, &out, `SELECT id, name FROM genres ORDER BY id`)
	return out, err
}

// ResolveTx maps genre names to ids in submission order. Duplicate names
// collapse to one id. A name missing from the catalog yields an error
// wrapping ErrUnknownGenre.
func (r *GenreRepo) ResolveTx(ctx context.Context, tx *sqlx.Tx, names []string) ([]int64, error) {
	names = model.UniqueGenres(names)
	if len(names) == 0 {
		return nil, nil
	}
	q, args, err := sqlx.In(`SELECT id, name FROM genres WHERE name IN (?)`, names)
	if err != nil {
		return nil, err
	}
	var rows []model.Genre
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(q), args...); err != nil {
		return nil, err
	}
	byName := make(map[string]int64, len(rows))
	for _, g := range rows {
		byName[g.Name] = g.ID
	}
	ids := make([]int64, 0, len(names))
	for _, n := range names {
		id, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGenre, n)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// LinkTx inserts one user_genres row per genre id.
func (r *GenreRepo) LinkTx(ctx context.Context, tx *sqlx.Tx, userID int64, genreIDs []int64) error {
	for _, gid := range genreIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_genres (user_id, genre_id) VALUES (?, ?)`, userID, gid); err != nil {
			return mapDriverError(err)
		}
	}
	return nil
}

// ReplaceTx swaps the user's whole genre set: every existing link is
// deleted, then genreIDs are inserted. No diffing is attempted.
func (r *GenreRepo) ReplaceTx(ctx context.Context, tx *sqlx.Tx, userID int64, genreIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_genres WHERE user_id = ?`, userID); err != nil {
		return err
	}
	return r.LinkTx(ctx, tx, userID, genreIDs)
}

// NamesForUser returns the genre names linked to userID in join order.
func (r *GenreRepo) NamesForUser(ctx context.Context, userID int64) ([]string, error) {
	out := []string{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT g.name FROM genres g JOIN user_genres ug ON g.id = ug.genre_id WHERE ug.user_id = ?`, userID)
	return out, err
}
