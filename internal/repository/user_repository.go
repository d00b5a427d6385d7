package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

const userColumns = `id, type, name, city, state, phone, image_link, facebook_link,
	website, is_seeking, seeking_description, created_at`

// UserRepo encapsulates the users table together with its venues and
// artists specializations.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// InsertTx inserts the base users row and assigns the generated ID back to u.
func (r *UserRepo) InsertTx(ctx context.Context, tx *sqlx.Tx, u *model.User) error {
	const q = `INSERT INTO users (type, name, city, state, phone, image_link, facebook_link,
		website, is_seeking, seeking_description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, u.Type, u.Name, u.City, u.State, u.Phone, u.ImageLink,
		u.FacebookLink, u.Website, u.IsSeeking, u.SeekingDescription)
	if err != nil {
		return mapDriverError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// InsertSpecTx inserts the venues or artists row matching spec.
func (r *UserRepo) InsertSpecTx(ctx context.Context, tx *sqlx.Tx, userID int64, spec model.Specialization) error {
	var err error
	switch s := spec.(type) {
	case model.VenueDetails:
		_, err = tx.ExecContext(ctx, `INSERT INTO venues (user_id, address) VALUES (?, ?)`, userID, s.Address)
	case model.ArtistDetails:
		_, err = tx.ExecContext(ctx, `INSERT INTO artists (user_id) VALUES (?)`, userID)
	default:
		return errors.New("unsupported specialization")
	}
	return mapDriverError(err)
}

// UpdateTx overwrites every mutable users column. Type is never touched.
func (r *UserRepo) UpdateTx(ctx context.Context, tx *sqlx.Tx, u *model.User) error {
	const q = `UPDATE users
		SET name = ?, city = ?, state = ?, phone = ?, image_link = ?, facebook_link = ?,
		    website = ?, is_seeking = ?, seeking_description = ?
		WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, u.Name, u.City, u.State, u.Phone, u.ImageLink,
		u.FacebookLink, u.Website, u.IsSeeking, u.SeekingDescription, u.ID)
	return mapDriverError(err)
}

// UpdateSpecTx overwrites the specialization row. Artists carry no
// columns, so only venues issue a statement.
func (r *UserRepo) UpdateSpecTx(ctx context.Context, tx *sqlx.Tx, userID int64, spec model.Specialization) error {
	v, ok := spec.(model.VenueDetails)
	if !ok {
		return nil
	}
	_, err := tx.ExecContext(ctx, `UPDATE venues SET address = ? WHERE user_id = ?`, v.Address, userID)
	return mapDriverError(err)
}

// LockTx loads a user row with FOR UPDATE so concurrent writers to the
// same listing serialize. ErrUserNotFound when absent.
func (r *UserRepo) LockTx(ctx context.Context, tx *sqlx.Tx, id int64) (model.User, error) {
	var u model.User
	err := tx.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = ? FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// DeleteTx removes a user and every dependent row, shows on either side
// included.
func (r *UserRepo) DeleteTx(ctx context.Context, tx *sqlx.Tx, id int64) error {
	cascade := []struct {
		q    string
		args []any
	}{
		{`DELETE FROM shows WHERE artist_id = ? OR venue_id = ?`, []any{id, id}},
		{`DELETE FROM user_genres WHERE user_id = ?`, []any{id}},
		{`DELETE FROM venues WHERE user_id = ?`, []any{id}},
		{`DELETE FROM artists WHERE user_id = ?`, []any{id}},
	}
	for _, stmt := range cascade {
		if _, err := tx.ExecContext(ctx, stmt.q, stmt.args...); err != nil {
			return mapDriverError(err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapDriverError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetVenue fetches the venues row for userID.
func (r *UserRepo) GetVenue(ctx context.Context, userID int64) (model.VenueDetails, error) {
	var v model.VenueDetails
	err := r.db.GetContext(ctx, &v, `SELECT address FROM venues WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.VenueDetails{}, ErrUserNotFound
	}
	return v, err
}

// artistExists reports whether the artists row for userID is present.
func (r *UserRepo) artistExists(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, `SELECT 1 FROM artists WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Profile loads the user of type t with its specialization. A row whose
// type differs from t, or whose specialization row is missing, is
// reported as ErrUserNotFound. Genres are left empty; see GenreRepo.
func (r *UserRepo) Profile(ctx context.Context, t model.UserType, id int64) (model.Profile, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}
	if u.Type != t {
		return model.Profile{}, ErrUserNotFound
	}
	var spec model.Specialization
	switch t {
	case model.TypeVenue:
		v, err := r.GetVenue(ctx, id)
		if err != nil {
			return model.Profile{}, err
		}
		spec = v
	case model.TypeArtist:
		ok, err := r.artistExists(ctx, id)
		if err != nil {
			return model.Profile{}, err
		}
		if !ok {
			return model.Profile{}, ErrUserNotFound
		}
		spec = model.ArtistDetails{}
	}
	return model.NewProfile(u, spec, nil)
}

// Recent returns the most recently created users, newest first.
func (r *UserRepo) Recent(ctx context.Context, limit int) ([]model.UserSummary, error) {
	out := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, type, name, image_link FROM users ORDER BY id DESC LIMIT ?`, limit)
	return out, err
}

// ListArtists returns every artist's id and name ordered by id.
func (r *UserRepo) ListArtists(ctx context.Context) ([]model.UserRef, error) {
	out := []model.UserRef{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, name FROM users WHERE type = ? ORDER BY id`, model.TypeArtist)
	return out, err
}

// VenueRow is a venue with its location and upcoming show count.
type VenueRow struct {
	model.UserMatch
	City  string `db:"city"`
	State string `db:"state"`
}

// upcomingCountExpr counts shows where the user plays either side. The
// dual check lets one expression serve both listing types.
const upcomingCountExpr = `(SELECT COUNT(*) FROM shows s
		WHERE (s.artist_id = u.id OR s.venue_id = u.id) AND s.start_time > ?) AS num_upcoming_shows`

// ListVenues returns every venue with its upcoming show count relative
// to cutoff, ordered so rows of the same (city, state) are adjacent.
func (r *UserRepo) ListVenues(ctx context.Context, cutoff time.Time) ([]VenueRow, error) {
	q := `SELECT u.id, u.name, u.city, u.state, ` + upcomingCountExpr + `
		FROM users u
		WHERE u.type = ?
		ORDER BY u.state, u.city, u.id`
	out := []VenueRow{}
	err := r.db.SelectContext(ctx, &out, q, cutoff, model.TypeVenue)
	return out, err
}

// SearchByName performs a case-insensitive substring match on name
// scoped to t. LIKE wildcards in term match literally.
func (r *UserRepo) SearchByName(ctx context.Context, t model.UserType, term string, cutoff time.Time) ([]model.UserMatch, error) {
	q := `SELECT u.id, u.name, ` + upcomingCountExpr + `
		FROM users u
		WHERE u.type = ? AND LOWER(u.name) LIKE ?
		ORDER BY u.id`
	out := []model.UserMatch{}
	err := r.db.SelectContext(ctx, &out, q, cutoff, t, containsPattern(term))
	return out, err
}

// containsPattern builds a lower-cased %term% LIKE pattern with the
// wildcard characters escaped.
func containsPattern(term string) string {
	esc := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(term))
	return "%" + esc + "%"
}
