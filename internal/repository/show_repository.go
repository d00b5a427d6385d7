package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

// showEntrySelect joins a show with the users rows of both sides.
const showEntrySelect = `SELECT s.id AS show_id, s.start_time,
		s.artist_id, a.name AS artist_name, a.image_link AS artist_image_link,
		s.venue_id, v.name AS venue_name, v.image_link AS venue_image_link,
		v.city AS venue_city, v.state AS venue_state
	FROM shows s
	JOIN users a ON a.id = s.artist_id
	JOIN users v ON v.id = s.venue_id`

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sqlx.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sqlx.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show and assigns the generated ID back to s. The
// artist and venue ids are checked by the foreign keys only; a bad id
// surfaces as ErrInvalidReference.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime)
	if err != nil {
		return mapDriverError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// ListForUser returns every show the user takes part in, on either side,
// ordered by start time.
func (r *ShowRepo) ListForUser(ctx context.Context, userID int64) ([]model.ShowEntry, error) {
	out := []model.ShowEntry{}
	err := r.db.SelectContext(ctx, &out,
		showEntrySelect+` WHERE s.artist_id = ? OR s.venue_id = ? ORDER BY s.start_time`, userID, userID)
	return out, err
}

// ListUpcoming returns shows starting after cutoff, grouped by venue.
func (r *ShowRepo) ListUpcoming(ctx context.Context, cutoff time.Time) ([]model.ShowEntry, error) {
	out := []model.ShowEntry{}
	err := r.db.SelectContext(ctx, &out,
		showEntrySelect+` WHERE s.start_time > ? ORDER BY s.venue_id, s.start_time`, cutoff)
	return out, err
}

// ListAll returns every show with both sides' names.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowEntry, error) {
	out := []model.ShowEntry{}
	err := r.db.SelectContext(ctx, &out, showEntrySelect+` ORDER BY s.id`)
	return out, err
}

// CountUpcoming counts shows after cutoff where userID is the artist or
// the venue.
func (r *ShowRepo) CountUpcoming(ctx context.Context, userID int64, cutoff time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM shows WHERE (artist_id = ? OR venue_id = ?) AND start_time > ?`,
		userID, userID, cutoff)
	return n, err
}
